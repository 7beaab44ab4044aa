// Package intent maps a free-text edit instruction to a closed set of edit
// actions, an insertion-point preference, and an optional target section.
// Classification is ordered keyword rules, first match wins; the rule order
// is part of the contract because the phrase space overlaps.
package intent

import (
	"strings"

	"latex-editor/internal/document"
	"latex-editor/internal/logger"
)

// Action is the edit operation requested by the user.
type Action string

const (
	ActionAdd     Action = "add"
	ActionDelete  Action = "delete"
	ActionReplace Action = "replace"
	ActionExpand  Action = "expand"
	ActionFix     Action = "fix"
	ActionImprove Action = "improve" // default, most conservative
)

// InsertionPoint says where within a section added content goes.
type InsertionPoint string

const (
	InsertBeginning InsertionPoint = "beginning"
	InsertEnd       InsertionPoint = "end"
)

// actionRule is one ordered classification rule. A rule fires when any of its
// anyOf phrases occurs in the lower-cased prompt; when alsoNeeds is set, every
// one of those entries must be present too.
type actionRule struct {
	name       string
	action     Action
	anyOf      []string
	alsoNeeds  []string // every entry must also be present
	creational bool     // rule expresses section-creation language
}

// actionRules run in order; the first rule that fires decides the action.
// "write a"/"create a" must outrank the later generic "add" rule so that
// creation requests keep their creation flag auditable, and "delete" must
// outrank "replace" ("remove X and replace it" is a deletion first).
var actionRules = []actionRule{
	{name: "creation-verb", action: ActionAdd, creational: true,
		anyOf: []string{"write a ", "write an ", "create a ", "create an "}},
	{name: "delete", action: ActionDelete,
		anyOf: []string{"delete", "remove", "clear", "get rid of"}},
	{name: "replace", action: ActionReplace,
		anyOf: []string{"replace", "rewrite", "change to", "should be"}},
	{name: "make-just", action: ActionReplace,
		anyOf: []string{"just", "only"}, alsoNeeds: []string{"make"}},
	{name: "expand", action: ActionExpand,
		anyOf: []string{"expand", "elaborate", "add more", "extend"}},
	{name: "add", action: ActionAdd,
		anyOf: []string{"add", "insert", "include"}},
	{name: "fix", action: ActionFix,
		anyOf: []string{"fix", "correct", "repair"}},
}

// sectionVocabulary is the fixed set of academic section names recognized as
// targets, with close synonyms mapping onto the canonical term. Scanned in
// order; the first term found in the prompt wins.
var sectionVocabulary = []struct {
	term      string
	canonical string
}{
	{"literature review", "literature review"},
	{"related work", "literature review"},
	{"introduction", "introduction"},
	{"intro", "introduction"},
	{"methodology", "methodology"},
	{"methods", "methodology"},
	{"method", "methodology"},
	{"results", "results"},
	{"findings", "results"},
	{"discussion", "discussion"},
	{"conclusion", "conclusion"},
	{"conclusions", "conclusion"},
	{"summary", "conclusion"},
	{"abstract", "abstract"},
	{"references", "references"},
	{"bibliography", "references"},
	{"appendix", "appendix"},
	{"acknowledgments", "acknowledgments"},
	{"acknowledgements", "acknowledgments"},
}

func (r actionRule) fires(prompt string) bool {
	hit := false
	for _, phrase := range r.anyOf {
		if strings.Contains(prompt, phrase) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, phrase := range r.alsoNeeds {
		if !strings.Contains(prompt, phrase) {
			return false
		}
	}
	return true
}

// ClassifyAction maps prompt to an edit action. Falls back to ActionImprove,
// the rewrite-in-place of whatever is selected or targeted.
func ClassifyAction(prompt string) Action {
	p := strings.ToLower(prompt)
	for _, rule := range actionRules {
		if rule.fires(p) {
			logger.Debug("action classified",
				logger.String("rule", rule.name),
				logger.String("action", string(rule.action)))
			return rule.action
		}
	}
	return ActionImprove
}

// ClassifyInsertionPoint maps prompt to an insertion point, defaulting to the
// end of the section.
func ClassifyInsertionPoint(prompt string) InsertionPoint {
	p := strings.ToLower(prompt)
	for _, kw := range []string{"beginning", "start", "top"} {
		if strings.Contains(p, kw) {
			return InsertBeginning
		}
	}
	return InsertEnd
}

// ExtractTargetSection returns the canonical name of the vocabulary term
// occurring earliest in the prompt, or "" when the prompt names no known
// section. Earliest occurrence wins because a prompt like "add a conclusion
// summarizing the results" targets the conclusion, not the results.
func ExtractTargetSection(prompt string) string {
	p := strings.ToLower(prompt)
	best := ""
	bestPos := -1
	for _, entry := range sectionVocabulary {
		pos := strings.Index(p, entry.term)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos {
			best, bestPos = entry.canonical, pos
		}
	}
	return best
}

// usesCreationLanguage reports whether the prompt uses a creation form.
func usesCreationLanguage(prompt string) bool {
	p := strings.ToLower(prompt)
	for _, rule := range actionRules {
		if rule.creational && rule.fires(p) {
			return true
		}
	}
	return false
}

// IsCreationRequest decides whether a prompt asks for a section to be
// created rather than located: it must use creation language, and either
// name no target or name one that is absent from the current index.
func IsCreationRequest(prompt string, index *document.Index) bool {
	if !usesCreationLanguage(prompt) {
		return false
	}
	target := ExtractTargetSection(prompt)
	if target == "" {
		return true
	}
	return index == nil || !index.HasSection(target)
}

// Classification bundles every signal derived from one prompt.
type Classification struct {
	Action         Action
	InsertionPoint InsertionPoint
	TargetSection  string
	IsCreation     bool
}

// Classify runs all classifiers over one prompt against the given index.
func Classify(prompt string, index *document.Index) Classification {
	return Classification{
		Action:         ClassifyAction(prompt),
		InsertionPoint: ClassifyInsertionPoint(prompt),
		TargetSection:  ExtractTargetSection(prompt),
		IsCreation:     IsCreationRequest(prompt, index),
	}
}
