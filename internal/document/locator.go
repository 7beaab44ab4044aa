package document

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"latex-editor/internal/logger"
)

// MatchTier identifies which matching tier produced a located section.
type MatchTier string

const (
	TierExact       MatchTier = "exact"
	TierContainment MatchTier = "containment"
	TierWordOverlap MatchTier = "word-overlap"
)

// Boundary is the resolved character range of one section, computed on demand
// against a specific document text. BeforeContent + OriginalContent +
// AfterContent always reconstructs that text exactly.
type Boundary struct {
	SectionName     string // verbatim title of the matched section
	Section         *Section
	Tier            MatchTier
	StartPos        int
	EndPos          int
	OriginalContent string
	BeforeContent   string
	AfterContent    string
}

// Locate resolves targetName against the index using tiered matching:
//
//  1. exact: normalized titles are equal
//  2. containment: either normalized string contains the other
//  3. word overlap: the titles share words, and the shared set covers the
//     whole target or at least half the section title
//
// The first tier with a candidate wins, and within a tier the earliest
// section in document order wins. A later tier never overrides an earlier
// one. Returns nil when no tier matches; that is an expected condition, not
// an error.
func Locate(index *Index, text string, targetName string) *Boundary {
	target := Normalize(targetName)
	if target == "" {
		return nil
	}

	sections := index.Sections()
	if len(sections) == 0 {
		return nil
	}

	var matched *Section
	var tier MatchTier

	for _, s := range sections {
		if s.NormalizedTitle == target {
			matched, tier = s, TierExact
			break
		}
	}
	if matched == nil {
		for _, s := range sections {
			if strings.Contains(s.NormalizedTitle, target) || strings.Contains(target, s.NormalizedTitle) {
				matched, tier = s, TierContainment
				break
			}
		}
	}
	if matched == nil {
		targetWords := strings.Fields(target)
		for _, s := range sections {
			common := commonWordCount(strings.Fields(s.NormalizedTitle), targetWords)
			// The half-title test uses 2*common >= len to keep the
			// original's fractional comparison for odd word counts.
			if common > 0 && (common >= len(targetWords) || 2*common >= len(strings.Fields(s.NormalizedTitle))) {
				matched, tier = s, TierWordOverlap
				break
			}
		}
	}

	if matched == nil {
		logger.Debug("section not found", logger.String("target", targetName))
		return nil
	}

	b := boundaryFor(index, text, matched)
	b.Tier = tier
	logger.Debug("section located",
		logger.String("target", targetName),
		logger.String("matched", matched.Title),
		logger.String("tier", string(tier)))
	return b
}

func commonWordCount(sectionWords, targetWords []string) int {
	seen := make(map[string]bool, len(sectionWords))
	for _, w := range sectionWords {
		seen[w] = true
	}
	count := 0
	counted := make(map[string]bool)
	for _, w := range targetWords {
		if seen[w] && !counted[w] {
			counted[w] = true
			count++
		}
	}
	return count
}

// boundaryFor computes the exact character range of section. The section runs
// from its own header to just before the next section; with no next section
// it runs to just before the first document-end marker that follows it, and
// failing that to the end of the text.
func boundaryFor(index *Index, text string, section *Section) *Boundary {
	startPos := section.CharStart

	endPos := len(text)
	if next := index.nextSectionAfter(startPos); next != nil {
		endPos = next.CharStart - 1
	} else if marker := index.firstEndMarkerAfter(startPos); marker != nil {
		endPos = marker.CharStart - 1
	}
	if endPos < startPos {
		endPos = startPos
	}
	if endPos > len(text) {
		endPos = len(text)
	}

	return &Boundary{
		SectionName:     section.Title,
		Section:         section,
		StartPos:        startPos,
		EndPos:          endPos,
		OriginalContent: text[startPos:endPos],
		BeforeContent:   text[:startPos],
		AfterContent:    text[endPos:],
	}
}

// Reconstructs verifies the core correctness invariant of a boundary.
func (b *Boundary) Reconstructs(text string) bool {
	return b.BeforeContent+b.OriginalContent+b.AfterContent == text
}

// Validate returns an error describing an invariant violation, or nil. Only
// malformed offset arithmetic can trip this; it exists for tests and internal
// assertions, not for user-facing flow control.
func (b *Boundary) Validate(text string) error {
	if b.StartPos > b.EndPos {
		return fmt.Errorf("boundary start %d after end %d", b.StartPos, b.EndPos)
	}
	if !b.Reconstructs(text) {
		return fmt.Errorf("boundary for %q does not reconstruct the document", b.SectionName)
	}
	return nil
}

// Suggest returns section titles ranked by fuzzy similarity to targetName.
// Purely diagnostic: suggestions are surfaced when Locate misses every tier,
// and never feed back into matching.
func Suggest(index *Index, targetName string, limit int) []string {
	sections := index.Sections()
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}

	matches := fuzzy.Find(Normalize(targetName), titles)
	var out []string
	for _, m := range matches {
		out = append(out, titles[m.Index])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
