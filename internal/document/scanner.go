package document

import (
	"regexp"
	"strings"

	"latex-editor/internal/logger"
)

// Index is the structural index of one document snapshot. It is read-only and
// must be rebuilt whenever the document text changes.
type Index struct {
	Elements   []Element
	TotalLines int
	TotalChars int
}

var (
	sectionRe = regexp.MustCompile(`^\\(chapter|section|subsection|subsubsection|paragraph)\*?\{([^}]*)\}`)
	beginRe   = regexp.MustCompile(`^\\begin\{([^}]+)\}`)
	endRe     = regexp.MustCompile(`^\\end\{([^}]+)\}`)
	docEndRe  = regexp.MustCompile(`^\\(end\{document\}|bibliography\{[^}]*\}|printbibliography\b)`)
)

var sectionLevels = map[string]SectionLevel{
	"chapter":       LevelChapter,
	"section":       LevelSection,
	"subsection":    LevelSubsection,
	"subsubsection": LevelSubsubsection,
	"paragraph":     LevelParagraph,
}

// lineMatcher inspects one trimmed line and returns the element it denotes,
// or nil. Matchers run in registration order and the first hit wins.
type lineMatcher func(trimmed string, lineIndex, charStart, charEnd int) Element

// lineMatchers is the ordered matcher list. The document-end matcher runs
// before the generic \end matcher so \end{document} becomes a
// DocumentEndMarker rather than an EnvironmentEnd; section boundary
// computation depends on that.
var lineMatchers = []lineMatcher{
	matchSection,
	matchDocumentEnd,
	matchEnvironmentStart,
	matchEnvironmentEnd,
}

func matchSection(trimmed string, lineIndex, charStart, charEnd int) Element {
	m := sectionRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	title := m[2]
	return &Section{
		Level:           sectionLevels[m[1]],
		Title:           title,
		NormalizedTitle: Normalize(title),
		LineIndex:       lineIndex,
		CharStart:       charStart,
		CharEnd:         charEnd,
	}
}

func matchDocumentEnd(trimmed string, lineIndex, charStart, charEnd int) Element {
	if !docEndRe.MatchString(trimmed) {
		return nil
	}
	command := trimmed
	if i := strings.IndexAny(trimmed, " \t%"); i > 0 {
		command = trimmed[:i]
	}
	return &DocumentEndMarker{
		Command:   command,
		LineIndex: lineIndex,
		CharStart: charStart,
		CharEnd:   charEnd,
	}
}

func matchEnvironmentStart(trimmed string, lineIndex, charStart, charEnd int) Element {
	m := beginRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	return &EnvironmentStart{
		Name:      m[1],
		LineIndex: lineIndex,
		CharStart: charStart,
		CharEnd:   charEnd,
	}
}

func matchEnvironmentEnd(trimmed string, lineIndex, charStart, charEnd int) Element {
	m := endRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	return &EnvironmentEnd{
		Name:      m[1],
		LineIndex: lineIndex,
		CharStart: charStart,
		CharEnd:   charEnd,
	}
}

// Scan builds the structural index for text. It is a pure function: no state
// is kept between calls and text is never modified. Environment begin/end
// pairs are recorded but not matched to each other; nesting validation is not
// this layer's job.
func Scan(text string) *Index {
	lines := strings.Split(text, "\n")
	index := &Index{
		TotalLines: len(lines),
		TotalChars: len(text),
	}

	cursor := 0
	for i, line := range lines {
		charStart := cursor
		charEnd := charStart + len(line)
		cursor = charEnd + 1 // the newline

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.HasPrefix(trimmed, `\`) {
			continue
		}

		for _, match := range lineMatchers {
			if el := match(trimmed, i, charStart, charEnd); el != nil {
				index.Elements = append(index.Elements, el)
				break
			}
		}
	}

	logger.Debug("document scanned",
		logger.Int("lines", index.TotalLines),
		logger.Int("chars", index.TotalChars),
		logger.Int("elements", len(index.Elements)))
	return index
}

// Sections returns all Section elements in document order.
func (ix *Index) Sections() []*Section {
	var sections []*Section
	for _, el := range ix.Elements {
		if s, ok := el.(*Section); ok {
			sections = append(sections, s)
		}
	}
	return sections
}

// HasSection reports whether any section's normalized title matches name at
// the exact or containment tier. Used to decide whether a creation request
// targets an existing section.
func (ix *Index) HasSection(name string) bool {
	target := Normalize(name)
	if target == "" {
		return false
	}
	for _, s := range ix.Sections() {
		if s.NormalizedTitle == target ||
			strings.Contains(s.NormalizedTitle, target) ||
			strings.Contains(target, s.NormalizedTitle) {
			return true
		}
	}
	return false
}

// nextSectionAfter returns the first Section with CharStart > pos, or nil.
func (ix *Index) nextSectionAfter(pos int) *Section {
	for _, el := range ix.Elements {
		if s, ok := el.(*Section); ok && s.CharStart > pos {
			return s
		}
	}
	return nil
}

// firstEndMarkerAfter returns the first DocumentEndMarker with CharStart > pos, or nil.
func (ix *Index) firstEndMarkerAfter(pos int) *DocumentEndMarker {
	for _, el := range ix.Elements {
		if m, ok := el.(*DocumentEndMarker); ok && m.CharStart > pos {
			return m
		}
	}
	return nil
}

// FirstEndMarker returns the first DocumentEndMarker in the document, or nil.
// Section creation inserts new content immediately before it.
func (ix *Index) FirstEndMarker() *DocumentEndMarker {
	return ix.firstEndMarkerAfter(-1)
}
