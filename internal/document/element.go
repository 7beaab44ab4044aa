// Package document builds a structural index of a LaTeX document and resolves
// named sections to exact character ranges. The index is rebuilt from the full
// document text on every edit cycle; element offsets are only valid for the
// text that produced them.
package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SectionLevel is the sectioning depth of a heading command.
type SectionLevel int

const (
	LevelChapter SectionLevel = iota
	LevelSection
	LevelSubsection
	LevelSubsubsection
	LevelParagraph
)

// String returns the LaTeX command name for the level
func (l SectionLevel) String() string {
	switch l {
	case LevelChapter:
		return "chapter"
	case LevelSection:
		return "section"
	case LevelSubsection:
		return "subsection"
	case LevelSubsubsection:
		return "subsubsection"
	case LevelParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Element is a structural element found by the scanner. It is a closed set:
// Section, EnvironmentStart, EnvironmentEnd, and DocumentEndMarker are the
// only implementations, so consumers can type-switch exhaustively.
type Element interface {
	// CharRange returns the element's [start, end) offsets into the scanned text.
	CharRange() (start, end int)
	// Line returns the zero-based line index of the element.
	Line() int

	element()
}

// Section is a sectioning command with a brace-delimited title.
type Section struct {
	Level           SectionLevel
	Title           string
	NormalizedTitle string
	LineIndex       int
	CharStart       int
	CharEnd         int
}

// EnvironmentStart is a \begin{name} line.
type EnvironmentStart struct {
	Name      string
	LineIndex int
	CharStart int
	CharEnd   int
}

// EnvironmentEnd is an \end{name} line for any environment other than document.
type EnvironmentEnd struct {
	Name      string
	LineIndex int
	CharStart int
	CharEnd   int
}

// DocumentEndMarker is a command that terminates body content: \end{document}
// or a bibliography command. Section boundaries never extend past the first
// marker that follows them.
type DocumentEndMarker struct {
	Command   string
	LineIndex int
	CharStart int
	CharEnd   int
}

func (s *Section) CharRange() (int, int)           { return s.CharStart, s.CharEnd }
func (s *Section) Line() int                       { return s.LineIndex }
func (s *Section) element()                        {}
func (e *EnvironmentStart) CharRange() (int, int)  { return e.CharStart, e.CharEnd }
func (e *EnvironmentStart) Line() int              { return e.LineIndex }
func (e *EnvironmentStart) element()               {}
func (e *EnvironmentEnd) CharRange() (int, int)    { return e.CharStart, e.CharEnd }
func (e *EnvironmentEnd) Line() int                { return e.LineIndex }
func (e *EnvironmentEnd) element()                 {}
func (m *DocumentEndMarker) CharRange() (int, int) { return m.CharStart, m.CharEnd }
func (m *DocumentEndMarker) Line() int             { return m.LineIndex }
func (m *DocumentEndMarker) element()              {}

// Normalize produces the canonical form used for all title comparisons:
// NFKC fold, lower case, surrounding whitespace trimmed. Both sides of every
// comparison go through this, so folding never changes tier semantics.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFKC.String(s)))
}
