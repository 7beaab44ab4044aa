// Package apply is the top-level entry point of the edit engine. It sequences
// intent classification, section location, and content splicing over one
// document snapshot, degrading gracefully through selection and cursor
// fallbacks when structural targeting fails.
package apply

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"latex-editor/internal/document"
)

// CompletionSource says how the usable completion was obtained from the
// generator's reply.
type CompletionSource string

const (
	// SourceFenced means the first fenced code block was extracted.
	SourceFenced CompletionSource = "fenced"
	// SourceShortCode means the whole reply was short and command-like, so
	// it was taken verbatim as code.
	SourceShortCode CompletionSource = "short-code"
	// SourceRaw means the whole reply was used as-is.
	SourceRaw CompletionSource = "raw"
)

// shortReplyLimit is the length under which an unfenced reply containing
// LaTeX command tokens is treated as pure code.
const shortReplyLimit = 400

var latexCommandRe = regexp.MustCompile(`\\[a-zA-Z]+`)

// echoedHeaderRe matches a sectioning command that a generator may have
// echoed as the first line of its completion.
var echoedHeaderRe = regexp.MustCompile(`^\\(?:chapter|section|subsection|subsubsection|paragraph)\*?\{([^}]*)\}[ \t]*$`)

// ExtractCompletion pulls the usable content out of a generator reply. The
// first fenced code block wins; without one, a short reply containing LaTeX
// command tokens is taken whole, and anything else is used raw.
func ExtractCompletion(reply string) (string, CompletionSource) {
	src := []byte(reply)
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(src))

	var fenced string
	found := false
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		if cb, ok := n.(*ast.FencedCodeBlock); ok {
			var buf bytes.Buffer
			lines := cb.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			fenced = buf.String()
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if found {
		return strings.TrimRight(fenced, "\n"), SourceFenced
	}

	trimmed := strings.TrimSpace(reply)
	if len(trimmed) < shortReplyLimit && latexCommandRe.MatchString(trimmed) {
		return trimmed, SourceShortCode
	}
	// The raw path keeps the reply byte for byte. Insertion strategies splice
	// the completion verbatim, so trimming here would lose deliberate spacing.
	return reply, SourceRaw
}

// deletionPhrases are the affirmative forms a generator uses to confirm it
// performed a deletion. Anything else is treated as ambiguous.
var deletionPhrases = []string{
	"i've deleted",
	"i have deleted",
	"deleted the",
	"i've removed",
	"i have removed",
	"removed the",
}

// ConfirmsDeletion reports whether reply affirmatively confirms a deletion.
// An ambiguous reply means the requested deletion must not happen.
func ConfirmsDeletion(reply string) bool {
	r := strings.ToLower(reply)
	for _, phrase := range deletionPhrases {
		if strings.Contains(r, phrase) {
			return true
		}
	}
	return false
}

// StripEchoedHeader removes a leading sectioning command from completion when
// its title names the same section as sectionTitle. Generators often echo the
// header of the section they were asked to extend; splicing it back in would
// duplicate the heading.
func StripEchoedHeader(completion, sectionTitle string) string {
	firstLine := completion
	rest := ""
	if i := strings.Index(completion, "\n"); i >= 0 {
		firstLine, rest = completion[:i], completion[i+1:]
	}

	m := echoedHeaderRe.FindStringSubmatch(strings.TrimSpace(firstLine))
	if m == nil {
		return completion
	}
	if document.Normalize(m[1]) != document.Normalize(sectionTitle) {
		return completion
	}
	return strings.TrimLeft(rest, "\n")
}
