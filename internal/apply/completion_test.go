package apply

import (
	"strings"
	"testing"
)

func TestExtractCompletionFenced(t *testing.T) {
	reply := "Here is the content you asked for:\n\n```latex\n\\section{Future Work}\nIdeas here.\n```\n\nLet me know if you want changes."
	got, source := ExtractCompletion(reply)

	if source != SourceFenced {
		t.Errorf("source = %q, want fenced", source)
	}
	if got != "\\section{Future Work}\nIdeas here." {
		t.Errorf("extracted = %q", got)
	}
}

func TestExtractCompletionFirstFenceWins(t *testing.T) {
	reply := "```latex\nfirst block\n```\nand also:\n```latex\nsecond block\n```"
	got, source := ExtractCompletion(reply)

	if source != SourceFenced {
		t.Errorf("source = %q, want fenced", source)
	}
	if got != "first block" {
		t.Errorf("extracted = %q, want first block", got)
	}
}

func TestExtractCompletionShortCommandReply(t *testing.T) {
	reply := "\\textbf{Important:} results are significant."
	got, source := ExtractCompletion(reply)

	if source != SourceShortCode {
		t.Errorf("source = %q, want short-code", source)
	}
	if got != reply {
		t.Errorf("extracted = %q", got)
	}
}

func TestExtractCompletionRawProse(t *testing.T) {
	long := strings.Repeat("This is a long explanation without any markup commands. ", 10)
	got, source := ExtractCompletion(long)

	if source != SourceRaw {
		t.Errorf("source = %q, want raw", source)
	}
	if got != long {
		t.Errorf("extracted differs from input")
	}
}

func TestExtractCompletionRawKeepsWhitespace(t *testing.T) {
	// Insertion strategies splice raw completions verbatim, so surrounding
	// whitespace must survive extraction.
	reply := "new lead. "
	got, source := ExtractCompletion(reply)

	if source != SourceRaw {
		t.Errorf("source = %q, want raw", source)
	}
	if got != reply {
		t.Errorf("extracted = %q, want %q unchanged", got, reply)
	}
}

func TestExtractCompletionShortProseIsRaw(t *testing.T) {
	// Short but without command tokens: raw, not code.
	_, source := ExtractCompletion("Sure, here you go.")
	if source != SourceRaw {
		t.Errorf("source = %q, want raw", source)
	}
}

func TestConfirmsDeletion(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"I've deleted the Results section as requested.", true},
		{"I have deleted that section.", true},
		{"I've removed the appendix.", true},
		{"Removed the duplicate paragraph.", true},
		{"Which section do you mean?", false},
		{"I can delete it if you confirm.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			if got := ConfirmsDeletion(tt.reply); got != tt.want {
				t.Errorf("ConfirmsDeletion(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestStripEchoedHeader(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		section    string
		want       string
	}{
		{
			name:       "echoed header removed",
			completion: "\\section{Conclusion}\nFinal thoughts.",
			section:    "Conclusion",
			want:       "Final thoughts.",
		},
		{
			name:       "case-insensitive title match",
			completion: "\\section{conclusion}\nFinal thoughts.",
			section:    "Conclusion",
			want:       "Final thoughts.",
		},
		{
			name:       "different header kept",
			completion: "\\section{Future Work}\nIdeas.",
			section:    "Conclusion",
			want:       "\\section{Future Work}\nIdeas.",
		},
		{
			name:       "no header kept",
			completion: "Just a sentence.",
			section:    "Conclusion",
			want:       "Just a sentence.",
		},
		{
			name:       "header-only completion leaves empty",
			completion: "\\section{Conclusion}",
			section:    "Conclusion",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripEchoedHeader(tt.completion, tt.section); got != tt.want {
				t.Errorf("StripEchoedHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}
