package editor

import (
	"strings"
	"testing"

	"latex-editor/internal/document"
	"latex-editor/internal/intent"
)

const testDoc = `\documentclass{article}
\begin{document}
\section{Introduction}
Hello.
\section{Results}
Numbers.
\section{Conclusion}
Done.
\end{document}`

func locate(t *testing.T, doc, name string) *document.Boundary {
	t.Helper()
	b := document.Locate(document.Scan(doc), doc, name)
	if b == nil {
		t.Fatalf("section %q not found", name)
	}
	return b
}

func TestAddContentToSectionEnd(t *testing.T) {
	b := locate(t, testDoc, "Introduction")
	res := AddContentToSection(b, "A new sentence.", intent.InsertEnd)
	if res == nil {
		t.Fatal("result is nil")
	}

	if !strings.Contains(res.NewDocument, "Hello.\nA new sentence.\n\\section{Results}") {
		t.Errorf("unexpected splice:\n%s", res.NewDocument)
	}
	// One newline separator added.
	if res.NewLength != len(testDoc)+len("A new sentence.")+1 {
		t.Errorf("NewLength = %d, want %d", res.NewLength, len(testDoc)+len("A new sentence.")+1)
	}
	if got := res.NewDocument[res.RangeStart:res.RangeEnd]; got != "A new sentence." {
		t.Errorf("affected range = %q", got)
	}
	// Everything outside the section is untouched.
	if !strings.HasSuffix(res.NewDocument, "\\end{document}") {
		t.Errorf("document terminator disturbed")
	}
	if !strings.HasPrefix(res.NewDocument, "\\documentclass{article}\n\\begin{document}\n") {
		t.Errorf("preamble disturbed")
	}
}

func TestAddContentToSectionBeginning(t *testing.T) {
	b := locate(t, testDoc, "Results")
	res := AddContentToSection(b, "Leading remark.", intent.InsertBeginning)
	if res == nil {
		t.Fatal("result is nil")
	}

	if !strings.Contains(res.NewDocument, "\\section{Results}\nLeading remark.\nNumbers.") {
		t.Errorf("content not placed after header:\n%s", res.NewDocument)
	}
	if got := res.NewDocument[res.RangeStart:res.RangeEnd]; got != "Leading remark." {
		t.Errorf("affected range = %q", got)
	}
}

func TestAddContentToHeaderOnlySection(t *testing.T) {
	doc := "\\section{Stub}"
	b := locate(t, doc, "Stub")
	res := AddContentToSection(b, "Body.", intent.InsertBeginning)
	if res == nil {
		t.Fatal("result is nil")
	}
	if res.NewDocument != "\\section{Stub}\nBody." {
		t.Errorf("NewDocument = %q", res.NewDocument)
	}
}

func TestDeleteSection(t *testing.T) {
	b := locate(t, testDoc, "Results")
	res := DeleteSection(b)
	if res == nil {
		t.Fatal("result is nil")
	}

	if strings.Contains(res.NewDocument, "Numbers.") {
		t.Errorf("deleted content still present:\n%s", res.NewDocument)
	}
	if res.DeletedContent != "\\section{Results}\nNumbers." {
		t.Errorf("DeletedContent = %q", res.DeletedContent)
	}
	if res.RangeStart != res.RangeEnd {
		t.Errorf("deletion range should collapse, got [%d,%d)", res.RangeStart, res.RangeEnd)
	}

	// Re-scan: the section is gone at the exact tier.
	index := document.Scan(res.NewDocument)
	for _, s := range index.Sections() {
		if s.NormalizedTitle == "results" {
			t.Error("Results section still indexed after deletion")
		}
	}
}

func TestReplaceSectionPreservesSurroundings(t *testing.T) {
	b := locate(t, testDoc, "Results")
	newContent := "\\section{Results}\nBetter numbers."
	res := ReplaceSection(b, newContent)
	if res == nil {
		t.Fatal("result is nil")
	}

	// The before/after slices of the result, re-located, equal the originals.
	b2 := locate(t, res.NewDocument, "Results")
	if b2.BeforeContent != b.BeforeContent {
		t.Errorf("before slice changed:\n%q\nvs\n%q", b2.BeforeContent, b.BeforeContent)
	}
	if b2.AfterContent != b.AfterContent {
		t.Errorf("after slice changed:\n%q\nvs\n%q", b2.AfterContent, b.AfterContent)
	}
	if b2.OriginalContent != newContent {
		t.Errorf("replacement content = %q", b2.OriginalContent)
	}
	if got := res.NewDocument[res.RangeStart:res.RangeEnd]; got != newContent {
		t.Errorf("affected range = %q", got)
	}
}

func TestNilBoundaryReturnsNil(t *testing.T) {
	if AddContentToSection(nil, "x", intent.InsertEnd) != nil {
		t.Error("AddContentToSection(nil) should be nil")
	}
	if DeleteSection(nil) != nil {
		t.Error("DeleteSection(nil) should be nil")
	}
	if ReplaceSection(nil, "x") != nil {
		t.Error("ReplaceSection(nil) should be nil")
	}
}

func TestCreateSectionBeforeEndMarker(t *testing.T) {
	index := document.Scan(testDoc)
	content := "\\section{Future Work}\nIdeas."
	res := CreateSection(index, testDoc, content)

	want := "Done.\n\n\\section{Future Work}\nIdeas.\n\n\\end{document}"
	if !strings.Contains(res.NewDocument, want) {
		t.Errorf("NewDocument:\n%s\nwant to contain:\n%s", res.NewDocument, want)
	}
	if got := res.NewDocument[res.RangeStart:res.RangeEnd]; got != content {
		t.Errorf("affected range = %q", got)
	}
}

func TestCreateSectionNoEndMarker(t *testing.T) {
	doc := "\\section{Only}\nText.\n"
	index := document.Scan(doc)
	res := CreateSection(index, doc, "\\section{Second}\nMore.")

	if res.NewDocument != "\\section{Only}\nText.\n\n\\section{Second}\nMore.\n" {
		t.Errorf("NewDocument = %q", res.NewDocument)
	}
}

func TestCreateSectionEmptyDocument(t *testing.T) {
	res := CreateSection(document.Scan(""), "", "\\section{First}\nBody.")
	if res.NewDocument != "\\section{First}\nBody.\n" {
		t.Errorf("NewDocument = %q", res.NewDocument)
	}
	if res.RangeStart != 0 {
		t.Errorf("RangeStart = %d, want 0", res.RangeStart)
	}
}
