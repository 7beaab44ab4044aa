// Package editor performs the actual content splices. Every operation is a
// pure function over immutable strings: it takes a section boundary computed
// against the current document text and returns a whole new document, leaving
// every byte outside the touched range identical.
package editor

import (
	"strings"

	"latex-editor/internal/document"
	"latex-editor/internal/intent"
	"latex-editor/internal/logger"
)

// Result reports one executed edit. NewDocument is the complete new text;
// RangeStart/RangeEnd delimit the affected region within it, for the caller
// to highlight or select.
type Result struct {
	NewDocument    string
	OriginalLength int
	NewLength      int
	Section        string
	AddedContent   string
	DeletedContent string
	InsertionPoint intent.InsertionPoint
	RangeStart     int
	RangeEnd       int
}

// AddContentToSection splices newContent into the section held by boundary.
// At InsertBeginning the content goes immediately after the section's header
// line (the first line of the section); at InsertEnd it is appended after the
// section's trailing whitespace is trimmed. Returns nil when boundary is nil;
// callers must treat that as section-not-found, not as an empty edit.
func AddContentToSection(boundary *document.Boundary, newContent string, point intent.InsertionPoint) *Result {
	if boundary == nil {
		return nil
	}

	content := strings.TrimSpace(newContent)
	original := boundary.OriginalContent

	var updated string
	var rangeStart int
	switch point {
	case intent.InsertBeginning:
		headerEnd := strings.Index(original, "\n")
		if headerEnd < 0 {
			// Header-only section.
			updated = original + "\n" + content
			rangeStart = boundary.StartPos + len(original) + 1
		} else {
			updated = original[:headerEnd] + "\n" + content + original[headerEnd:]
			rangeStart = boundary.StartPos + headerEnd + 1
		}
	default:
		trimmed := strings.TrimRight(original, " \t\n")
		updated = trimmed + "\n" + content
		rangeStart = boundary.StartPos + len(trimmed) + 1
	}

	newDoc := boundary.BeforeContent + updated + boundary.AfterContent
	logger.Debug("content added to section",
		logger.String("section", boundary.SectionName),
		logger.String("insertionPoint", string(point)),
		logger.Int("added", len(content)))

	return &Result{
		NewDocument:    newDoc,
		OriginalLength: len(boundary.BeforeContent) + len(original) + len(boundary.AfterContent),
		NewLength:      len(newDoc),
		Section:        boundary.SectionName,
		AddedContent:   content,
		InsertionPoint: point,
		RangeStart:     rangeStart,
		RangeEnd:       rangeStart + len(content),
	}
}

// DeleteSection excises the section entirely, header included. The affected
// range collapses to the deletion point.
func DeleteSection(boundary *document.Boundary) *Result {
	if boundary == nil {
		return nil
	}

	newDoc := boundary.BeforeContent + boundary.AfterContent
	logger.Debug("section deleted",
		logger.String("section", boundary.SectionName),
		logger.Int("removed", len(boundary.OriginalContent)))

	return &Result{
		NewDocument:    newDoc,
		OriginalLength: len(newDoc) + len(boundary.OriginalContent),
		NewLength:      len(newDoc),
		Section:        boundary.SectionName,
		DeletedContent: boundary.OriginalContent,
		RangeStart:     boundary.StartPos,
		RangeEnd:       boundary.StartPos,
	}
}

// ReplaceSection substitutes the whole section, header included, with
// newSectionContent verbatim. No header inference happens here: if the new
// content wants a header, the caller supplies it.
func ReplaceSection(boundary *document.Boundary, newSectionContent string) *Result {
	if boundary == nil {
		return nil
	}

	newDoc := boundary.BeforeContent + newSectionContent + boundary.AfterContent
	logger.Debug("section replaced",
		logger.String("section", boundary.SectionName),
		logger.Int("oldLen", len(boundary.OriginalContent)),
		logger.Int("newLen", len(newSectionContent)))

	return &Result{
		NewDocument:    newDoc,
		OriginalLength: len(boundary.BeforeContent) + len(boundary.OriginalContent) + len(boundary.AfterContent),
		NewLength:      len(newDoc),
		Section:        boundary.SectionName,
		AddedContent:   newSectionContent,
		RangeStart:     boundary.StartPos,
		RangeEnd:       boundary.StartPos + len(newSectionContent),
	}
}

// CreateSection inserts a complete new section (header retained by the
// caller) into text. The content goes immediately before the first
// document-end marker, blank-line separated on both sides; with no marker it
// is appended at the end. This path needs no boundary: there is nothing to
// locate yet.
func CreateSection(index *document.Index, text, sectionContent string) *Result {
	content := strings.TrimSpace(sectionContent)

	var newDoc string
	var rangeStart int
	if marker := index.FirstEndMarker(); marker != nil {
		prefix := text[:marker.CharStart]
		lead := ""
		if !strings.HasSuffix(prefix, "\n\n") {
			if strings.HasSuffix(prefix, "\n") {
				lead = "\n"
			} else {
				lead = "\n\n"
			}
		}
		rangeStart = len(prefix) + len(lead)
		newDoc = prefix + lead + content + "\n\n" + text[marker.CharStart:]
	} else {
		trimmed := strings.TrimRight(text, " \t\n")
		if trimmed == "" {
			rangeStart = 0
			newDoc = content + "\n"
		} else {
			rangeStart = len(trimmed) + 2
			newDoc = trimmed + "\n\n" + content + "\n"
		}
	}

	logger.Debug("section created", logger.Int("contentLen", len(content)))
	return &Result{
		NewDocument:    newDoc,
		OriginalLength: len(text),
		NewLength:      len(newDoc),
		AddedContent:   content,
		RangeStart:     rangeStart,
		RangeEnd:       rangeStart + len(content),
	}
}
