package api

import (
	"encoding/json"
	"net/http"

	"latex-editor/internal/apply"
	"latex-editor/internal/document"
	"latex-editor/internal/intent"
)

// elementJSON is the wire form of one structural element.
type elementJSON struct {
	Kind      string `json:"kind"`
	Name      string `json:"name,omitempty"`
	Title     string `json:"title,omitempty"`
	Level     string `json:"level,omitempty"`
	Line      int    `json:"line"`
	CharStart int    `json:"charStart"`
	CharEnd   int    `json:"charEnd"`
}

func elementsJSON(index *document.Index) []elementJSON {
	out := make([]elementJSON, 0, len(index.Elements))
	for _, el := range index.Elements {
		start, end := el.CharRange()
		e := elementJSON{Line: el.Line(), CharStart: start, CharEnd: end}
		switch v := el.(type) {
		case *document.Section:
			e.Kind = "section"
			e.Title = v.Title
			e.Level = v.Level.String()
		case *document.EnvironmentStart:
			e.Kind = "environment-start"
			e.Name = v.Name
		case *document.EnvironmentEnd:
			e.Kind = "environment-end"
			e.Name = v.Name
		case *document.DocumentEndMarker:
			e.Kind = "document-end"
			e.Name = v.Command
		}
		out = append(out, e)
	}
	return out
}

type scanRequest struct {
	DocumentText string `json:"documentText"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	index := document.Scan(req.DocumentText)
	writeJSON(w, map[string]any{
		"elements":   elementsJSON(index),
		"totalLines": index.TotalLines,
		"totalChars": index.TotalChars,
	})
}

type locateRequest struct {
	DocumentText string `json:"documentText"`
	Target       string `json:"target"`
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	index := document.Scan(req.DocumentText)
	boundary := document.Locate(index, req.DocumentText, req.Target)
	if boundary == nil {
		writeJSON(w, map[string]any{
			"found":       false,
			"suggestions": document.Suggest(index, req.Target, 3),
		})
		return
	}

	writeJSON(w, map[string]any{
		"found":    true,
		"section":  boundary.SectionName,
		"tier":     string(boundary.Tier),
		"startPos": boundary.StartPos,
		"endPos":   boundary.EndPos,
		"content":  boundary.OriginalContent,
	})
}

type applyRequest struct {
	DocumentText string           `json:"documentText"`
	Prompt       string           `json:"prompt"`
	Completion   string           `json:"completion,omitempty"`
	Selection    *apply.Selection `json:"selection,omitempty"`
	CursorPos    *int             `json:"cursorPos,omitempty"`
}

type applyResponse struct {
	NewDocumentText string      `json:"newDocumentText"`
	RangeAffected   apply.Range `json:"rangeAffected"`
	Action          string      `json:"action"`
	TargetSection   string      `json:"targetSection,omitempty"`
	Strategy        string      `json:"strategy"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		jsonError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	completion := req.Completion
	if completion == "" {
		if s.generator == nil {
			jsonError(w, "completion is required when no generation service is configured", http.StatusBadRequest)
			return
		}
		index := document.Scan(req.DocumentText)
		cls := intent.Classify(req.Prompt, index)

		in := apply.PromptInput{
			UserPrompt:     req.Prompt,
			DocumentText:   req.DocumentText,
			TargetSection:  cls.TargetSection,
			Action:         cls.Action,
			InsertionPoint: cls.InsertionPoint,
			IsCreation:     cls.IsCreation,
		}
		if req.Selection != nil {
			start, end := req.Selection.Start, req.Selection.End
			if start >= 0 && end <= len(req.DocumentText) && start <= end {
				in.SelectedText = req.DocumentText[start:end]
			}
		}

		reply, err := s.generator.Complete(r.Context(), apply.SystemPrompt, apply.BuildPrompt(in))
		if err != nil {
			jsonError(w, "generation failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		completion = reply
	}

	cursor := -1
	if req.CursorPos != nil {
		cursor = *req.CursorPos
	}

	res := apply.Apply(&apply.Request{
		DocumentText: req.DocumentText,
		Prompt:       req.Prompt,
		Completion:   completion,
		Selection:    req.Selection,
		CursorPos:    cursor,
	})

	writeJSON(w, applyResponse{
		NewDocumentText: res.NewDocumentText,
		RangeAffected:   res.RangeAffected,
		Action:          string(res.Action),
		TargetSection:   res.TargetSection,
		Strategy:        res.Strategy,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
