package apply

import (
	"fmt"

	"latex-editor/internal/document"
	"latex-editor/internal/editor"
	"latex-editor/internal/intent"
	"latex-editor/internal/logger"
)

// Selection is an editor selection, offsets into the request's DocumentText.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Range is a character range in the result document.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Request is one edit cycle's input. Completion is the generation service's
// raw reply; the engine performs no network calls itself.
type Request struct {
	DocumentText string
	Prompt       string
	Completion   string
	Selection    *Selection
	CursorPos    int // -1 when unknown
}

// Result is the outcome of one edit cycle. NewDocumentText is always usable;
// the fallback chain guarantees the completion lands somewhere.
type Result struct {
	NewDocumentText string
	RangeAffected   Range
	Action          intent.Action
	TargetSection   string
	Strategy        string
	Trace           *Trace
}

// Trace records the decisions made during one Apply pass so tests and
// diagnostics can see which rule, tier, and strategy fired without scraping
// log output.
type Trace struct {
	Steps []TraceStep
}

// TraceStep is one recorded decision.
type TraceStep struct {
	Name  string
	Value string
}

func (t *Trace) add(name, format string, args ...interface{}) {
	t.Steps = append(t.Steps, TraceStep{Name: name, Value: fmt.Sprintf(format, args...)})
}

// Has reports whether a step with the given name and value was recorded.
func (t *Trace) Has(name, value string) bool {
	for _, s := range t.Steps {
		if s.Name == name && s.Value == value {
			return true
		}
	}
	return false
}

// Strategy names recorded in Result.Strategy.
const (
	StrategySection       = "section"
	StrategyCreation      = "section-creation"
	StrategySelection     = "selection-replace"
	StrategyCursor        = "cursor-insert"
	StrategyDocumentStart = "document-start"
)

// fallbackStrategy is one entry of the ordered degradation chain. It returns
// nil when its precondition does not hold, letting the next strategy try.
type fallbackStrategy struct {
	name string
	run  func(req *Request, completion string, confirmedDeletion bool) *Result
}

// fallbacks run in order once structural targeting is exhausted. The final
// strategy always succeeds: the engine never discards a generated answer.
var fallbacks = []fallbackStrategy{
	{name: StrategySelection, run: applyToSelection},
	{name: StrategyCursor, run: applyAtCursor},
	{name: StrategyDocumentStart, run: applyAtDocumentStart},
}

// Apply runs one full classify → locate → edit pass. It never returns an
// error for "could not find" conditions: every miss degrades to the next
// strategy, down to inserting the completion at the start of the document.
func Apply(req *Request) *Result {
	trace := &Trace{}

	index := document.Scan(req.DocumentText)
	trace.add("scan", "%d elements", len(index.Elements))

	completion, source := ExtractCompletion(req.Completion)
	trace.add("completion-source", "%s", string(source))

	cls := intent.Classify(req.Prompt, index)
	trace.add("action", "%s", string(cls.Action))
	trace.add("insertion-point", "%s", string(cls.InsertionPoint))
	if cls.TargetSection != "" {
		trace.add("target-section", "%s", cls.TargetSection)
	}

	confirmed := ConfirmsDeletion(req.Completion)

	if cls.TargetSection != "" {
		if res := applyToSection(req, index, cls, completion, confirmed, trace); res != nil {
			return finish(res, cls, trace)
		}
	}

	for _, fb := range fallbacks {
		if res := fb.run(req, completion, confirmed); res != nil {
			trace.add("strategy", "%s", fb.name)
			res.Strategy = fb.name
			return finish(res, cls, trace)
		}
	}

	// Unreachable: the document-start strategy always produces a result.
	panic("apply: no strategy produced a result")
}

func finish(res *Result, cls intent.Classification, trace *Trace) *Result {
	res.Action = cls.Action
	res.TargetSection = cls.TargetSection
	res.Trace = trace
	logger.Info("edit applied",
		logger.String("action", string(cls.Action)),
		logger.String("strategy", res.Strategy),
		logger.Int("newLength", len(res.NewDocumentText)))
	return res
}

// applyToSection handles the structural branch. A nil return means the
// section path could not serve this request and the fallback chain takes
// over.
func applyToSection(req *Request, index *document.Index, cls intent.Classification, completion string, confirmed bool, trace *Trace) *Result {
	boundary := document.Locate(index, req.DocumentText, cls.TargetSection)
	if boundary != nil {
		trace.add("locate", "%s via %s", boundary.SectionName, string(boundary.Tier))
	} else {
		trace.add("locate", "not found")
		if suggestions := document.Suggest(index, cls.TargetSection, 3); len(suggestions) > 0 {
			trace.add("suggestions", "%v", suggestions)
		}
	}

	switch cls.Action {
	case intent.ActionDelete:
		if boundary == nil {
			return nil
		}
		if !confirmed {
			// Ambiguous confirmation: no structural action at all.
			trace.add("delete", "unconfirmed, falling through")
			return nil
		}
		res := editor.DeleteSection(boundary)
		trace.add("delete", "confirmed")
		return resultFrom(res, StrategySection)

	case intent.ActionAdd, intent.ActionExpand:
		if boundary != nil {
			content := StripEchoedHeader(completion, boundary.SectionName)
			if content != completion {
				trace.add("strip-header", "echoed %q removed", boundary.SectionName)
			}
			res := editor.AddContentToSection(boundary, content, cls.InsertionPoint)
			return resultFrom(res, StrategySection)
		}
		if cls.IsCreation {
			trace.add("create", "%s", cls.TargetSection)
			res := editor.CreateSection(index, req.DocumentText, completion)
			return resultFrom(res, StrategyCreation)
		}
		return nil

	case intent.ActionReplace, intent.ActionFix, intent.ActionImprove:
		// Fix and improve on a located section are a rewrite in place.
		if boundary == nil {
			return nil
		}
		res := editor.ReplaceSection(boundary, completion)
		return resultFrom(res, StrategySection)

	default:
		return nil
	}
}

func resultFrom(res *editor.Result, strategy string) *Result {
	if res == nil {
		return nil
	}
	return &Result{
		NewDocumentText: res.NewDocument,
		RangeAffected:   Range{Start: res.RangeStart, End: res.RangeEnd},
		Strategy:        strategy,
	}
}

func applyToSelection(req *Request, completion string, confirmedDeletion bool) *Result {
	if req.Selection == nil {
		return nil
	}
	start := clamp(req.Selection.Start, 0, len(req.DocumentText))
	end := clamp(req.Selection.End, start, len(req.DocumentText))

	// An empty or deletion-confirming completion deletes the selection.
	content := completion
	if confirmedDeletion {
		content = ""
	}

	newDoc := req.DocumentText[:start] + content + req.DocumentText[end:]
	return &Result{
		NewDocumentText: newDoc,
		RangeAffected:   Range{Start: start, End: start + len(content)},
	}
}

func applyAtCursor(req *Request, completion string, confirmedDeletion bool) *Result {
	if req.CursorPos < 0 {
		return nil
	}
	pos := clamp(req.CursorPos, 0, len(req.DocumentText))

	// A deletion confirmation with nothing to delete must not splice the
	// confirmation prose into the document.
	content := completion
	if confirmedDeletion {
		content = ""
	}

	newDoc := req.DocumentText[:pos] + content + req.DocumentText[pos:]
	return &Result{
		NewDocumentText: newDoc,
		RangeAffected:   Range{Start: pos, End: pos + len(content)},
	}
}

func applyAtDocumentStart(req *Request, completion string, confirmedDeletion bool) *Result {
	content := completion
	if confirmedDeletion {
		content = ""
	}
	newDoc := content + req.DocumentText
	return &Result{
		NewDocumentText: newDoc,
		RangeAffected:   Range{Start: 0, End: len(content)},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
