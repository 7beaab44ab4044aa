package apply

import (
	"fmt"
	"strings"

	"latex-editor/internal/intent"
)

// SystemPrompt frames the generation service's role for every request.
const SystemPrompt = `You are an academic writing assistant working on a LaTeX document. ` +
	`Produce LaTeX that compiles with the document's existing preamble. ` +
	`Return generated document content inside a fenced code block and keep any commentary outside it. ` +
	`Never repeat parts of the document you were not asked to change.`

// PromptInput is everything the prompt builder packages into one instruction
// string for the generation service.
type PromptInput struct {
	UserPrompt     string
	DocumentText   string
	SelectedText   string
	TargetSection  string
	Action         intent.Action
	InsertionPoint intent.InsertionPoint
	IsCreation     bool
}

// BuildPrompt renders the single natural-language instruction sent to the
// generation service, one template per action/target combination.
func BuildPrompt(in PromptInput) string {
	var sb strings.Builder

	switch {
	case in.Action == intent.ActionDelete && in.TargetSection != "":
		fmt.Fprintf(&sb, "The user wants to delete the %q section. ", in.TargetSection)
		sb.WriteString("If the request is clear, confirm with a sentence beginning \"I've deleted\". ")
		sb.WriteString("If it is ambiguous, ask for clarification instead and do not confirm.\n")
	case in.IsCreation && in.TargetSection != "":
		fmt.Fprintf(&sb, "Write a complete new %q section for the document below, including its \\section header.\n", in.TargetSection)
	case in.IsCreation:
		sb.WriteString("Write a complete new section for the document below, including a \\section header with a fitting title.\n")
	case in.Action == intent.ActionReplace && in.TargetSection != "":
		fmt.Fprintf(&sb, "Rewrite the %q section of the document below in full, including its \\section header.\n", in.TargetSection)
	case (in.Action == intent.ActionAdd || in.Action == intent.ActionExpand) && in.TargetSection != "":
		position := "end"
		if in.InsertionPoint == intent.InsertBeginning {
			position = "beginning"
		}
		fmt.Fprintf(&sb, "Write content to be inserted at the %s of the %q section of the document below. ", position, in.TargetSection)
		sb.WriteString("Do not repeat the section header.\n")
	case in.Action == intent.ActionFix || in.Action == intent.ActionImprove:
		if in.SelectedText != "" {
			sb.WriteString("Rewrite the selected passage below, preserving its meaning and improving its quality. Return only the rewritten passage.\n")
		} else {
			sb.WriteString("Improve the document below as requested. Return only the changed content.\n")
		}
	default:
		sb.WriteString("Write content for the document below as requested.\n")
	}

	fmt.Fprintf(&sb, "\nRequest: %s\n", in.UserPrompt)

	if in.SelectedText != "" {
		sb.WriteString("\nSelected passage:\n```latex\n")
		sb.WriteString(in.SelectedText)
		sb.WriteString("\n```\n")
	}

	sb.WriteString("\nCurrent document:\n```latex\n")
	sb.WriteString(in.DocumentText)
	sb.WriteString("\n```\n")

	return sb.String()
}
