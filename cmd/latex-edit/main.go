// latex-edit is a command-line tool for structure-aware LaTeX document editing
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"latex-editor/internal/apply"
	"latex-editor/internal/config"
	"latex-editor/internal/document"
	"latex-editor/internal/editor"
	"latex-editor/internal/generator"
	"latex-editor/internal/intent"
	"latex-editor/internal/logger"
)

func main() {
	logger.Init(&logger.Config{
		Level: logger.LevelWarn,
	})
	defer logger.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "scan":
		handleScanCommand()
	case "locate":
		handleLocateCommand()
	case "classify":
		handleClassifyCommand()
	case "apply":
		handleApplyCommand()
	case "generate":
		handleGenerateCommand()
	case "backup":
		handleBackupCommand()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `latex-edit - Structure-Aware LaTeX Editing Tool

Usage:
  latex-edit <command> [arguments]

Commands:
  scan        List the structural elements of a document
  locate      Find a section and print its boundaries
  classify    Classify an edit instruction
  apply       Apply a completion to a document
  generate    Generate a completion with the configured model and apply it
  backup      Backup management

Scan Commands:
  latex-edit scan <file>

Locate Commands:
  latex-edit locate <file> <section name>

Classify Commands:
  latex-edit classify <file> <prompt>

Apply Commands:
  latex-edit apply <file> <prompt> <completion-file>
  latex-edit apply --stdout <file> <prompt> <completion-file>

Generate Commands:
  latex-edit generate <file> <prompt>
  latex-edit generate --stdout <file> <prompt>

Backup Commands:
  latex-edit backup create <file>
  latex-edit backup restore <backup-file> <original-file>
  latex-edit backup list <file>

Examples:
  latex-edit scan main.tex
  latex-edit locate main.tex "related work"
  latex-edit classify main.tex "expand the methodology section"
  latex-edit apply main.tex "add a sentence to the conclusion" reply.md
`
	fmt.Println(usage)
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

func handleScanCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: latex-edit scan <file>")
		os.Exit(1)
	}

	text := readFile(os.Args[2])
	index := document.Scan(text)

	fmt.Printf("Lines: %d  Chars: %d  Elements: %d\n\n", index.TotalLines, index.TotalChars, len(index.Elements))
	for _, el := range index.Elements {
		start, end := el.CharRange()
		switch v := el.(type) {
		case *document.Section:
			fmt.Printf("line %4d  [%d:%d]  %s  %s\n", v.LineIndex, start, end, v.Level, v.Title)
		case *document.EnvironmentStart:
			fmt.Printf("line %4d  [%d:%d]  begin  %s\n", v.LineIndex, start, end, v.Name)
		case *document.EnvironmentEnd:
			fmt.Printf("line %4d  [%d:%d]  end    %s\n", v.LineIndex, start, end, v.Name)
		case *document.DocumentEndMarker:
			fmt.Printf("line %4d  [%d:%d]  end-marker  %s\n", v.LineIndex, start, end, v.Command)
		}
	}
}

func handleLocateCommand() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: latex-edit locate <file> <section name>")
		os.Exit(1)
	}

	text := readFile(os.Args[2])
	target := strings.Join(os.Args[3:], " ")
	index := document.Scan(text)

	boundary := document.Locate(index, text, target)
	if boundary == nil {
		fmt.Printf("Section %q not found\n", target)
		if suggestions := document.Suggest(index, target, 3); len(suggestions) > 0 {
			fmt.Printf("Did you mean: %s\n", strings.Join(suggestions, ", "))
		}
		os.Exit(1)
	}

	fmt.Printf("Section:  %s\n", boundary.SectionName)
	fmt.Printf("Match:    %s\n", boundary.Tier)
	fmt.Printf("Range:    [%d:%d]\n", boundary.StartPos, boundary.EndPos)
	fmt.Printf("Content:\n%s\n", boundary.OriginalContent)
}

func handleClassifyCommand() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: latex-edit classify <file> <prompt>")
		os.Exit(1)
	}

	text := readFile(os.Args[2])
	prompt := strings.Join(os.Args[3:], " ")
	index := document.Scan(text)

	cls := intent.Classify(prompt, index)
	fmt.Printf("Action:          %s\n", cls.Action)
	fmt.Printf("Insertion point: %s\n", cls.InsertionPoint)
	if cls.TargetSection != "" {
		fmt.Printf("Target section:  %s\n", cls.TargetSection)
	} else {
		fmt.Println("Target section:  (none)")
	}
	fmt.Printf("Creation:        %v\n", cls.IsCreation)
}

// applyArgs splits an optional leading --stdout flag from the positional
// arguments of apply and generate.
func applyArgs(minArgs int, usage string) (args []string, toStdout bool) {
	args = os.Args[2:]
	if len(args) > 0 && args[0] == "--stdout" {
		toStdout = true
		args = args[1:]
	}
	if len(args) < minArgs {
		fmt.Println(usage)
		os.Exit(1)
	}
	return args, toStdout
}

func runApply(file, prompt, completion string, toStdout bool) {
	if toStdout {
		text := readFile(file)
		res := apply.Apply(&apply.Request{
			DocumentText: text,
			Prompt:       prompt,
			Completion:   completion,
			CursorPos:    -1,
		})
		fmt.Print(res.NewDocumentText)
		return
	}

	backupMgr := editor.NewBackupManager("")
	var strategy string
	err := editor.ApplyToFile(file, backupMgr, func(old string) (string, error) {
		res := apply.Apply(&apply.Request{
			DocumentText: old,
			Prompt:       prompt,
			Completion:   completion,
			CursorPos:    -1,
		})
		strategy = res.Strategy
		return res.NewDocumentText, nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Edit applied (%s)\n", strategy)
}

func handleApplyCommand() {
	args, toStdout := applyArgs(3, "Usage: latex-edit apply [--stdout] <file> <prompt> <completion-file>")
	runApply(args[0], args[1], readFile(args[2]), toStdout)
}

func handleGenerateCommand() {
	args, toStdout := applyArgs(2, "Usage: latex-edit generate [--stdout] <file> <prompt>")
	file, prompt := args[0], strings.Join(args[1:], " ")

	mgr, err := config.NewManager("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := mgr.Load(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	gen, err := generator.New(ctx, mgr.Get())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	text := readFile(file)
	index := document.Scan(text)
	cls := intent.Classify(prompt, index)

	reply, err := gen.Complete(ctx, apply.SystemPrompt, apply.BuildPrompt(apply.PromptInput{
		UserPrompt:     prompt,
		DocumentText:   text,
		TargetSection:  cls.TargetSection,
		Action:         cls.Action,
		InsertionPoint: cls.InsertionPoint,
		IsCreation:     cls.IsCreation,
	}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	runApply(file, prompt, reply, toStdout)
}

func handleBackupCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: latex-edit backup <subcommand> [arguments]")
		os.Exit(1)
	}

	subcommand := os.Args[2]
	backupMgr := editor.NewBackupManager("")

	switch subcommand {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: latex-edit backup create <file>")
			os.Exit(1)
		}
		backupPath, err := backupMgr.CreateBackup(os.Args[3])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Backup created: %s\n", backupPath)

	case "restore":
		if len(os.Args) < 5 {
			fmt.Println("Usage: latex-edit backup restore <backup-file> <original-file>")
			os.Exit(1)
		}
		if err := backupMgr.Restore(os.Args[3], os.Args[4]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ File restored from backup")

	case "list":
		if len(os.Args) < 4 {
			fmt.Println("Usage: latex-edit backup list <file>")
			os.Exit(1)
		}
		backups, err := backupMgr.ListBackups(os.Args[3])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Println("No backups found")
			return
		}
		for i, b := range backups {
			fmt.Printf("%d: %s\n", i+1, b)
		}

	default:
		fmt.Printf("Unknown backup subcommand: %s\n", subcommand)
		os.Exit(1)
	}
}
