package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	promptgen "github.com/itsatony/go-promptgen"
)

// parseCmd checks a template and reports diagnostics. With --lib the
// template is also resolved against the loaded libraries; without it
// only the syntax is checked.
var parseCmd = &cobra.Command{
	Use:   CmdUseParse,
	Short: CmdShortParse,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

// cliDiagnostic is one diagnostic with the span resolved to line/column.
type cliDiagnostic struct {
	Severity   string `json:"severity"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Suggestion string `json:"suggestion,omitempty"`
}

// cliParseReport is the JSON shape of a parse run.
type cliParseReport struct {
	Success  bool            `json:"success"`
	Errors   []cliDiagnostic `json:"errors"`
	Warnings []cliDiagnostic `json:"warnings"`
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := templateSourceFromArgs(args)
	if err != nil {
		return err
	}

	var result *promptgen.ParseResult
	if len(libPaths) > 0 {
		w, err := loadWorkspace(libPaths)
		if err != nil {
			return err
		}
		result = w.ParseTemplate(source)
	} else {
		result = promptgen.ParseTemplateSource(source)
	}

	if jsonOutput {
		if err := writeJSON(cmd, parseReport(source, result)); err != nil {
			return err
		}
	} else {
		printDiagnostics(cmd, source, result.Errors)
		printDiagnostics(cmd, source, result.Warnings)
		if result.Success && len(result.Warnings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), MsgTemplateValid)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), FmtIssueCount, len(result.Errors), len(result.Warnings))
		}
	}

	if !result.Success {
		return errors.New(ErrMsgTemplateInvalid)
	}
	return nil
}

// templateSourceFromArgs resolves the template text from --inline or a
// file argument.
func templateSourceFromArgs(args []string) (string, error) {
	hasFile := len(args) == 1
	hasInline := inlineSource != ""
	switch {
	case hasInline && hasFile:
		return "", errors.New(ErrMsgInlineAndFile)
	case hasInline:
		return inlineSource, nil
	case hasFile:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("%s %q: %w", ErrMsgReadTemplateFailed, args[0], err)
		}
		return string(data), nil
	default:
		return "", errors.New(ErrMsgNoTemplateSource)
	}
}

func parseReport(source string, result *promptgen.ParseResult) cliParseReport {
	return cliParseReport{
		Success:  result.Success,
		Errors:   cliDiagnostics(source, result.Errors),
		Warnings: cliDiagnostics(source, result.Warnings),
	}
}

func cliDiagnostics(source string, diags []promptgen.Diagnostic) []cliDiagnostic {
	out := make([]cliDiagnostic, 0, len(diags))
	for _, d := range diags {
		line, col := lineColumn(source, d.Span.Start)
		out = append(out, cliDiagnostic{
			Severity:   d.Severity.String(),
			Kind:       d.Kind,
			Message:    d.Message,
			Line:       line,
			Column:     col,
			Suggestion: d.Suggestion,
		})
	}
	return out
}

func printDiagnostics(cmd *cobra.Command, source string, diags []promptgen.Diagnostic) {
	for _, d := range diags {
		line, col := lineColumn(source, d.Span.Start)
		fmt.Fprintf(cmd.OutOrStdout(), FmtDiagnosticLine, d.Severity, d.Kind, line, col, d.Message)
		if d.Suggestion != "" {
			fmt.Fprintf(cmd.OutOrStdout(), FmtSuggestionLine, d.Suggestion)
		}
	}
}
