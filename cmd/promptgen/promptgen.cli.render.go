package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	promptgen "github.com/itsatony/go-promptgen"
)

// renderCmd renders a template. The source comes from --inline or from a
// saved template (--template) in one of the loaded libraries. The
// rendered text goes to stdout; the seed and the optional trace go to
// stderr so piped output stays clean.
var renderCmd = &cobra.Command{
	Use:   CmdUseRender,
	Short: CmdShortRender,
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

// cliChoice is one trace entry with the span resolved to line/column.
type cliChoice struct {
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Kind        string `json:"kind"`
	Library     string `json:"library,omitempty"`
	Group       string `json:"group,omitempty"`
	OptionIndex int    `json:"optionIndex"`
	Text        string `json:"text"`
}

// cliRenderReport is the JSON shape of a render run.
type cliRenderReport struct {
	Output     string            `json:"output"`
	Seed       uint64            `json:"seed"`
	Choices    []cliChoice       `json:"choices,omitempty"`
	SlotValues map[string]string `json:"slotValues,omitempty"`
}

func runRender(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(libPaths)
	if err != nil {
		return err
	}
	source, err := renderSource(w)
	if err != nil {
		return err
	}
	slots, err := parseSlotFlags(slotFlags)
	if err != nil {
		return err
	}

	var opts []promptgen.RenderOption
	if cmd.Flags().Changed(FlagSeed) {
		opts = append(opts, promptgen.WithSeed(seedFlag))
	}
	result, err := w.Render(source, slots, opts...)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd, renderReport(source, result))
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	fmt.Fprintf(cmd.ErrOrStderr(), FmtSeedLine, result.Seed)
	if showTrace {
		printTrace(cmd, source, result.Choices)
	}
	return nil
}

// renderSource picks the template text from the render flags.
func renderSource(w *promptgen.Workspace) (string, error) {
	hasInline := inlineSource != ""
	hasTemplate := templateName != ""
	switch {
	case hasInline && hasTemplate:
		return "", errors.New(ErrMsgInlineAndTemplate)
	case hasInline:
		return inlineSource, nil
	case hasTemplate:
		if len(libPaths) == 0 {
			return "", errors.New(ErrMsgTemplateNeedsLibs)
		}
		return findSavedTemplate(w, templateName)
	default:
		return "", errors.New(ErrMsgNoTemplateSource)
	}
}

// findSavedTemplate looks the name up across the loaded libraries in
// load order and returns its source.
func findSavedTemplate(w *promptgen.Workspace, name string) (string, error) {
	for _, id := range w.GetLibraryIDs() {
		lib, ok := w.GetLibrary(id)
		if !ok {
			continue
		}
		if t, found := lib.FindTemplate(name); found {
			return t.Source, nil
		}
	}
	return "", promptgen.NewTemplateNotFoundError(name)
}

func renderReport(source string, result *promptgen.RenderResult) cliRenderReport {
	report := cliRenderReport{
		Output:     result.Output,
		Seed:       result.Seed,
		SlotValues: result.SlotValues,
	}
	for _, c := range result.Choices {
		line, col := lineColumn(source, c.Span.Start)
		report.Choices = append(report.Choices, cliChoice{
			Line:        line,
			Column:      col,
			Kind:        string(c.Kind),
			Library:     c.LibraryID,
			Group:       c.GroupName,
			OptionIndex: c.OptionIndex,
			Text:        c.Text,
		})
	}
	return report
}

func printTrace(cmd *cobra.Command, source string, choices []promptgen.ChosenOption) {
	fmt.Fprint(cmd.ErrOrStderr(), FmtTraceHead)
	for _, c := range choices {
		line, col := lineColumn(source, c.Span.Start)
		origin := TraceKindInline
		if c.LibraryID != "" {
			origin = c.LibraryID + "/" + c.GroupName
		}
		fmt.Fprintf(cmd.ErrOrStderr(), FmtTraceLine, line, col, c.Kind, origin, c.Text)
	}
}
