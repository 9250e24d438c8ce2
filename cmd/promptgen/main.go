package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	promptgen "github.com/itsatony/go-promptgen"
)

var (
	// Global flags
	libPaths   []string
	jsonOutput bool

	// render flags
	inlineSource string
	templateName string
	slotFlags    []string
	seedFlag     uint64
	showTrace    bool

	// list flags
	showGroups bool
)

// rootCmd is the base command; subcommands do the actual work.
var rootCmd = &cobra.Command{
	Use:           CLIName,
	Short:         CLIShort,
	Long:          CLILong,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&libPaths, FlagLib, FlagLibShort, nil, FlagHelpLib)
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, FlagJSON, false, FlagHelpJSON)

	parseCmd.Flags().StringVarP(&inlineSource, FlagInline, FlagInlineShort, "", FlagHelpInline)

	renderCmd.Flags().StringVarP(&inlineSource, FlagInline, FlagInlineShort, "", FlagHelpInline)
	renderCmd.Flags().StringVarP(&templateName, FlagTemplate, FlagTemplateShort, "", FlagHelpTemplate)
	renderCmd.Flags().StringArrayVarP(&slotFlags, FlagSlot, FlagSlotShort, nil, FlagHelpSlot)
	renderCmd.Flags().Uint64Var(&seedFlag, FlagSeed, 0, FlagHelpSeed)
	renderCmd.Flags().BoolVar(&showTrace, FlagTrace, false, FlagHelpTrace)

	listCmd.Flags().BoolVarP(&showGroups, FlagGroups, FlagGroupsShort, false, FlagHelpGroups)

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadWorkspace builds a workspace from the --lib pack files. File
// reading stays here; the engine only ever sees pack text.
func loadWorkspace(paths []string) (*promptgen.Workspace, error) {
	builder := promptgen.NewWorkspaceBuilder()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ErrMsgReadPackFailed, path, err)
		}
		lib, err := promptgen.ParseLibraryPack(string(data))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		builder.AddLibrary(lib)
	}
	return builder.Build(), nil
}

// parseSlotFlags turns repeated name=value flags into a slot map.
func parseSlotFlags(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	slots := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, SlotSeparator)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: %q", ErrMsgInvalidSlot, v)
		}
		slots[name] = value
	}
	return slots, nil
}

// lineColumn converts a rune offset into 1-based line and column.
func lineColumn(source string, offset int) (int, int) {
	line, col := 1, 1
	for i, r := range []rune(source) {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// writeJSON pretty-prints v on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeJSONFailed, err)
	}
	return nil
}
