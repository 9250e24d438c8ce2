package main

import (
	"fmt"

	"github.com/spf13/cobra"

	promptgen "github.com/itsatony/go-promptgen"
)

// searchCmd runs a combined query against the loaded libraries. Query
// forms follow the engine: a bare term matches group names, "@name/term"
// matches options within matching groups, no query lists every group.
var searchCmd = &cobra.Command{
	Use:   CmdUseSearch,
	Short: CmdShortSearch,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

// cliGroupResult is one matched group in JSON output.
type cliGroupResult struct {
	Library string   `json:"library"`
	Group   string   `json:"group"`
	Score   int      `json:"score,omitempty"`
	Options []string `json:"options"`
}

// cliOptionResult is one group's matched options in JSON output.
type cliOptionResult struct {
	Library string   `json:"library"`
	Group   string   `json:"group"`
	Matches []string `json:"matches"`
}

// cliSearchReport is the JSON shape of a search run.
type cliSearchReport struct {
	Kind    string            `json:"kind"`
	Groups  []cliGroupResult  `json:"groups,omitempty"`
	Options []cliOptionResult `json:"options,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(libPaths)
	if err != nil {
		return err
	}
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	result := w.Search(query)

	if jsonOutput {
		return writeJSON(cmd, searchReport(result))
	}

	out := cmd.OutOrStdout()
	switch result.Kind {
	case promptgen.SearchKindGroups:
		if len(result.Groups) == 0 {
			fmt.Fprint(out, MsgNoResults)
			return nil
		}
		for _, g := range result.Groups {
			fmt.Fprintf(out, FmtGroupResult, g.LibraryID, g.GroupName, len(g.Options))
		}
	case promptgen.SearchKindOptions:
		if len(result.Options) == 0 {
			fmt.Fprint(out, MsgNoResults)
			return nil
		}
		for _, o := range result.Options {
			fmt.Fprintf(out, FmtOptionResult, o.LibraryID, o.GroupName)
			for _, m := range o.Matches {
				fmt.Fprintf(out, FmtOptionMatch, m.Text)
			}
		}
	}
	return nil
}

func searchReport(result *promptgen.SearchResult) cliSearchReport {
	report := cliSearchReport{Kind: string(result.Kind)}
	for _, g := range result.Groups {
		report.Groups = append(report.Groups, cliGroupResult{
			Library: g.LibraryID,
			Group:   g.GroupName,
			Score:   g.Score,
			Options: g.Options,
		})
	}
	for _, o := range result.Options {
		matches := make([]string, 0, len(o.Matches))
		for _, m := range o.Matches {
			matches = append(matches, m.Text)
		}
		report.Options = append(report.Options, cliOptionResult{
			Library: o.LibraryID,
			Group:   o.GroupName,
			Matches: matches,
		})
	}
	return report
}
