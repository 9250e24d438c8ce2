package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	promptgen "github.com/itsatony/go-promptgen"
)

// listCmd prints the loaded libraries in load order.
var listCmd = &cobra.Command{
	Use:   CmdUseList,
	Short: CmdShortList,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// cliGroupInfo is one group in JSON listing output.
type cliGroupInfo struct {
	Name    string   `json:"name"`
	Tags    []string `json:"tags,omitempty"`
	Options int      `json:"options"`
}

// cliLibraryInfo is one library in JSON listing output.
type cliLibraryInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Groups      []cliGroupInfo `json:"groups,omitempty"`
	GroupCount  int            `json:"groupCount"`
	Templates   []string       `json:"templates,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(libPaths)
	if err != nil {
		return err
	}

	infos := listLibraries(w, showGroups)
	if jsonOutput {
		return writeJSON(cmd, infos)
	}

	out := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(out, FmtLibraryLine, info.ID, info.Name, info.GroupCount)
		if info.Description != "" {
			fmt.Fprintf(out, FmtLibraryDesc, info.Description)
		}
		for _, g := range info.Groups {
			fmt.Fprintf(out, FmtGroupLine, g.Name, strings.Join(g.Tags, ", "), g.Options)
		}
		for _, name := range info.Templates {
			fmt.Fprintf(out, FmtTemplateLine, name)
		}
	}
	return nil
}

func listLibraries(w *promptgen.Workspace, withGroups bool) []cliLibraryInfo {
	infos := make([]cliLibraryInfo, 0, len(w.GetLibraryIDs()))
	for _, id := range w.GetLibraryIDs() {
		lib, ok := w.GetLibrary(id)
		if !ok {
			continue
		}
		info := cliLibraryInfo{
			ID:          lib.ID,
			Name:        lib.Name,
			Description: lib.Description,
			GroupCount:  len(lib.Groups),
		}
		if withGroups {
			for _, g := range lib.Groups {
				info.Groups = append(info.Groups, cliGroupInfo{
					Name:    g.Name,
					Tags:    g.Tags,
					Options: len(g.Options),
				})
			}
		}
		for _, t := range lib.Templates {
			info.Templates = append(info.Templates, t.Name)
		}
		infos = append(infos, info)
	}
	return infos
}
