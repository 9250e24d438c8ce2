package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	promptgen "github.com/itsatony/go-promptgen"
)

// Test data constants
const (
	testPackID   = "fantasy"
	testPackFile = "fantasy.yaml"

	testPackContent = `id: fantasy
name: Fantasy
description: Fantasy portrait building blocks
groups:
  - name: Hair
    tags: [appearance]
    options:
      - blonde hair
      - red hair
  - name: Mood
    tags: [feeling]
    options:
      - somber
      - joyful
templates:
  - name: Portrait
    source: "A {Hair} portrait"
`
)

// writeTestPack writes the fixture pack into a temp dir.
func writeTestPack(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), testPackFile)
	require.NoError(t, os.WriteFile(path, []byte(testPackContent), FilePermissions))
	return path
}

// resetCLIState clears flag variables and parsed-flag markers so each
// execution starts from defaults.
func resetCLIState() {
	libPaths = nil
	jsonOutput = false
	inlineSource = ""
	templateName = ""
	slotFlags = nil
	seedFlag = 0
	showTrace = false
	showGroups = false
	for _, c := range []*cobra.Command{rootCmd, parseCmd, renderCmd, searchCmd, listCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// execCLI runs the root command with the given args and captures output.
func execCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCLIState()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// ==================== parse ====================

func TestParseCmd_ValidTemplate(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "parse", "--lib", pack, "--inline", "A {Hair} day, {Mood}")

	require.NoError(t, err)
	assert.Contains(t, stdout, MsgTemplateValid)
}

func TestParseCmd_SyntaxOnlyWithoutLibs(t *testing.T) {
	// no --lib: references are not resolved, syntax alone decides
	stdout, _, err := execCLI(t, "parse", "--inline", "A {SomethingUndefined} day")

	require.NoError(t, err)
	assert.Contains(t, stdout, MsgTemplateValid)
}

func TestParseCmd_UnknownReferenceFails(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "parse", "--lib", pack, "--inline", "{Zzz}")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTemplateInvalid)
	assert.Contains(t, stdout, "Zzz")
}

func TestParseCmd_FileArgument(t *testing.T) {
	pack := writeTestPack(t)
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(templatePath, []byte("A {Hair} day"), FilePermissions))

	stdout, _, err := execCLI(t, "parse", "--lib", pack, templatePath)

	require.NoError(t, err)
	assert.Contains(t, stdout, MsgTemplateValid)
}

func TestParseCmd_MissingTemplateFile(t *testing.T) {
	_, _, err := execCLI(t, "parse", filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadTemplateFailed)
}

func TestParseCmd_NoSource(t *testing.T) {
	_, _, err := execCLI(t, "parse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNoTemplateSource)
}

func TestParseCmd_InlineAndFileConflict(t *testing.T) {
	_, _, err := execCLI(t, "parse", "--inline", "x", "some-file.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInlineAndFile)
}

func TestParseCmd_JSONReport(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "parse", "--json", "--lib", pack, "--inline", "{Hairr}")

	require.Error(t, err)
	var report cliParseReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Success)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Line)
	assert.Equal(t, 1, report.Errors[0].Column)
	assert.Equal(t, "Hair", report.Errors[0].Suggestion)
}

// ==================== render ====================

func TestRenderCmd_SeededIsReproducible(t *testing.T) {
	pack := writeTestPack(t)

	first, stderr1, err := execCLI(t, "render", "--lib", pack, "--inline", "{Hair}", "--seed", "7")
	require.NoError(t, err)
	second, _, err := execCLI(t, "render", "--lib", pack, "--inline", "{Hair}", "--seed", "7")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, []string{"blonde hair\n", "red hair\n"}, first)
	assert.Contains(t, stderr1, fmt.Sprintf(FmtSeedLine, uint64(7)))
}

func TestRenderCmd_SlotValues(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "render", "--lib", pack,
		"--inline", "Hi {{ Name }}", "--slot", "Name=Ada")

	require.NoError(t, err)
	assert.Equal(t, "Hi Ada\n", stdout)
}

func TestRenderCmd_SlotValueMayContainSeparator(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "render", "--lib", pack,
		"--inline", "{{ Eq }}", "--slot", "Eq=a=b")

	require.NoError(t, err)
	assert.Equal(t, "a=b\n", stdout)
}

func TestRenderCmd_InvalidSlotFlag(t *testing.T) {
	pack := writeTestPack(t)

	_, _, err := execCLI(t, "render", "--lib", pack, "--inline", "x", "--slot", "novalue")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidSlot)
}

func TestRenderCmd_MissingSlotFails(t *testing.T) {
	pack := writeTestPack(t)

	_, _, err := execCLI(t, "render", "--lib", pack, "--inline", "{{ Missing }}")

	require.Error(t, err)
	assert.Contains(t, err.Error(), promptgen.ErrMsgMissingSlotValue)
}

func TestRenderCmd_SavedTemplate(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "render", "--lib", pack, "--template", "Portrait", "--seed", "3")

	require.NoError(t, err)
	assert.Contains(t, []string{"A blonde hair portrait\n", "A red hair portrait\n"}, stdout)
}

func TestRenderCmd_SavedTemplateNotFound(t *testing.T) {
	pack := writeTestPack(t)

	_, _, err := execCLI(t, "render", "--lib", pack, "--template", "Nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), promptgen.ErrMsgTemplateNotFound)
}

func TestRenderCmd_TemplateNeedsLibs(t *testing.T) {
	_, _, err := execCLI(t, "render", "--template", "Portrait")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTemplateNeedsLibs)
}

func TestRenderCmd_InlineAndTemplateConflict(t *testing.T) {
	pack := writeTestPack(t)

	_, _, err := execCLI(t, "render", "--lib", pack, "--inline", "x", "--template", "Portrait")

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInlineAndTemplate)
}

func TestRenderCmd_TraceGoesToStderr(t *testing.T) {
	pack := writeTestPack(t)

	stdout, stderr, err := execCLI(t, "render", "--lib", pack,
		"--inline", "{Hair}", "--seed", "5", "--trace")

	require.NoError(t, err)
	assert.NotContains(t, stdout, FmtTraceHead)
	assert.Contains(t, stderr, FmtTraceHead)
	assert.Contains(t, stderr, testPackID+"/Hair")
}

func TestRenderCmd_JSONReport(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "render", "--json", "--lib", pack,
		"--inline", "{Hair}", "--seed", "9")

	require.NoError(t, err)
	var report cliRenderReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, uint64(9), report.Seed)
	assert.Contains(t, []string{"blonde hair", "red hair"}, report.Output)
	require.Len(t, report.Choices, 1)
	assert.Equal(t, testPackID, report.Choices[0].Library)
	assert.Equal(t, "Hair", report.Choices[0].Group)
	assert.Equal(t, 1, report.Choices[0].Line)
}

// ==================== search ====================

func TestSearchCmd_ListsGroupsWithoutQuery(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "search", "--lib", pack)

	require.NoError(t, err)
	assert.Contains(t, stdout, testPackID+"/Hair (2 options)")
	assert.Contains(t, stdout, testPackID+"/Mood (2 options)")
}

func TestSearchCmd_OptionQuery(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "search", "--lib", pack, "@Hair/bl")

	require.NoError(t, err)
	assert.Contains(t, stdout, "blonde hair")
	assert.NotContains(t, stdout, "red hair")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "search", "--lib", pack, "zzzz")

	require.NoError(t, err)
	assert.Contains(t, stdout, MsgNoResults)
}

func TestSearchCmd_JSONReport(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "search", "--json", "--lib", pack, "hai")

	require.NoError(t, err)
	var report cliSearchReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, string(promptgen.SearchKindGroups), report.Kind)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "Hair", report.Groups[0].Group)
}

// ==================== list ====================

func TestListCmd_Text(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "list", "--lib", pack)

	require.NoError(t, err)
	assert.Contains(t, stdout, testPackID)
	assert.Contains(t, stdout, "Fantasy")
	assert.Contains(t, stdout, "Portrait")
	assert.NotContains(t, stdout, "Hair")
}

func TestListCmd_WithGroups(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "list", "--lib", pack, "--groups")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Hair")
	assert.Contains(t, stdout, "appearance")
}

func TestListCmd_JSONReport(t *testing.T) {
	pack := writeTestPack(t)

	stdout, _, err := execCLI(t, "list", "--json", "--lib", pack, "--groups")

	require.NoError(t, err)
	var infos []cliLibraryInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, testPackID, infos[0].ID)
	assert.Equal(t, 2, infos[0].GroupCount)
	require.Len(t, infos[0].Groups, 2)
	assert.Equal(t, []string{"Portrait"}, infos[0].Templates)
}

func TestListCmd_MissingPackFile(t *testing.T) {
	_, _, err := execCLI(t, "list", "--lib", filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadPackFailed)
}

// ==================== helpers ====================

func TestParseSlotFlags(t *testing.T) {
	slots, err := parseSlotFlags([]string{"a=1", "b=x=y"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y"}, slots)
}

func TestParseSlotFlags_Empty(t *testing.T) {
	slots, err := parseSlotFlags(nil)

	require.NoError(t, err)
	assert.Nil(t, slots)
}

func TestParseSlotFlags_MissingValue(t *testing.T) {
	_, err := parseSlotFlags([]string{"broken"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidSlot)
}

func TestParseSlotFlags_EmptyName(t *testing.T) {
	_, err := parseSlotFlags([]string{"=value"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidSlot)
}

func TestLineColumn(t *testing.T) {
	source := "ab\ncd\ne"

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
	}
	for _, tt := range tests {
		line, col := lineColumn(source, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.column, col, "offset %d", tt.offset)
	}
}
