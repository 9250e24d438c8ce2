package main

// CLI metadata
const (
	CLIName  = "promptgen"
	CLIShort = "promptgen - seeded prompt templating from reusable option libraries"
	CLILong  = `promptgen renders prompt templates against YAML option libraries.

Templates mix literal text with constructs:
  {{ Name }}        slot filled from --slot values
  {a|b}             inline alternatives
  @Group            reference to a library group
  {Tag + Other}     tag expression over group names and tags
  [[ "Tag" | some ]] expression block with pipeline stages

Draws are seeded: the same seed reproduces the same output.`
)

// Command use lines
const (
	CmdUseParse  = "parse [file]"
	CmdUseRender = "render"
	CmdUseSearch = "search [query]"
	CmdUseList   = "list"
)

// Command short descriptions
const (
	CmdShortParse  = "Parse a template and report diagnostics"
	CmdShortRender = "Render a template against the loaded libraries"
	CmdShortSearch = "Search groups and options across the loaded libraries"
	CmdShortList   = "List the loaded libraries"
)

// Flag names
const (
	FlagLib      = "lib"
	FlagJSON     = "json"
	FlagInline   = "inline"
	FlagTemplate = "template"
	FlagSlot     = "slot"
	FlagSeed     = "seed"
	FlagTrace    = "trace"
	FlagGroups   = "groups"
)

// Flag shorthands
const (
	FlagLibShort      = "l"
	FlagInlineShort   = "i"
	FlagTemplateShort = "t"
	FlagSlotShort     = "s"
	FlagGroupsShort   = "g"
)

// Flag help texts
const (
	FlagHelpLib      = "library pack file (repeatable)"
	FlagHelpJSON     = "emit JSON instead of text"
	FlagHelpInline   = "inline template source"
	FlagHelpTemplate = "saved template name from a loaded library"
	FlagHelpSlot     = "slot value as name=value (repeatable)"
	FlagHelpSeed     = "seed for reproducible draws"
	FlagHelpTrace    = "show the chosen-options trace"
	FlagHelpGroups   = "include each library's groups"
)

// Error messages
const (
	ErrMsgNoTemplateSource   = "provide a template: --inline, --template or a file argument"
	ErrMsgInlineAndTemplate  = "--inline and --template are mutually exclusive"
	ErrMsgInlineAndFile      = "--inline and a file argument are mutually exclusive"
	ErrMsgTemplateNeedsLibs  = "--template requires at least one --lib"
	ErrMsgReadPackFailed     = "reading library pack"
	ErrMsgReadTemplateFailed = "reading template file"
	ErrMsgInvalidSlot        = "invalid --slot value, expected name=value"
	ErrMsgTemplateInvalid    = "template has errors"
	ErrMsgEncodeJSONFailed   = "encoding JSON output"
)

// Text output fragments
const (
	MsgTemplateValid = "template is valid"

	FmtDiagnosticLine = "%s %s at %d:%d: %s\n"
	FmtSuggestionLine = "  did you mean %q?\n"
	FmtIssueCount     = "%d error(s), %d warning(s)\n"

	FmtSeedLine   = "seed: %d\n"
	FmtTraceHead  = "choices:\n"
	FmtTraceLine  = "  %d:%d %s %s -> %q\n"
	FmtSlotLine   = "  %s = %q\n"
	SlotValueHead = "slot values:\n"

	FmtLibraryLine  = "%s  %s (%d groups)\n"
	FmtLibraryDesc  = "  %s\n"
	FmtGroupLine    = "  %s [%s] (%d options)\n"
	FmtTemplateLine = "  template %q\n"

	FmtGroupResult  = "%s/%s (%d options)\n"
	FmtOptionResult = "%s/%s:\n"
	FmtOptionMatch  = "  %q\n"
	MsgNoResults    = "no matches\n"
	TraceKindInline = "inline"
	SlotSeparator   = "="
)

// FilePermissions is the mode for files written by tests and tooling
const FilePermissions = 0644
