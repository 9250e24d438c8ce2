package promptgen

import "github.com/itsatony/go-promptgen/internal"

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyErrorKind = "error_kind"
	MetaKeySpanStart = "span_start"
	MetaKeySpanEnd   = "span_end"
	MetaKeyReference = "reference"
	MetaKeyLibrary   = "library"
	MetaKeyGroup     = "group"
	MetaKeySlot      = "slot"
	MetaKeyStage     = "stage"
	MetaKeyTemplate  = "template"
	MetaKeyDepth     = "depth"
	MetaKeyField     = "field"
)

// Severity indicates the severity of a template diagnostic.
type Severity int

const (
	// SeverityError indicates an issue that prevents rendering
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that rendering tolerates
	SeverityWarning
)

// Severity string names
const (
	SeverityNameError   = "error"
	SeverityNameWarning = "warning"
)

// String returns the string representation of the diagnostic severity
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return SeverityNameError
	case SeverityWarning:
		return SeverityNameWarning
	default:
		return SeverityNameError
	}
}

// Diagnostic kind constants, aligned with the parser's problem kinds
const (
	DiagKindSyntax             = internal.ProblemKindSyntax
	DiagKindUnknownReference   = internal.ProblemKindUnknownReference
	DiagKindUnknownLibrary     = internal.ProblemKindUnknownLibrary
	DiagKindAmbiguousReference = internal.ProblemKindAmbiguousReference
	DiagKindEmptyGroup         = internal.ProblemKindEmptyGroup
	DiagKindUnboundSlot        = internal.ProblemKindUnboundSlot
)

// ChoiceKind tells which construct produced a recorded choice
type ChoiceKind string

// Choice kind constants
const (
	ChoiceKindGroup  ChoiceKind = "group"
	ChoiceKindInline ChoiceKind = "inline"
)

// CompletionKind classifies autocomplete items
type CompletionKind string

// Completion kind constants
const (
	CompletionKindGroup   CompletionKind = "group"
	CompletionKindLibrary CompletionKind = "library"
	CompletionKindSlot    CompletionKind = "slot"
)

// Pipeline stage names recognized inside expression blocks
const (
	StageNameSome         = internal.StageSome
	StageNameExcludeGroup = internal.StageExcludeGroup
	StageNameAssign       = internal.StageAssign
)

// Search query syntax markers
const (
	SearchMarkerGroup  = '@'
	SearchMarkerOption = '/'
)

// Default configuration values
const (
	DefaultMaxExpansionDepth = 100
)

// Log message constants
const (
	LogMsgWorkspaceBuilt   = "workspace built"
	LogMsgLibraryAdded     = "library added"
	LogMsgLibraryRemoved   = "library removed"
	LogMsgParseRequested   = "parsing template source"
	LogMsgValidationDone   = "validation complete"
	LogMsgRenderStarted    = "render started"
	LogMsgRenderComplete   = "render complete"
	LogMsgRenderFailed     = "render failed"
	LogMsgSearchExecuted   = "search executed"
	LogMsgCompletionsBuilt = "completions computed"
	LogMsgPackParsed       = "library pack parsed"
	LogMsgPackSerialized   = "library pack serialized"
)

// Log field name constants
const (
	LogFieldLibraryID   = "library_id"
	LogFieldLibraryName = "library_name"
	LogFieldLibraries   = "libraries"
	LogFieldGroups      = "groups"
	LogFieldSourceLen   = "source_len"
	LogFieldErrors      = "errors"
	LogFieldWarnings    = "warnings"
	LogFieldSeed        = "seed"
	LogFieldDraws       = "draws"
	LogFieldOutputLen   = "output_len"
	LogFieldQuery       = "query"
	LogFieldResults     = "results"
	LogFieldCursor      = "cursor"
	LogFieldError       = "error"
)
