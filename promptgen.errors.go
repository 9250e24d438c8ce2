package promptgen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgParseFailed = "template parsing failed"

	// Resolution errors
	ErrMsgUnknownReference   = "unknown reference"
	ErrMsgUnknownLibrary     = "unknown library"
	ErrMsgAmbiguousReference = "reference matches groups in more than one library"

	// Render errors
	ErrMsgMissingSlotValue  = "no value provided for slot"
	ErrMsgEmptyGroup        = "group has no options"
	ErrMsgStageEmptiedPool  = "pipeline stage removed every candidate"
	ErrMsgUnknownStage      = "unknown pipeline stage"
	ErrMsgStageArity        = "wrong argument count for pipeline stage"
	ErrMsgCircularReference = "circular reference while expanding option"
	ErrMsgMaxDepthExceeded  = "maximum expansion depth exceeded"

	// Validation-only messages
	ErrMsgSlotNeedsValue = "slot requires a value at render time"

	// Pack codec errors
	ErrMsgPackDecodeFailed     = "library pack decoding failed"
	ErrMsgPackEncodeFailed     = "library pack encoding failed"
	ErrMsgPackMissingLibName   = "library pack is missing a library name"
	ErrMsgPackMissingGroupName = "library pack contains a group without a name"
	ErrMsgPackDuplicateGroup   = "library pack contains a duplicate group name"

	// Lookup errors
	ErrMsgTemplateNotFound = "saved template not found"
)

// FmtSuggestion is appended to diagnostics when a close name exists
const FmtSuggestion = ". Did you mean '%s'?"

// Error code constants for categorization
const (
	ErrCodeParse   = "PROMPTGEN_PARSE"
	ErrCodeResolve = "PROMPTGEN_RESOLVE"
	ErrCodeRender  = "PROMPTGEN_RENDER"
	ErrCodePack    = "PROMPTGEN_PACK"
	ErrCodeLookup  = "PROMPTGEN_LOOKUP"
)

// Error kind values carried as metadata so callers can branch on the
// failure taxonomy without matching message strings
const (
	ErrKindUnknownReference  = "unknown_reference"
	ErrKindUnknownLibrary    = "unknown_library"
	ErrKindMissingSlotValue  = "missing_slot_value"
	ErrKindEmptyGroup        = "empty_group"
	ErrKindStageError        = "stage_error"
	ErrKindCircularReference = "circular_reference"
	ErrKindMaxDepthExceeded  = "max_depth_exceeded"
	ErrKindPack              = "pack_error"
	ErrKindTemplateNotFound  = "template_not_found"
)

// NewUnknownReferenceError creates an error for a reference naming no group
func NewUnknownReferenceError(name string, span Span) error {
	return cuserr.NewNotFoundError(MetaKeyReference, fmt.Sprintf("%s: %q", ErrMsgUnknownReference, name)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnknownReference).
		WithMetadata(MetaKeyReference, name).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewUnknownLibraryError creates an error for a qualifier naming no library
func NewUnknownLibraryError(library string, span Span) error {
	return cuserr.NewNotFoundError(MetaKeyLibrary, fmt.Sprintf("%s: %q", ErrMsgUnknownLibrary, library)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnknownLibrary).
		WithMetadata(MetaKeyLibrary, library).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewMissingSlotError creates an error for a slot with no bound value
func NewMissingSlotError(slot string, span Span) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgMissingSlotValue, slot)).
		WithMetadata(MetaKeyErrorKind, ErrKindMissingSlotValue).
		WithMetadata(MetaKeySlot, slot).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewEmptyGroupError creates an error for drawing from a group without options
func NewEmptyGroupError(reference string, span Span) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgEmptyGroup, reference)).
		WithMetadata(MetaKeyErrorKind, ErrKindEmptyGroup).
		WithMetadata(MetaKeyReference, reference).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewStageEmptiedPoolError creates an error for a stage that removed all candidates
func NewStageEmptiedPoolError(stage string, reference string, span Span) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgStageEmptiedPool, stage)).
		WithMetadata(MetaKeyErrorKind, ErrKindStageError).
		WithMetadata(MetaKeyStage, stage).
		WithMetadata(MetaKeyReference, reference).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewUnknownStageError creates an error for an unrecognized pipeline stage
func NewUnknownStageError(stage string, span Span) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgUnknownStage, stage)).
		WithMetadata(MetaKeyErrorKind, ErrKindStageError).
		WithMetadata(MetaKeyStage, stage).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewStageArityError creates an error for a stage applied with the wrong
// argument count
func NewStageArityError(stage string, span Span) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgStageArity, stage)).
		WithMetadata(MetaKeyErrorKind, ErrKindStageError).
		WithMetadata(MetaKeyStage, stage).
		WithMetadata(MetaKeySpanStart, strconv.Itoa(span.Start)).
		WithMetadata(MetaKeySpanEnd, strconv.Itoa(span.End))
}

// NewCircularReferenceError creates an error for option expansion revisiting a group
func NewCircularReferenceError(libraryID, group string, depth int) error {
	return cuserr.NewValidationError(ErrCodeRender, fmt.Sprintf("%s: %q", ErrMsgCircularReference, group)).
		WithMetadata(MetaKeyErrorKind, ErrKindCircularReference).
		WithMetadata(MetaKeyLibrary, libraryID).
		WithMetadata(MetaKeyGroup, group).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth))
}

// NewMaxDepthExceededError creates an error for runaway nested expansion
func NewMaxDepthExceededError(depth int) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgMaxDepthExceeded).
		WithMetadata(MetaKeyErrorKind, ErrKindMaxDepthExceeded).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth))
}

// NewPackDecodeError wraps a YAML decoding failure
func NewPackDecodeError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodePack, ErrMsgPackDecodeFailed).
		WithMetadata(MetaKeyErrorKind, ErrKindPack)
}

// NewPackEncodeError wraps a YAML encoding failure
func NewPackEncodeError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodePack, ErrMsgPackEncodeFailed).
		WithMetadata(MetaKeyErrorKind, ErrKindPack)
}

// NewPackFieldError creates an error for a structurally invalid pack field
func NewPackFieldError(msg string, field string) error {
	return cuserr.NewValidationError(ErrCodePack, msg).
		WithMetadata(MetaKeyErrorKind, ErrKindPack).
		WithMetadata(MetaKeyField, field)
}

// NewPackDuplicateGroupError creates an error for a repeated group name in a pack
func NewPackDuplicateGroupError(group string) error {
	return cuserr.NewValidationError(ErrCodePack, fmt.Sprintf("%s: %q", ErrMsgPackDuplicateGroup, group)).
		WithMetadata(MetaKeyErrorKind, ErrKindPack).
		WithMetadata(MetaKeyGroup, group)
}

// NewTemplateNotFoundError creates an error for a missing saved template
func NewTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, fmt.Sprintf("%s: %q", ErrMsgTemplateNotFound, name)).
		WithMetadata(MetaKeyErrorKind, ErrKindTemplateNotFound).
		WithMetadata(MetaKeyTemplate, name)
}

// ErrorKind extracts the error kind metadata, or "" for foreign errors.
func ErrorKind(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	kind, ok := customErr.GetMetadata(MetaKeyErrorKind)
	if !ok {
		return ""
	}
	return kind
}

// IsUnknownReference reports whether err is an unknown reference failure
func IsUnknownReference(err error) bool {
	return ErrorKind(err) == ErrKindUnknownReference
}

// IsUnknownLibrary reports whether err is an unknown library failure
func IsUnknownLibrary(err error) bool {
	return ErrorKind(err) == ErrKindUnknownLibrary
}

// IsMissingSlotValue reports whether err is a missing slot value failure
func IsMissingSlotValue(err error) bool {
	return ErrorKind(err) == ErrKindMissingSlotValue
}

// IsEmptyGroup reports whether err is an empty group failure
func IsEmptyGroup(err error) bool {
	return ErrorKind(err) == ErrKindEmptyGroup
}

// IsStageError reports whether err is a pipeline stage failure
func IsStageError(err error) bool {
	return ErrorKind(err) == ErrKindStageError
}

// IsCircularReference reports whether err is a circular expansion failure
func IsCircularReference(err error) bool {
	return ErrorKind(err) == ErrKindCircularReference
}
