package promptgen

import (
	"sort"

	"go.uber.org/zap"

	"github.com/itsatony/go-promptgen/internal"
)

// ParseTemplateSource parses a template with no workspace. Syntax-only:
// references cannot be checked without libraries, so only parse
// diagnostics are produced.
func ParseTemplateSource(source string) *ParseResult {
	root, problems := internal.ParseSource(source, zap.NewNop())
	return newParseResult(source, root, problems)
}

// ParseTemplate parses the source and validates its references against
// this workspace. Errors and warnings each come back in span order.
func (w *Workspace) ParseTemplate(source string) *ParseResult {
	w.logger.Debug(LogMsgParseRequested, zap.Int(LogFieldSourceLen, len([]rune(source))))

	root, problems := internal.ParseSource(source, w.logger)
	result := newParseResult(source, root, problems)

	for _, d := range w.Validate(result.Template) {
		if d.Severity == SeverityError {
			result.Errors = append(result.Errors, d)
		} else {
			result.Warnings = append(result.Warnings, d)
		}
	}
	sortDiagnostics(result.Errors)
	sortDiagnostics(result.Warnings)
	result.Success = len(result.Errors) == 0

	w.logger.Debug(LogMsgValidationDone,
		zap.Int(LogFieldErrors, len(result.Errors)),
		zap.Int(LogFieldWarnings, len(result.Warnings)))
	return result
}

// GetReferences returns the distinct group references in the source in
// first-occurrence order. Parse-only: no workspace lookup happens, so
// unknown names still appear.
func (w *Workspace) GetReferences(source string) []ReferenceInfo {
	root, problems := internal.ParseSource(source, w.logger)
	return newTemplate(source, root, problems).References()
}

// GetSlots returns the distinct slot names in the source in
// first-occurrence order, excluding names bound by assign stages.
func (w *Workspace) GetSlots(source string) []string {
	root, problems := internal.ParseSource(source, w.logger)
	return newTemplate(source, root, problems).Slots()
}

// sortDiagnostics orders diagnostics by span start, keeping the emission
// order for equal spans.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start < diags[j].Span.Start
	})
}
