package promptgen

import (
	"fmt"

	"github.com/itsatony/go-promptgen/internal"
)

// Validate checks the template's references and slots against this
// workspace, returning diagnostics in document order. Unknown references
// and unknown libraries are errors; ambiguous unqualified names, empty
// candidate pools and unbound slots are warnings since rendering can
// still proceed or be fixed by the caller. Unknown-name errors carry a
// "did you mean" suggestion when a close candidate exists.
func (w *Workspace) Validate(t *Template) []Diagnostic {
	var diags []Diagnostic
	assigned := make(map[string]struct{})

	for _, node := range t.root.Children {
		switch n := node.(type) {
		case *internal.SlotNode:
			if _, bound := assigned[n.Name]; bound {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     DiagKindUnboundSlot,
				Message:  fmt.Sprintf("%s: %q", ErrMsgSlotNeedsValue, n.Name),
				Span:     n.Span(),
			})
		case *internal.ReferenceNode:
			diags = append(diags, w.validateReference(n.Expr, n.Library, n.Span())...)
		case *internal.ExprBlockNode:
			diags = append(diags, w.validateReference(n.Operand, "", n.Operand.Span())...)
			for _, stage := range n.Stages {
				if stage.Name == internal.StageExcludeGroup && len(stage.Args) == 1 {
					if len(w.termMatches(stage.Args[0], nil)) == 0 {
						diags = append(diags, w.unknownReferenceDiag(stage.Args[0], stage.Span, nil))
					}
				}
				if stage.Name == internal.StageAssign && len(stage.Args) == 1 {
					assigned[stage.Args[0]] = struct{}{}
				}
			}
		}
	}
	return diags
}

// validateReference checks one tag expression. Every term is checked,
// not just the first failing one, so a multi-term expression reports
// all of its typos at once.
func (w *Workspace) validateReference(expr internal.TagExpr, qualifier string, refSpan Span) []Diagnostic {
	if expr.IsEmpty() {
		return nil
	}
	var diags []Diagnostic

	var scope *Library
	if qualifier != "" {
		lib, ok := w.libraryByID(qualifier)
		if !ok {
			d := Diagnostic{
				Severity: SeverityError,
				Kind:     DiagKindUnknownLibrary,
				Message:  fmt.Sprintf("%s: %q", ErrMsgUnknownLibrary, qualifier),
				Span:     refSpan,
			}
			if best, found := internal.BestSuggestion(qualifier, w.GetLibraryIDs()); found {
				d.Suggestion = best
				d.Message += fmt.Sprintf(FmtSuggestion, best)
			}
			return append(diags, d)
		}
		scope = lib
	}

	failed := false
	for _, term := range expr.Terms {
		matches := w.termMatches(term.Name, scope)
		if len(matches) == 0 {
			failed = true
			diags = append(diags, w.unknownReferenceDiag(term.Name, term.Span, scope))
			continue
		}
		if scope == nil && nameMatchLibraries(matches, term.Name) > 1 {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     DiagKindAmbiguousReference,
				Message:  fmt.Sprintf("%s: %q", ErrMsgAmbiguousReference, term.Name),
				Span:     term.Span,
			})
		}
	}

	if !failed {
		entries, err := w.resolveExpr(expr, qualifier, refSpan)
		if err == nil && len(flattenPool(entries)) == 0 {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Kind:     DiagKindEmptyGroup,
				Message:  fmt.Sprintf("%s: %q", ErrMsgEmptyGroup, referenceDisplay(expr, qualifier)),
				Span:     refSpan,
			})
		}
	}
	return diags
}

// unknownReferenceDiag builds the error diagnostic for a dead term,
// suggesting the closest name or tag reachable from the scope.
func (w *Workspace) unknownReferenceDiag(name string, span Span, scope *Library) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Kind:     DiagKindUnknownReference,
		Message:  fmt.Sprintf("%s: %q", ErrMsgUnknownReference, name),
		Span:     span,
	}
	candidates := w.allNameCandidates()
	if scope != nil {
		candidates = libraryNameCandidates(scope)
	}
	if best, found := internal.BestSuggestion(name, candidates); found {
		d.Suggestion = best
		d.Message += fmt.Sprintf(FmtSuggestion, best)
	}
	return d
}

// nameMatchLibraries counts the distinct libraries where the term hits a
// group by NAME. Tag hits spanning libraries are the normal pooling
// case, not an ambiguity.
func nameMatchLibraries(matches []groupEntry, term string) int {
	libs := make(map[string]struct{})
	for _, m := range matches {
		if m.Group.Name == term {
			libs[m.LibraryID] = struct{}{}
		}
	}
	return len(libs)
}

// libraryNameCandidates lists one library's group names and tags,
// deduplicated, names first.
func libraryNameCandidates(l *Library) []string {
	seen := make(map[string]struct{})
	var names []string
	appendName := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, g := range l.Groups {
		appendName(g.Name)
	}
	for _, g := range l.Groups {
		for _, t := range g.Tags {
			appendName(t)
		}
	}
	return names
}
