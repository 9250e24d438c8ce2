package promptgen

import (
	"github.com/itsatony/go-promptgen/internal"
)

// Span is a half-open range of rune offsets into template source.
type Span = internal.Span

// Diagnostic is a single parse or validation finding anchored to a span.
type Diagnostic struct {
	Severity   Severity
	Kind       string
	Message    string
	Span       Span
	Suggestion string // close-name suggestion, "" when none applies
}

// ParseResult is the outcome of parsing a template source. Success is
// false when any error-severity diagnostic exists; the template is still
// present and renderable best-effort.
type ParseResult struct {
	Success  bool
	Template *Template
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// ReferenceInfo describes one distinct group reference in a template.
type ReferenceInfo struct {
	Expression string // canonical tag expression text, e.g. "Fantasy + Sci-Fi"
	Library    string // library qualifier, "" when unqualified
	Span       Span   // span of the first occurrence
}

// Template is a parsed template. It holds no workspace reference, so the
// same template can be validated and rendered against different
// workspaces.
type Template struct {
	source     string
	root       *internal.RootNode
	problems   []internal.Problem
	references []ReferenceInfo
	slots      []string
}

// newTemplate parses nothing itself; it indexes an already parsed AST.
func newTemplate(source string, root *internal.RootNode, problems []internal.Problem) *Template {
	t := &Template{
		source:   source,
		root:     root,
		problems: problems,
	}
	t.collectReferences()
	return t
}

// collectReferences walks the AST once in document order, recording
// distinct references and slot names. Slot names already bound by an
// earlier assign stage are not collected: the render provides them.
func (t *Template) collectReferences() {
	seenRefs := make(map[string]struct{})
	seenSlots := make(map[string]struct{})
	assigned := make(map[string]struct{})

	for _, node := range t.root.Children {
		switch n := node.(type) {
		case *internal.SlotNode:
			if _, bound := assigned[n.Name]; bound {
				continue
			}
			if _, dup := seenSlots[n.Name]; dup {
				continue
			}
			seenSlots[n.Name] = struct{}{}
			t.slots = append(t.slots, n.Name)
		case *internal.ReferenceNode:
			t.addReference(n.Expr, n.Library, n.Span(), seenRefs)
		case *internal.ExprBlockNode:
			t.addReference(n.Operand, "", n.Operand.Span(), seenRefs)
			for _, stage := range n.Stages {
				if stage.Name == internal.StageAssign && len(stage.Args) == 1 {
					assigned[stage.Args[0]] = struct{}{}
				}
			}
		}
	}
}

func (t *Template) addReference(expr internal.TagExpr, library string, span Span, seen map[string]struct{}) {
	if expr.IsEmpty() {
		return
	}
	key := library + "\x00" + expr.String()
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	t.references = append(t.references, ReferenceInfo{
		Expression: expr.String(),
		Library:    library,
		Span:       span,
	})
}

// Source returns the original template source string.
func (t *Template) Source() string {
	return t.source
}

// String returns the canonical text reconstructed from the AST. For
// sources already in canonical form it equals Source.
func (t *Template) String() string {
	return t.root.Source()
}

// References returns the distinct group references in first-occurrence
// order. Expression-block operands are included.
func (t *Template) References() []ReferenceInfo {
	refs := make([]ReferenceInfo, len(t.references))
	copy(refs, t.references)
	return refs
}

// Slots returns the distinct slot names needing caller values, in
// first-occurrence order.
func (t *Template) Slots() []string {
	slots := make([]string, len(t.slots))
	copy(slots, t.slots)
	return slots
}

// diagnosticFromProblem converts an internal parser problem to the
// public diagnostic shape.
func diagnosticFromProblem(p internal.Problem) Diagnostic {
	severity := SeverityError
	if p.Severity == internal.ProblemWarning {
		severity = SeverityWarning
	}
	return Diagnostic{
		Severity:   severity,
		Kind:       p.Kind,
		Message:    p.Message,
		Span:       p.Span,
		Suggestion: p.Suggestion,
	}
}

// newParseResult splits problems into errors and warnings around a
// freshly indexed template.
func newParseResult(source string, root *internal.RootNode, problems []internal.Problem) *ParseResult {
	result := &ParseResult{
		Template: newTemplate(source, root, problems),
	}
	for _, p := range problems {
		d := diagnosticFromProblem(p)
		if d.Severity == SeverityError {
			result.Errors = append(result.Errors, d)
		} else {
			result.Warnings = append(result.Warnings, d)
		}
	}
	result.Success = len(result.Errors) == 0
	return result
}
