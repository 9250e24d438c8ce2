package promptgen

import (
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/itsatony/go-promptgen/internal"
)

// RenderResult is the outcome of one render call. Failures are
// all-or-nothing: on Success == false the output, trace and slot values
// are empty and Err carries the tagged failure.
type RenderResult struct {
	Success    bool
	Output     string
	Choices    []ChosenOption
	SlotValues map[string]string
	Seed       uint64
	Err        error
}

// ChosenOption is one entry of the chosen-options trace. Entries appear
// in draw order. For draws made while expanding a nested option, Span
// anchors to the top-level construct that started the expansion, so
// every entry maps to a range in the rendered source.
type ChosenOption struct {
	Span        Span
	Text        string
	Kind        ChoiceKind
	LibraryID   string // empty for inline draws
	GroupName   string // empty for inline draws
	OptionIndex int
}

// renderState carries one render call's mutable state: the seeded draw
// stream, the slot binding table, the trace, and the nested-expansion
// guards.
type renderState struct {
	w        *Workspace
	stream   *internal.DrawStream
	bindings map[string]string
	choices  []ChosenOption
	out      *strings.Builder
	active   map[string]struct{}
	depth    int
}

// Render parses the source and renders it against this workspace. Parse
// problems do not abort: degraded constructs render as their raw text.
// Callers wanting strictness gate on ParseTemplate's Success first.
func (w *Workspace) Render(source string, slots map[string]string, opts ...RenderOption) (*RenderResult, error) {
	root, _ := internal.ParseSource(source, w.logger)
	return w.renderRoot(root, slots, opts)
}

// RenderTemplate renders an already parsed template.
func (w *Workspace) RenderTemplate(t *Template, slots map[string]string, opts ...RenderOption) (*RenderResult, error) {
	return w.renderRoot(t.root, slots, opts)
}

func (w *Workspace) renderRoot(root *internal.RootNode, slots map[string]string, opts []RenderOption) (*RenderResult, error) {
	cfg := &renderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	seed := cfg.seed
	if !cfg.seedSet {
		seed = rand.Uint64()
	}
	w.logger.Debug(LogMsgRenderStarted, zap.Uint64(LogFieldSeed, seed))

	state := &renderState{
		w:        w,
		stream:   internal.NewDrawStream(seed),
		bindings: make(map[string]string, len(slots)),
		out:      &strings.Builder{},
		active:   make(map[string]struct{}),
	}
	for name, value := range slots {
		state.bindings[name] = value
	}

	if err := state.walkNodes(root.Children, nil); err != nil {
		w.logger.Debug(LogMsgRenderFailed,
			zap.Uint64(LogFieldSeed, seed),
			zap.String(LogFieldError, err.Error()))
		return &RenderResult{Seed: seed, Err: err}, err
	}

	result := &RenderResult{
		Success:    true,
		Output:     state.out.String(),
		Choices:    state.choices,
		SlotValues: state.bindings,
		Seed:       seed,
	}
	w.logger.Debug(LogMsgRenderComplete,
		zap.Uint64(LogFieldSeed, seed),
		zap.Uint64(LogFieldDraws, state.stream.Draws()),
		zap.Int(LogFieldOutputLen, len(result.Output)))
	return result, nil
}

// anchoredSpan keeps the top-level span while walking nested expansions.
func anchoredSpan(span Span, anchor *Span) Span {
	if anchor != nil {
		return *anchor
	}
	return span
}

func (s *renderState) walkNodes(nodes []internal.Node, anchor *Span) error {
	for _, node := range nodes {
		if err := s.walkNode(node, anchor); err != nil {
			return err
		}
	}
	return nil
}

func (s *renderState) walkNode(node internal.Node, anchor *Span) error {
	switch n := node.(type) {
	case *internal.TextNode:
		s.out.WriteString(n.Content)
	case *internal.CommentNode:
		// comments emit nothing
	case *internal.SlotNode:
		value, ok := s.bindings[n.Name]
		if !ok {
			return NewMissingSlotError(n.Name, anchoredSpan(n.Span(), anchor))
		}
		s.out.WriteString(value)
	case *internal.InlineOptionsNode:
		idx := s.stream.IntN(len(n.Alternatives))
		alt := n.Alternatives[idx]
		s.choices = append(s.choices, ChosenOption{
			Span:        anchoredSpan(n.Span(), anchor),
			Text:        alt.Text,
			Kind:        ChoiceKindInline,
			OptionIndex: idx,
		})
		// alternatives are literal, never re-parsed
		s.out.WriteString(alt.Text)
	case *internal.ReferenceNode:
		span := anchoredSpan(n.Span(), anchor)
		entries, err := s.w.resolveExpr(n.Expr, n.Library, span)
		if err != nil {
			return err
		}
		value, err := s.drawFromPool(entries, referenceDisplay(n.Expr, n.Library), span)
		if err != nil {
			return err
		}
		s.out.WriteString(value)
	case *internal.ExprBlockNode:
		return s.evalBlock(n, anchor)
	}
	return nil
}

// evalBlock resolves the block operand, applies the pipeline stages, and
// emits the final value. Pool-shaping stages act before the draw
// wherever they appear; assign binds the final value afterwards. The
// block emits its value even when assigned.
func (s *renderState) evalBlock(n *internal.ExprBlockNode, anchor *Span) error {
	span := anchoredSpan(n.Span(), anchor)
	entries, err := s.w.resolveExpr(n.Operand, "", span)
	if err != nil {
		return err
	}

	var assignNames []string
	for _, stage := range n.Stages {
		stageSpan := anchoredSpan(stage.Span, anchor)
		switch stage.Name {
		case internal.StageSome:
			if len(stage.Args) != 0 {
				return NewStageArityError(stage.Name, stageSpan)
			}
		case internal.StageExcludeGroup:
			if len(stage.Args) != 1 {
				return NewStageArityError(stage.Name, stageSpan)
			}
			entries, err = s.excludeGroups(entries, stage.Args[0], stage.Name, stageSpan)
			if err != nil {
				return err
			}
		case internal.StageAssign:
			if len(stage.Args) != 1 {
				return NewStageArityError(stage.Name, stageSpan)
			}
			assignNames = append(assignNames, stage.Args[0])
		default:
			return NewUnknownStageError(stage.Name, stageSpan)
		}
	}

	value, err := s.drawFromPool(entries, n.Operand.String(), span)
	if err != nil {
		return err
	}
	for _, name := range assignNames {
		s.bindings[name] = value
	}
	s.out.WriteString(value)
	return nil
}

// excludeGroups subtracts the term's candidate set from the pool, the
// stage counterpart of a "- term" expression. A term matching nothing
// in the workspace is an UnknownReference; a subtraction leaving no
// candidates is a StageError.
func (s *renderState) excludeGroups(entries []groupEntry, term, stage string, span Span) ([]groupEntry, error) {
	matches := s.w.termMatches(term, nil)
	if len(matches) == 0 {
		return nil, NewUnknownReferenceError(term, span)
	}
	remove := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		remove[poolKey(m)] = struct{}{}
	}
	kept := make([]groupEntry, 0, len(entries))
	for _, e := range entries {
		if _, drop := remove[poolKey(e)]; drop {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return nil, NewStageEmptiedPoolError(stage, term, span)
	}
	return kept, nil
}

// drawFromPool draws one option uniformly from the flattened candidate
// pool, records the trace entry, then expands any nested grammar in the
// drawn text. The trace entry precedes entries from the nested walk, so
// the trace reads in encounter order.
func (s *renderState) drawFromPool(entries []groupEntry, reference string, anchor Span) (string, error) {
	pool := flattenPool(entries)
	if len(pool) == 0 {
		return "", NewEmptyGroupError(reference, anchor)
	}
	idx := s.stream.IntN(len(pool))
	chosen := pool[idx]
	text := chosen.Entry.Group.Options[chosen.OptionIndex]
	s.choices = append(s.choices, ChosenOption{
		Span:        anchor,
		Text:        text,
		Kind:        ChoiceKindGroup,
		LibraryID:   chosen.Entry.LibraryID,
		GroupName:   chosen.Entry.Group.Name,
		OptionIndex: chosen.OptionIndex,
	})
	return s.expandOption(chosen.Entry, text, anchor)
}

// expandOption re-parses a drawn option and renders its grammar in
// place. An evaluation stack keyed by (library id, group name) catches
// self-reference; the configured depth cap catches chains. Draws made
// here advance the same stream and append to the same trace.
func (s *renderState) expandOption(entry groupEntry, text string, anchor Span) (string, error) {
	root, _ := internal.ParseSource(text, s.w.logger)
	if isPlainText(root) {
		return text, nil
	}

	key := poolKey(entry)
	if _, selfRef := s.active[key]; selfRef {
		return "", NewCircularReferenceError(entry.LibraryID, entry.Group.Name, s.depth)
	}
	if s.depth+1 > s.w.config.maxExpansionDepth {
		return "", NewMaxDepthExceededError(s.depth + 1)
	}

	s.active[key] = struct{}{}
	s.depth++
	saved := s.out
	s.out = &strings.Builder{}

	err := s.walkNodes(root.Children, &anchor)
	value := s.out.String()

	s.out = saved
	s.depth--
	delete(s.active, key)

	if err != nil {
		return "", err
	}
	return value, nil
}

// isPlainText reports whether the AST holds nothing but literal text.
func isPlainText(root *internal.RootNode) bool {
	for _, node := range root.Children {
		if node.Type() != internal.NodeTypeText {
			return false
		}
	}
	return true
}

// referenceDisplay names a reference in render errors, qualifier included.
func referenceDisplay(expr internal.TagExpr, library string) string {
	if library == "" {
		return expr.String()
	}
	return library + string(internal.CharColon) + expr.String()
}
