package promptgen

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/itsatony/go-promptgen/internal"
)

// CompletionItem is one autocomplete suggestion. InsertText is the text
// completing the construct being typed; Score is the fuzzy rank against
// the typed partial, zero when nothing was typed yet.
type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
	LibraryID  string
	Score      int
}

// GetCompletions suggests completions for the construct under the
// cursor. cursorPos is a rune offset into the source, consistent with
// spans. Inside an unfinished reference the candidates are group and
// tag names plus library ids; inside a qualified reference they are the
// library's group names; inside a slot they are slot names already used
// in the source. Anywhere else the list is empty. Never fails.
func (w *Workspace) GetCompletions(source string, cursorPos int) []CompletionItem {
	runes := []rune(source)
	if cursorPos < 0 {
		return nil
	}
	if cursorPos > len(runes) {
		cursorPos = len(runes)
	}

	tokens := internal.NewLexer(source, w.logger).Tokenize()
	var current *internal.Token
	for i := range tokens {
		if tokens[i].Type == internal.TokenTypeEOF {
			continue
		}
		if tokens[i].Span.Contains(cursorPos) {
			current = &tokens[i]
			break
		}
	}
	if current == nil {
		return nil
	}

	var items []CompletionItem
	switch current.Type {
	case internal.TokenTypeReference:
		items = w.referenceCompletions(current, cursorPos)
	case internal.TokenTypeStrayAt:
		items = rankCompletions(w.referenceCandidates(), "")
	case internal.TokenTypeSlot:
		items = w.slotCompletions(source, current, cursorPos)
	}
	w.logger.Debug(LogMsgCompletionsBuilt,
		zap.Int(LogFieldCursor, cursorPos),
		zap.Int(LogFieldResults, len(items)))
	return items
}

// referenceCompletions completes an @ reference. Inside the quoted
// qualified form the part before ':' names the library and only its
// groups are offered.
func (w *Workspace) referenceCompletions(tok *internal.Token, cursorPos int) []CompletionItem {
	typed := typedPrefix(tok, cursorPos)

	if tok.Quoted {
		if colon := strings.IndexRune(typed, internal.CharColon); colon >= 0 {
			libID := typed[:colon]
			partial := typed[colon+1:]
			lib, ok := w.libraryByID(libID)
			if !ok {
				return nil
			}
			var items []CompletionItem
			for _, g := range lib.Groups {
				items = append(items, CompletionItem{
					Label:      g.Name,
					Kind:       CompletionKindGroup,
					Detail:     lib.Name,
					InsertText: g.Name,
					LibraryID:  lib.ID,
				})
			}
			return rankCompletions(items, partial)
		}
	}
	return rankCompletions(w.referenceCandidates(), typed)
}

// referenceCandidates lists every completion reachable after a bare @:
// group names, then tags, then library ids for qualification.
func (w *Workspace) referenceCandidates() []CompletionItem {
	var items []CompletionItem
	seenTags := make(map[string]struct{})

	for _, e := range w.allGroups() {
		items = append(items, CompletionItem{
			Label:      e.Group.Name,
			Kind:       CompletionKindGroup,
			Detail:     e.LibraryName,
			InsertText: referenceInsertText(e.Group.Name),
			LibraryID:  e.LibraryID,
		})
	}
	for _, e := range w.allGroups() {
		for _, t := range e.Group.Tags {
			if _, dup := seenTags[t]; dup {
				continue
			}
			seenTags[t] = struct{}{}
			items = append(items, CompletionItem{
				Label:      t,
				Kind:       CompletionKindGroup,
				InsertText: referenceInsertText(t),
			})
		}
	}
	for _, id := range w.order {
		lib := w.libraries[id]
		items = append(items, CompletionItem{
			Label:      lib.ID,
			Kind:       CompletionKindLibrary,
			Detail:     lib.Name,
			InsertText: string(internal.CharDoubleQuote) + lib.ID + string(internal.CharColon),
			LibraryID:  lib.ID,
		})
	}
	return items
}

// slotCompletions completes a slot identifier from the names already
// used in the same source, so naming stays consistent while typing.
func (w *Workspace) slotCompletions(source string, tok *internal.Token, cursorPos int) []CompletionItem {
	partial := strings.TrimSpace(typedPrefix(tok, cursorPos))

	var items []CompletionItem
	for _, name := range slotNamesInSource(source, w.logger) {
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindSlot,
			InsertText: name,
		})
	}
	return rankCompletions(items, partial)
}

// slotNamesInSource collects slot names in first-occurrence order,
// including names bound by assign stages.
func slotNamesInSource(source string, logger *zap.Logger) []string {
	root, _ := internal.ParseSource(source, logger)
	seen := make(map[string]struct{})
	var names []string
	appendName := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, node := range root.Children {
		switch n := node.(type) {
		case *internal.SlotNode:
			appendName(n.Name)
		case *internal.ExprBlockNode:
			for _, stage := range n.Stages {
				if stage.Name == internal.StageAssign && len(stage.Args) == 1 {
					appendName(stage.Args[0])
				}
			}
		}
	}
	return names
}

// typedPrefix returns the token interior typed before the cursor.
func typedPrefix(tok *internal.Token, cursorPos int) string {
	valueRunes := []rune(tok.Value)
	upTo := cursorPos - tok.InnerStart()
	if upTo < 0 {
		upTo = 0
	}
	if upTo > len(valueRunes) {
		upTo = len(valueRunes)
	}
	return string(valueRunes[:upTo])
}

// rankCompletions filters and ranks candidates against the typed
// partial. An empty partial keeps every candidate unscored in candidate
// order, matching the search convention for empty queries.
func rankCompletions(items []CompletionItem, partial string) []CompletionItem {
	if partial == "" {
		return items
	}
	var ranked []CompletionItem
	for _, item := range items {
		score, _, ok := internal.FuzzyMatch(item.Label, partial)
		if !ok {
			continue
		}
		item.Score = score
		ranked = append(ranked, item)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// referenceInsertText renders a name the way it must appear after @.
func referenceInsertText(name string) string {
	if internal.NeedsRefQuoting(name) {
		return string(internal.CharDoubleQuote) + name + string(internal.CharDoubleQuote)
	}
	return name
}
