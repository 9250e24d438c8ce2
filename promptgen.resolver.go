package promptgen

import (
	"github.com/itsatony/go-promptgen/internal"
)

// poolKey identifies a candidate group. Union counts a group once even
// when several terms match it.
func poolKey(e groupEntry) string {
	return e.LibraryID + "\x00" + e.Group.Name
}

// resolveExpr evaluates a tag expression to its candidate group set.
// With a qualifier only that library is searched; an unknown qualifier
// is an UnknownLibrary error. Every term must match at least one group
// in scope, exclusion terms included: a dead exclusion is a typo, not a
// no-op. The returned entries keep workspace order of first appearance,
// so a pool built from them draws deterministically. An empty result
// (everything excluded) is not an error here; rendering reports it.
func (w *Workspace) resolveExpr(expr internal.TagExpr, qualifier string, refSpan Span) ([]groupEntry, error) {
	var scope *Library
	if qualifier != "" {
		lib, ok := w.libraryByID(qualifier)
		if !ok {
			return nil, NewUnknownLibraryError(qualifier, refSpan)
		}
		scope = lib
	}

	var pool []groupEntry
	seen := make(map[string]struct{})

	for _, term := range expr.Terms {
		matches := w.termMatches(term.Name, scope)
		if len(matches) == 0 {
			return nil, NewUnknownReferenceError(term.Name, term.Span)
		}

		if term.Op == internal.TagOpExclude {
			remove := make(map[string]struct{}, len(matches))
			for _, m := range matches {
				remove[poolKey(m)] = struct{}{}
			}
			kept := make([]groupEntry, 0, len(pool))
			for _, e := range pool {
				key := poolKey(e)
				if _, drop := remove[key]; drop {
					delete(seen, key)
					continue
				}
				kept = append(kept, e)
			}
			pool = kept
			continue
		}

		for _, m := range matches {
			key := poolKey(m)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			pool = append(pool, m)
		}
	}
	return pool, nil
}

// termMatches returns the groups answering to the term by exact,
// case-sensitive name or tag equality, in workspace order. A non-nil
// scope restricts the search to one library.
func (w *Workspace) termMatches(term string, scope *Library) []groupEntry {
	if scope == nil {
		return w.groupsMatchingTerm(term)
	}
	var entries []groupEntry
	for _, g := range scope.Groups {
		if g.MatchesTerm(term) {
			entries = append(entries, groupEntry{LibraryID: scope.ID, LibraryName: scope.Name, Group: g})
		}
	}
	return entries
}

// optionPool flattens candidate groups into one (entry, option index)
// sequence. Pool order weights selection: a group with more options
// contributes proportionally more candidates.
type pooledOption struct {
	Entry       groupEntry
	OptionIndex int
}

func flattenPool(entries []groupEntry) []pooledOption {
	var pool []pooledOption
	for _, e := range entries {
		for i := range e.Group.Options {
			pool = append(pool, pooledOption{Entry: e, OptionIndex: i})
		}
	}
	return pool
}
