package promptgen

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/itsatony/go-promptgen/internal"
)

// SearchResultKind tells which variant a SearchResult carries.
type SearchResultKind string

// Search result kind constants
const (
	SearchKindGroups  SearchResultKind = "groups"
	SearchKindOptions SearchResultKind = "options"
)

// GroupSearchResult is one group matched by a group query. Score and
// Indices are zero/nil for unscored listings (empty query).
type GroupSearchResult struct {
	LibraryID   string
	LibraryName string
	GroupName   string
	Options     []string
	Score       int
	Indices     []int // matched rune offsets into GroupName
}

// OptionMatch is one option text matched by an option query.
type OptionMatch struct {
	Text    string
	Score   int
	Indices []int // matched rune offsets into Text
}

// OptionSearchResult carries one group's option matches, sorted by
// score descending.
type OptionSearchResult struct {
	LibraryID   string
	LibraryName string
	GroupName   string
	Matches     []OptionMatch
}

// SearchResult is the tagged result of a combined search query. Exactly
// one of Groups and Options is populated, per Kind.
type SearchResult struct {
	Kind    SearchResultKind
	Groups  []GroupSearchResult
	Options []OptionSearchResult
}

// Search runs a combined group/option query:
//
//	""             every group, unscored
//	"hair"         groups fuzzy-matched by name
//	"@hair"        same, explicit
//	"@hair/bl"     options matching "bl" within groups matching "hair"
//	"@/bl"         options matching "bl" across all groups
//
// Search never fails; an unmatched query yields an empty result list.
func (w *Workspace) Search(query string) *SearchResult {
	result := w.runSearch(query)
	count := len(result.Groups) + len(result.Options)
	w.logger.Debug(LogMsgSearchExecuted,
		zap.String(LogFieldQuery, query),
		zap.Int(LogFieldResults, count))
	return result
}

func (w *Workspace) runSearch(query string) *SearchResult {
	if !strings.HasPrefix(query, string(SearchMarkerGroup)) {
		return &SearchResult{Kind: SearchKindGroups, Groups: w.SearchGroups(query)}
	}
	rest := strings.TrimPrefix(query, string(SearchMarkerGroup))
	slash := strings.IndexRune(rest, SearchMarkerOption)
	if slash < 0 {
		return &SearchResult{Kind: SearchKindGroups, Groups: w.SearchGroups(rest)}
	}

	groupQuery, optionQuery := rest[:slash], rest[slash+1:]
	var options []OptionSearchResult
	for _, s := range w.scoredGroups(groupQuery) {
		matches := optionMatches(s.entry.Group, optionQuery)
		if len(matches) == 0 {
			continue
		}
		options = append(options, OptionSearchResult{
			LibraryID:   s.entry.LibraryID,
			LibraryName: s.entry.LibraryName,
			GroupName:   s.entry.Group.Name,
			Matches:     matches,
		})
	}
	return &SearchResult{Kind: SearchKindOptions, Options: options}
}

// SearchGroups fuzzy-matches the query against every group name. An
// empty query lists every group unscored in workspace order; otherwise
// results sort by score descending, ties by library id then group name.
func (w *Workspace) SearchGroups(query string) []GroupSearchResult {
	scored := w.scoredGroups(query)
	results := make([]GroupSearchResult, 0, len(scored))
	for _, s := range scored {
		results = append(results, GroupSearchResult{
			LibraryID:   s.entry.LibraryID,
			LibraryName: s.entry.LibraryName,
			GroupName:   s.entry.Group.Name,
			Options:     copyStrings(s.entry.Group.Options),
			Score:       s.score,
			Indices:     s.indices,
		})
	}
	return results
}

// SearchOptions fuzzy-matches the query against option texts. A
// non-empty groupFilter restricts scoring to groups with that exact
// name. An empty query returns all options unscored in original order.
// Groups without a matching option are omitted.
func (w *Workspace) SearchOptions(query string, groupFilter string) []OptionSearchResult {
	var results []OptionSearchResult
	for _, e := range w.allGroups() {
		if groupFilter != "" && e.Group.Name != groupFilter {
			continue
		}
		matches := optionMatches(e.Group, query)
		if len(matches) == 0 {
			continue
		}
		results = append(results, OptionSearchResult{
			LibraryID:   e.LibraryID,
			LibraryName: e.LibraryName,
			GroupName:   e.Group.Name,
			Matches:     matches,
		})
	}
	return results
}

// scoredGroup pairs a group entry with its query score.
type scoredGroup struct {
	entry   groupEntry
	score   int
	indices []int
}

// scoredGroups selects and ranks groups for a name query. The empty
// query selects every group unscored in workspace order.
func (w *Workspace) scoredGroups(query string) []scoredGroup {
	entries := w.allGroups()
	var scored []scoredGroup
	if query == "" {
		for _, e := range entries {
			scored = append(scored, scoredGroup{entry: e})
		}
		return scored
	}
	for _, e := range entries {
		score, indices, ok := internal.FuzzyMatch(e.Group.Name, query)
		if !ok {
			continue
		}
		scored = append(scored, scoredGroup{entry: e, score: score, indices: indices})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].entry.LibraryID != scored[j].entry.LibraryID {
			return scored[i].entry.LibraryID < scored[j].entry.LibraryID
		}
		return scored[i].entry.Group.Name < scored[j].entry.Group.Name
	})
	return scored
}

// optionMatches scores one group's options against the query. The empty
// query returns every option unscored in group order.
func optionMatches(g *Group, query string) []OptionMatch {
	var matches []OptionMatch
	if query == "" {
		for _, opt := range g.Options {
			matches = append(matches, OptionMatch{Text: opt})
		}
		return matches
	}
	for _, opt := range g.Options {
		score, indices, ok := internal.FuzzyMatch(opt, query)
		if !ok {
			continue
		}
		matches = append(matches, OptionMatch{Text: opt, Score: score, Indices: indices})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
