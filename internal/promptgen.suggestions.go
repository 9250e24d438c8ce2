package internal

import "sort"

// MinSuggestionDistance is the floor for the edit-distance cutoff used by
// FindSimilarStrings
const MinSuggestionDistance = 2

// BestSuggestion picks the candidate closest to target for a "did you mean"
// hint. Fuzzy subsequence matching runs first; when the target is not a
// subsequence of any candidate (typical for transposed letters), edit
// distance takes over.
func BestSuggestion(target string, candidates []string) (string, bool) {
	if target == "" || len(candidates) == 0 {
		return "", false
	}

	threshold := len([]rune(target)) * FuzzyScoreMatch
	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		score, _, ok := FuzzyMatch(candidate, target)
		if !ok || score < threshold {
			continue
		}
		if best == "" || score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best != "" {
		return best, true
	}

	similar := FindSimilarStrings(target, candidates, 1)
	if len(similar) == 0 {
		return "", false
	}
	return similar[0], true
}

// FindSimilarStrings returns up to maxSuggestions candidates within edit
// distance of target, closest first. The distance cutoff scales with the
// target length so long names tolerate more typos.
func FindSimilarStrings(target string, candidates []string, maxSuggestions int) []string {
	if len(candidates) == 0 || maxSuggestions <= 0 {
		return nil
	}

	maxDistance := len([]rune(target)) / 2
	if maxDistance < MinSuggestionDistance {
		maxDistance = MinSuggestionDistance
	}

	type scored struct {
		str      string
		distance int
	}

	var similar []scored
	targetFolded := foldRunes(target)

	for _, candidate := range candidates {
		dist := levenshteinDistance(targetFolded, foldRunes(candidate))
		if dist <= maxDistance {
			similar = append(similar, scored{str: candidate, distance: dist})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})

	result := make([]string, 0, maxSuggestions)
	for i := 0; i < len(similar) && i < maxSuggestions; i++ {
		result = append(result, similar[i].str)
	}
	return result
}

// levenshteinDistance calculates the minimum number of single-rune edits
// (insertions, deletions, or substitutions) between two rune slices
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows are enough
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
