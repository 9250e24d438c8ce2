package internal

import "unicode"

// Fuzzy scoring constants
const (
	FuzzyScoreMatch       = 16
	FuzzyBonusBoundary    = 8
	FuzzyBonusConsecutive = 8
	FuzzyPenaltyGapStart  = 3
	FuzzyPenaltyGapExtend = 1

	fuzzyImpossible = -1 << 30
)

// FuzzyMatch scores query against candidate as a case-insensitive
// subsequence match. It returns the score of the best alignment, the rune
// offsets into candidate chosen by that alignment, and whether the query
// matched at all. Contiguous runs and matches on word boundaries score
// higher, gaps between matched runes score lower. Among equal-score
// alignments the leftmost indices win, so highlighting is stable.
func FuzzyMatch(candidate, query string) (int, []int, bool) {
	if query == "" {
		return 0, nil, false
	}
	cand := foldRunes(candidate)
	q := foldRunes(query)
	n, m := len(cand), len(q)
	if m > n {
		return 0, nil, false
	}

	bonus := boundaryBonuses(candidate)

	// score[j][i] is the best score of matching the query suffix q[j:] with
	// q[j] placed exactly at candidate position i
	score := make([][]int, m)
	for j := range score {
		score[j] = make([]int, n)
	}

	for j := m - 1; j >= 0; j-- {
		// runningK tracks max(score[j+1][k] - k*FuzzyPenaltyGapExtend) over
		// all k >= i+2, turning the affine gap penalty into a suffix max
		runningK := fuzzyImpossible
		for i := n - 1; i >= 0; i-- {
			if k := i + 2; j < m-1 && k < n && score[j+1][k] != fuzzyImpossible {
				if v := score[j+1][k] - k*FuzzyPenaltyGapExtend; v > runningK {
					runningK = v
				}
			}
			if cand[i] != q[j] {
				score[j][i] = fuzzyImpossible
				continue
			}
			if j == m-1 {
				score[j][i] = FuzzyScoreMatch + bonus[i]
				continue
			}
			best := fuzzyImpossible
			if i+1 < n && score[j+1][i+1] != fuzzyImpossible {
				best = score[j+1][i+1] + FuzzyBonusConsecutive
			}
			if runningK != fuzzyImpossible {
				if gapped := runningK - FuzzyPenaltyGapStart + (i+2)*FuzzyPenaltyGapExtend; gapped > best {
					best = gapped
				}
			}
			if best == fuzzyImpossible {
				score[j][i] = fuzzyImpossible
				continue
			}
			score[j][i] = best + FuzzyScoreMatch + bonus[i]
		}
	}

	bestScore := fuzzyImpossible
	start := -1
	for i := 0; i < n; i++ {
		if score[0][i] != fuzzyImpossible && score[0][i] > bestScore {
			bestScore = score[0][i]
			start = i
		}
	}
	if start < 0 {
		return 0, nil, false
	}

	indices := make([]int, 1, m)
	indices[0] = start
	i := start
	for j := 1; j < m; j++ {
		target := score[j-1][i] - FuzzyScoreMatch - bonus[i]
		for next := i + 1; next < n; next++ {
			if score[j][next] == fuzzyImpossible {
				continue
			}
			value := score[j][next] - FuzzyPenaltyGapStart - (next-i-2)*FuzzyPenaltyGapExtend
			if next == i+1 {
				value = score[j][next] + FuzzyBonusConsecutive
			}
			if value == target {
				i = next
				indices = append(indices, i)
				break
			}
		}
	}

	return bestScore, indices, true
}

// foldRunes lowercases a string rune by rune so that match indices stay
// aligned with the original rune offsets
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// boundaryBonuses marks candidate positions at the start of a word: the
// first rune, or any rune following a non-alphanumeric separator
func boundaryBonuses(candidate string) []int {
	runes := []rune(candidate)
	bonuses := make([]int, len(runes))
	prevWord := false
	for i, r := range runes {
		if !prevWord {
			bonuses[i] = FuzzyBonusBoundary
		}
		prevWord = unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return bonuses
}
