// Package match implements string similarity and translation-memory ranking.
package match

import "strings"

// Weights of the combined score. Character similarity dominates because game
// UI strings are typically short and near-verbatim repeats.
const (
	characterWeight = 0.7
	wordWeight      = 0.3
)

// Similarity returns the combined similarity of a and b in [0,1]:
// 0.7 * normalized edit distance + 0.3 * token Jaccard. It is deterministic,
// has no side effects and never fails; empty input degrades to 0.
func Similarity(a, b string) float64 {
	return characterWeight*CharacterSimilarity(a, b) + wordWeight*WordSimilarity(a, b)
}

// CharacterSimilarity is 1 - levenshtein(a,b) / max(|a|, |b|), counted in
// runes so multibyte game text scores per character, not per UTF-8 byte.
// Identical strings short-circuit to exactly 1; a single empty side is 0.
func CharacterSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	ra, rb := []rune(a), []rune(b)
	distance := levenshteinRunes(ra, rb)
	maxLen := max(len(ra), len(rb))
	return 1.0 - float64(distance)/float64(maxLen)
}

// WordSimilarity is the Jaccard index over lowercased whitespace-delimited
// tokens. Token order is irrelevant, so reordered but otherwise identical
// phrases still score 1.
func WordSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}
	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// levenshteinDistance is the classic insert/delete/substitute DP recurrence
// over runes.
func levenshteinDistance(a, b string) int {
	return levenshteinRunes([]rune(a), []rune(b))
}

func levenshteinRunes(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
