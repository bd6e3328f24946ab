package replay

import (
	"regexp"
	"strings"
)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// normalizeForComparison lowercases text and drops punctuation and extra whitespace.
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// textSimilarity returns a 0..1 ratio based on the rune-level Levenshtein distance of the
// normalized texts.
func textSimilarity(a, b string) float64 {
	s1 := []rune(normalizeForComparison(a))
	s2 := []rune(normalizeForComparison(b))
	if string(s1) == string(s2) {
		return 1.0
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := max(len(s1), len(s2))
	return 1.0 - float64(distance)/float64(maxLen)
}

func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Two rows are enough for the distance.
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

// themeOverlap is the Jaccard index of two comma-separated theme lists, compared case-insensitively.
func themeOverlap(a, b string) float64 {
	setA, setB := themeSet(a), themeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	shared := 0
	for theme := range setA {
		if setB[theme] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

func themeSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, theme := range strings.Split(list, ",") {
		if theme = normalizeForComparison(theme); theme != "" {
			set[theme] = true
		}
	}
	return set
}
