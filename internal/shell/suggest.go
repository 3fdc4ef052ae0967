package shell

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggestion defaults, matching what users expect from a "did you mean"
// prompt: at most three candidates, none wildly dissimilar.
const (
	DefaultMaxSuggestions      = 3
	DefaultSimilarityThreshold = 0.6
)

// Suggest returns up to max candidate names whose similarity to token
// meets the threshold, ordered by descending similarity. Ties keep the
// candidates' original order, so for a fixed input the result is
// deterministic.
//
// Similarity is normalized Levenshtein: 1 - distance/len(longer).
func Suggest(token string, candidates []string, max int, threshold float64) []string {
	if max <= 0 || token == "" {
		return nil
	}
	token = strings.ToLower(token)

	type scored struct {
		name  string
		score float64
	}
	var matches []scored
	for _, cand := range candidates {
		score := similarity(token, strings.ToLower(cand))
		if score >= threshold {
			matches = append(matches, scored{name: cand, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// similarity maps Levenshtein distance onto [0, 1], 1 being identical
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longer := len([]rune(a))
	if lb := len([]rune(b)); lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longer)
}
