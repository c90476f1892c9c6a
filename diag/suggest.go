package diag

import (
	"sort"
	"strings"
)

// MaxSuggestionDistance is the maximum edit distance for a suggestion.
const MaxSuggestionDistance = 3

// MaxSuggestions is the maximum number of suggestions returned.
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions candidates similar to target,
// closest first.
func Suggest(target string, candidates []string) []string {
	if target == "" || len(candidates) == 0 {
		return nil
	}
	type scored struct {
		value string
		dist  int
	}
	threshold := MaxSuggestionDistance
	if len(target) <= 3 {
		threshold = 1
	} else if len(target) <= 5 {
		threshold = 2
	}
	lower := strings.ToLower(target)
	seen := map[string]bool{}
	var found []scored
	for _, c := range candidates {
		if c == "" || seen[c] || strings.ToLower(c) == lower {
			continue
		}
		seen[c] = true
		if d := levenshtein(lower, strings.ToLower(c)); d <= threshold {
			found = append(found, scored{c, d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].value < found[j].value
	})
	if len(found) > MaxSuggestions {
		found = found[:MaxSuggestions]
	}
	out := make([]string, 0, len(found))
	for _, s := range found {
		out = append(out, s.value)
	}
	return out
}

// SuggestionHint formats suggestions as a hint, or "" when there are none.
func SuggestionHint(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean `" + suggestions[0] + "`?"
	}
	quoted := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		quoted = append(quoted, "`"+s+"`")
	}
	return "did you mean one of " + strings.Join(quoted, ", ") + "?"
}

// levenshtein computes the edit distance using two rows.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
