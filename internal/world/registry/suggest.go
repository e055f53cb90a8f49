package registry

import (
	"github.com/agnivade/levenshtein"
)

// Suggest returns the registered identifier closest to key by edit distance,
// when one is close enough to be a plausible typo.
func (r *Registry[T]) Suggest(key Identifier) (Identifier, bool) {
	if r == nil || len(r.entries) == 0 {
		return Identifier{}, false
	}
	want := key.String()
	best := Identifier{}
	bestDist := -1
	for _, entry := range r.entries {
		candidate := entry.Key.String()
		dist := levenshtein.ComputeDistance(want, candidate)
		if dist > suggestionLimit(len(candidate)) {
			continue
		}
		if bestDist == -1 || dist < bestDist || (dist == bestDist && entry.Key.Compare(best) < 0) {
			best = entry.Key
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}

func suggestionLimit(length int) int {
	switch {
	case length <= 8:
		return 1
	case length <= 16:
		return 2
	default:
		return 3
	}
}
