// Package biomemod runs biome modification passes: it applies every
// registered modifier to every biome of a registry build, at most once per
// biome per build.
package biomemod

import (
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
)

// PassState remembers which biomes of one registry build have already been
// through a pass. Callers own it and keep one per build; it is never
// cleared, which makes repeated passes on the same build no-ops.
type PassState struct {
	modified map[registry.Identifier]struct{}
}

// NewPassState returns an empty state for a fresh build.
func NewPassState() *PassState {
	return &PassState{modified: make(map[registry.Identifier]struct{})}
}

// Modified reports whether key has been processed.
func (s *PassState) Modified(key registry.Identifier) bool {
	_, ok := s.modified[key]
	return ok
}

// Len returns the number of processed biomes.
func (s *PassState) Len() int { return len(s.modified) }

// Keys returns the processed biome keys in identifier order.
func (s *PassState) Keys() []registry.Identifier {
	keys := make([]registry.Identifier, 0, len(s.modified))
	for key := range s.modified {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, registry.Identifier.Compare)
	return keys
}

// mark records key and reports whether it was new.
func (s *PassState) mark(key registry.Identifier) bool {
	if s.Modified(key) {
		return false
	}
	s.modified[key] = struct{}{}
	return true
}
