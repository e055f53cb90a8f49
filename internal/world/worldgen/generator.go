package worldgen

import (
	"maps"
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
)

// StructureStarts maps each configured structure to the biomes it may start
// in. Values behave as a set; order is insertion order.
type StructureStarts map[*ConfiguredStructure][]registry.Identifier

// StructuresConfig groups structure starts by structure-feature type.
type StructuresConfig struct {
	ConfiguredStructures map[registry.Identifier]StructureStarts
}

// Clone deep-copies the config so the result can be mutated freely.
func (c StructuresConfig) Clone() StructuresConfig {
	out := StructuresConfig{
		ConfiguredStructures: make(map[registry.Identifier]StructureStarts, len(c.ConfiguredStructures)),
	}
	for featureType, starts := range c.ConfiguredStructures {
		copied := make(StructureStarts, len(starts))
		for structure, biomes := range starts {
			copied[structure] = slices.Clone(biomes)
		}
		out.ConfiguredStructures[featureType] = copied
	}
	return out
}

// Equal reports whether both configs hold the same pairings.
func (c StructuresConfig) Equal(other StructuresConfig) bool {
	return maps.EqualFunc(c.ConfiguredStructures, other.ConfiguredStructures, func(a, b StructureStarts) bool {
		return maps.EqualFunc(a, b, func(x, y []registry.Identifier) bool { return slices.Equal(x, y) })
	})
}

// ChunkGeneratorSettings is one noise generator settings entry. Only the
// structure configuration is modeled.
type ChunkGeneratorSettings struct {
	Structures StructuresConfig
}
