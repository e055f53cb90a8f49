// Package selection provides the read-only biome view that modifier
// selectors are evaluated against, plus a library of common selectors.
package selection

import (
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Context is an immutable view of one biome as it was before the pass
// touched it. The biome is a detached snapshot, so selectors never observe
// edits made by earlier modifiers on the same biome.
type Context struct {
	key        registry.Identifier
	biome      *worldgen.Biome
	registries *worldgen.Registries
}

// NewContext snapshots biome for selector evaluation.
func NewContext(key registry.Identifier, biome *worldgen.Biome, registries *worldgen.Registries) *Context {
	return &Context{key: key, biome: biome.Snapshot(), registries: registries}
}

// BiomeKey returns the key the biome is registered under.
func (c *Context) BiomeKey() registry.Identifier { return c.key }

// Biome returns the pre-modification snapshot.
func (c *Context) Biome() *worldgen.Biome { return c.biome }

// Registries returns the registry build the biome belongs to.
func (c *Context) Registries() *worldgen.Registries { return c.registries }

// IsBuiltIn reports whether the biome also exists in the built-in registries.
func (c *Context) IsBuiltIn() bool { return c.registries.IsBuiltinBiome(c.key) }

// SurfaceBuilderKey returns the key of the biome's surface builder. It is
// not found when the builder is not registered in this build.
func (c *Context) SurfaceBuilderKey() (registry.Identifier, bool) {
	return c.registries.SurfaceBuilders.KeyOf(c.biome.GenerationSettings().SurfaceBuilder)
}

// FeatureKey returns the key feature is registered under in this build.
func (c *Context) FeatureKey(feature *worldgen.ConfiguredFeature) (registry.Identifier, bool) {
	return c.registries.ConfiguredFeatures.KeyOf(feature)
}

// StructureKey returns the key structure is registered under in this build.
func (c *Context) StructureKey(structure *worldgen.ConfiguredStructure) (registry.Identifier, bool) {
	return c.registries.ConfiguredStructures.KeyOf(structure)
}

// HasFeature reports whether any generation step places the feature
// registered under key.
func (c *Context) HasFeature(key registry.Identifier) bool {
	for _, step := range c.biome.GenerationSettings().Features {
		for _, feature := range step {
			if found, ok := c.FeatureKey(feature); ok && found == key {
				return true
			}
		}
	}
	return false
}

// HasStructure reports whether the biome lists the structure registered
// under key.
func (c *Context) HasStructure(key registry.Identifier) bool {
	for _, structure := range c.biome.GenerationSettings().Structures {
		if found, ok := c.StructureKey(structure); ok && found == key {
			return true
		}
	}
	return false
}
