package worldgen

import "github.com/louisbranch/biomemod/internal/world/registry"

// Registry names.
var (
	BiomeRegistry               = registry.MustIdentifier("minecraft:worldgen/biome")
	ConfiguredFeatureRegistry   = registry.MustIdentifier("minecraft:worldgen/configured_feature")
	ConfiguredCarverRegistry    = registry.MustIdentifier("minecraft:worldgen/configured_carver")
	ConfiguredStructureRegistry = registry.MustIdentifier("minecraft:worldgen/configured_structure_feature")
	SurfaceBuilderRegistry      = registry.MustIdentifier("minecraft:worldgen/configured_surface_builder")
	GeneratorSettingsRegistry   = registry.MustIdentifier("minecraft:worldgen/noise_settings")
)

// Registries is one registry-manager build: the dynamic registries a world
// is created from. Builtin, when set, holds the canonical built-in content
// that dynamic entries may be copies of.
type Registries struct {
	Biomes               *registry.Registry[Biome]
	ConfiguredFeatures   *registry.Registry[ConfiguredFeature]
	ConfiguredCarvers    *registry.Registry[ConfiguredCarver]
	ConfiguredStructures *registry.Registry[ConfiguredStructure]
	SurfaceBuilders      *registry.Registry[ConfiguredSurfaceBuilder]
	GeneratorSettings    *registry.Registry[ChunkGeneratorSettings]
	Builtin              *Registries
}

// NewRegistries creates an empty registry-manager build.
func NewRegistries() *Registries {
	return &Registries{
		Biomes:               registry.New[Biome](BiomeRegistry),
		ConfiguredFeatures:   registry.New[ConfiguredFeature](ConfiguredFeatureRegistry),
		ConfiguredCarvers:    registry.New[ConfiguredCarver](ConfiguredCarverRegistry),
		ConfiguredStructures: registry.New[ConfiguredStructure](ConfiguredStructureRegistry),
		SurfaceBuilders:      registry.New[ConfiguredSurfaceBuilder](SurfaceBuilderRegistry),
		GeneratorSettings:    registry.New[ChunkGeneratorSettings](GeneratorSettingsRegistry),
	}
}

// IsBuiltinBiome reports whether key names a biome that also exists in the
// built-in registries.
func (r *Registries) IsBuiltinBiome(key registry.Identifier) bool {
	if r == nil || r.Builtin == nil {
		return false
	}
	_, ok := r.Builtin.Biomes.Get(key)
	return ok
}

// CanonicalStructure returns the built-in instance registered under the same
// key as structure, or structure itself when there is none.
func (r *Registries) CanonicalStructure(structure *ConfiguredStructure) *ConfiguredStructure {
	if r == nil || structure == nil {
		return structure
	}
	key, ok := r.ConfiguredStructures.KeyOf(structure)
	if !ok || r.Builtin == nil {
		return structure
	}
	if canonical, found := r.Builtin.ConfiguredStructures.Get(key); found {
		return canonical
	}
	return structure
}
