package modification

import (
	"testing"

	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

var (
	plainsKey       = registry.MustIdentifier("minecraft:plains")
	treesKey        = registry.MustIdentifier("minecraft:trees_plains")
	oreKey          = registry.MustIdentifier("minecraft:ore_iron")
	flowerPatchKey  = registry.MustIdentifier("minecraft:flower_default")
	caveKey         = registry.MustIdentifier("minecraft:cave")
	canyonKey       = registry.MustIdentifier("minecraft:canyon")
	villageKey      = registry.MustIdentifier("minecraft:village_plains")
	jungleVillKey   = registry.MustIdentifier("minecraft:village_jungle")
	mineshaftKey    = registry.MustIdentifier("minecraft:mineshaft")
	grassSurfaceKey = registry.MustIdentifier("minecraft:grass")
	desertSurface   = registry.MustIdentifier("minecraft:desert")
	overworldKey    = registry.MustIdentifier("minecraft:overworld")
	villageType     = registry.MustIdentifier("minecraft:village")
	mineshaftType   = registry.MustIdentifier("minecraft:mineshaft")
)

type fixture struct {
	registries *worldgen.Registries
	biome      *worldgen.Biome

	trees, ore, flowerPatch, flower *worldgen.ConfiguredFeature
	cave, canyon                    *worldgen.ConfiguredCarver
	village, jungleVillage, shaft   *worldgen.ConfiguredStructure
}

func register[T any](t *testing.T, r *registry.Registry[T], key registry.Identifier, value *T) *T {
	t.Helper()
	if _, err := r.Register(key, value); err != nil {
		t.Fatalf("register %s: %v", key, err)
	}
	return value
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{registries: worldgen.NewRegistries()}
	regs := f.registries

	f.trees = register(t, regs.ConfiguredFeatures, treesKey, &worldgen.ConfiguredFeature{Feature: registry.MustIdentifier("minecraft:tree")})
	f.ore = register(t, regs.ConfiguredFeatures, oreKey, &worldgen.ConfiguredFeature{Feature: registry.MustIdentifier("minecraft:ore")})
	f.flower = &worldgen.ConfiguredFeature{Feature: worldgen.FeatureFlower}
	f.flowerPatch = register(t, regs.ConfiguredFeatures, flowerPatchKey, &worldgen.ConfiguredFeature{
		Feature:  registry.MustIdentifier("minecraft:decorated"),
		Features: []*worldgen.ConfiguredFeature{f.flower},
	})

	f.cave = register(t, regs.ConfiguredCarvers, caveKey, &worldgen.ConfiguredCarver{Carver: registry.MustIdentifier("minecraft:cave"), Probability: 0.14})
	f.canyon = register(t, regs.ConfiguredCarvers, canyonKey, &worldgen.ConfiguredCarver{Carver: registry.MustIdentifier("minecraft:canyon"), Probability: 0.02})

	f.village = register(t, regs.ConfiguredStructures, villageKey, &worldgen.ConfiguredStructure{Feature: villageType})
	f.jungleVillage = register(t, regs.ConfiguredStructures, jungleVillKey, &worldgen.ConfiguredStructure{Feature: villageType})
	f.shaft = register(t, regs.ConfiguredStructures, mineshaftKey, &worldgen.ConfiguredStructure{Feature: mineshaftType})

	grass := register(t, regs.SurfaceBuilders, grassSurfaceKey, &worldgen.ConfiguredSurfaceBuilder{Builder: registry.MustIdentifier("minecraft:default")})
	register(t, regs.SurfaceBuilders, desertSurface, &worldgen.ConfiguredSurfaceBuilder{Builder: registry.MustIdentifier("minecraft:desert")})

	register(t, regs.GeneratorSettings, overworldKey, &worldgen.ChunkGeneratorSettings{})

	f.biome = worldgen.NewBiome(worldgen.BiomeParams{
		Weather:  worldgen.Weather{Precipitation: worldgen.PrecipitationRain, Temperature: 0.8, Downfall: 0.4},
		Category: worldgen.CategoryPlains,
		GenerationSettings: worldgen.NewGenerationSettings(
			grass,
			map[worldgen.CarverStep][]*worldgen.ConfiguredCarver{worldgen.CarverAir: {f.cave}},
			[][]*worldgen.ConfiguredFeature{{}, {f.ore}},
			[]*worldgen.ConfiguredStructure{f.village},
		),
		SpawnSettings: worldgen.NewSpawnSettings(0.1, map[worldgen.SpawnGroup][]worldgen.SpawnEntry{
			worldgen.GroupCreature: {{Type: registry.MustIdentifier("minecraft:sheep"), Weight: 12, MinGroupSize: 4, MaxGroupSize: 4}},
			worldgen.GroupMonster:  {{Type: registry.MustIdentifier("minecraft:zombie"), Weight: 95, MinGroupSize: 4, MaxGroupSize: 4}},
		}, nil, false),
	})
	register(t, regs.Biomes, plainsKey, f.biome)
	return f
}

func (f *fixture) context(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(plainsKey, f.biome, f.registries, NewStructureStartIndex(f.registries))
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	return ctx
}
