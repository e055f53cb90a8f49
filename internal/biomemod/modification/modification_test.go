package modification

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

func TestFreezeWithoutEditsRoundTrips(t *testing.T) {
	f := newFixture(t)
	wantGen := f.biome.GenerationSettings().Clone()
	wantSpawn := f.biome.SpawnSettings().Clone()

	ctx := f.context(t)
	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if diff := cmp.Diff(wantGen, f.biome.GenerationSettings(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("generation settings changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantSpawn, f.biome.SpawnSettings(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("spawn settings changed (-want +got):\n%s", diff)
	}
}

func TestFreezeTwiceFails(t *testing.T) {
	ctx := newFixture(t).context(t)
	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if err := ctx.Freeze(); !errors.Is(err, ErrFrozen) {
		t.Fatalf("second freeze err = %v, want ErrFrozen", err)
	}
	if err := ctx.GenerationSettings().AddFeature(worldgen.StepLakes, treesKey); !errors.Is(err, ErrFrozen) {
		t.Fatalf("edit after freeze err = %v, want ErrFrozen", err)
	}
	if err := ctx.Weather().SetDownfall(1); !errors.Is(err, ErrFrozen) {
		t.Fatalf("weather after freeze err = %v, want ErrFrozen", err)
	}
}

func TestEditsStayPrivateUntilFreeze(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	if err := ctx.GenerationSettings().AddFeature(worldgen.StepVegetalDecoration, treesKey); err != nil {
		t.Fatalf("add feature: %v", err)
	}
	if got := len(f.biome.GenerationSettings().Features); got != 2 {
		t.Fatalf("biome saw edit before freeze: %d steps", got)
	}
	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	features := f.biome.GenerationSettings().Features
	if len(features) != int(worldgen.StepVegetalDecoration)+1 {
		t.Fatalf("steps = %d", len(features))
	}
	if !slices.Equal(features[worldgen.StepVegetalDecoration], []*worldgen.ConfiguredFeature{f.trees}) {
		t.Fatalf("vegetal step = %v", features[worldgen.StepVegetalDecoration])
	}
}

func TestAddFeatureGrowsTableDensely(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	gen := ctx.GenerationSettings()
	if err := gen.AddFeature(worldgen.StepStrongholds, treesKey); err != nil {
		t.Fatalf("add feature: %v", err)
	}
	features := gen.Features()
	if len(features) != 6 {
		t.Fatalf("steps = %d, want 6", len(features))
	}
	for step := 2; step <= 4; step++ {
		if features[step] == nil || len(features[step]) != 0 {
			t.Fatalf("step %d = %v, want empty list", step, features[step])
		}
	}
	if !slices.Equal(features[1], []*worldgen.ConfiguredFeature{f.ore}) {
		t.Fatalf("existing step changed: %v", features[1])
	}
}

func TestFlowerCacheFollowsFeatureEdits(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	gen := ctx.GenerationSettings()
	before := slices.Clone(gen.FlowerFeatures())

	if err := gen.AddFeature(worldgen.StepVegetalDecoration, flowerPatchKey); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !slices.Equal(gen.FlowerFeatures(), []*worldgen.ConfiguredFeature{f.flower}) {
		t.Fatalf("flowers after add = %v", gen.FlowerFeatures())
	}

	removed, err := gen.RemoveFeature(worldgen.StepVegetalDecoration, flowerPatchKey)
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v", removed, err)
	}
	if diff := cmp.Diff(before, gen.FlowerFeatures(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("flowers not restored (-want +got):\n%s", diff)
	}

	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	settings := f.biome.GenerationSettings()
	if diff := cmp.Diff(worldgen.CollectFlowerFeatures(settings.Features), settings.FlowerFeatures, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("frozen flower cache stale:\n%s", diff)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	f := newFixture(t)
	want := f.biome.GenerationSettings().Clone()
	ctx := f.context(t)
	gen := ctx.GenerationSettings()

	cases := []struct {
		name   string
		remove func() (bool, error)
	}{
		{"feature at populated step", func() (bool, error) { return gen.RemoveFeature(worldgen.StepLakes, treesKey) }},
		{"feature beyond table", func() (bool, error) { return gen.RemoveFeature(worldgen.StepTopLayerModification, oreKey) }},
		{"carver", func() (bool, error) { return gen.RemoveCarver(worldgen.CarverAir, canyonKey) }},
		{"carver other step", func() (bool, error) { return gen.RemoveCarver(worldgen.CarverLiquid, caveKey) }},
		{"structure", func() (bool, error) { return gen.RemoveStructure(mineshaftKey) }},
		{"structure type", func() (bool, error) { return gen.RemoveStructuresOfType(mineshaftType) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			removed, err := tc.remove()
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if removed {
				t.Fatal("expected no removal")
			}
		})
	}

	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if diff := cmp.Diff(want, f.biome.GenerationSettings(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestRemoveCarverAndStructure(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	gen := ctx.GenerationSettings()

	if removed, err := gen.RemoveCarver(worldgen.CarverAir, caveKey); err != nil || !removed {
		t.Fatalf("remove carver = %v, %v", removed, err)
	}
	if removed, err := gen.RemoveStructuresOfType(villageType); err != nil || !removed {
		t.Fatalf("remove structure type = %v, %v", removed, err)
	}
	if err := gen.AddCarver(worldgen.CarverLiquid, canyonKey); err != nil {
		t.Fatalf("add carver: %v", err)
	}
	if err := gen.SetSurfaceBuilder(desertSurface); err != nil {
		t.Fatalf("set surface: %v", err)
	}
	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	settings := f.biome.GenerationSettings()
	if len(settings.Carvers[worldgen.CarverAir]) != 0 {
		t.Fatalf("air carvers = %v", settings.Carvers[worldgen.CarverAir])
	}
	if !slices.Equal(settings.Carvers[worldgen.CarverLiquid], []*worldgen.ConfiguredCarver{f.canyon}) {
		t.Fatalf("liquid carvers = %v", settings.Carvers[worldgen.CarverLiquid])
	}
	if len(settings.Structures) != 0 {
		t.Fatalf("structures = %v", settings.Structures)
	}
	if settings.SurfaceBuilder.Builder != registry.MustIdentifier("minecraft:desert") {
		t.Fatalf("surface = %v", settings.SurfaceBuilder)
	}
}

func TestAddStructureReplacesSameFeatureType(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	gen := ctx.GenerationSettings()

	if err := gen.AddStructure(mineshaftKey); err != nil {
		t.Fatalf("add mineshaft: %v", err)
	}
	if err := gen.AddStructure(jungleVillKey); err != nil {
		t.Fatalf("add jungle village: %v", err)
	}
	if err := ctx.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	got := f.biome.GenerationSettings().Structures
	want := []*worldgen.ConfiguredStructure{f.shaft, f.jungleVillage}
	if !slices.Equal(got, want) {
		t.Fatalf("structures = %v, want mineshaft then jungle village", got)
	}
}

func TestUnknownKeySuggestsClosestEntry(t *testing.T) {
	ctx := newFixture(t).context(t)
	err := ctx.GenerationSettings().AddFeature(worldgen.StepLakes, registry.MustIdentifier("minecraft:ore_irn"))
	if !errors.Is(err, registry.ErrUnknownKey) {
		t.Fatalf("err = %v, want unknown key", err)
	}
	if got := apperrors.MetadataOf(err)["Suggestion"]; got != oreKey.String() {
		t.Fatalf("suggestion = %q", got)
	}
}

func TestInvalidEnumsAreRejected(t *testing.T) {
	ctx := newFixture(t).context(t)
	checks := map[string]error{
		"precipitation":  ctx.Weather().SetPrecipitation(worldgen.Precipitation(42)),
		"temperature":    ctx.Weather().SetTemperatureModifier(worldgen.TemperatureModifier(-1)),
		"grass modifier": ctx.Effects().SetGrassColorModifier(worldgen.GrassColorModifier(9)),
		"step":           ctx.GenerationSettings().AddFeature(worldgen.GenerationStep(99), treesKey),
		"carver step":    ctx.GenerationSettings().AddCarver(worldgen.CarverStep(7), caveKey),
		"spawn group":    ctx.SpawnSettings().AddSpawn(worldgen.SpawnGroup(-3), worldgen.SpawnEntry{Type: registry.MustIdentifier("minecraft:cow")}),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNullArgument) {
			t.Errorf("%s: err = %v, want null argument", name, err)
		}
	}
}

func TestWeatherWritesThrough(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	w := ctx.Weather()
	if err := w.SetPrecipitation(worldgen.PrecipitationSnow); err != nil {
		t.Fatal(err)
	}
	if err := w.SetTemperature(-0.5); err != nil {
		t.Fatal(err)
	}
	if err := w.SetTemperatureModifier(worldgen.TemperatureModifierFrozen); err != nil {
		t.Fatal(err)
	}
	if err := w.SetDownfall(0.9); err != nil {
		t.Fatal(err)
	}
	want := worldgen.Weather{
		Precipitation:       worldgen.PrecipitationSnow,
		Temperature:         -0.5,
		TemperatureModifier: worldgen.TemperatureModifierFrozen,
		Downfall:            0.9,
	}
	if got := f.biome.Weather(); got != want {
		t.Fatalf("weather = %+v, want %+v", got, want)
	}
}

func TestEffectsOptionalSetters(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	fx := ctx.Effects()

	if err := fx.SetGrassColor(nil); !errors.Is(err, ErrNullArgument) {
		t.Fatalf("nil wrapper err = %v", err)
	}
	if err := fx.SetGrassColorValue(0x79c05a); err != nil {
		t.Fatal(err)
	}
	if got, ok := f.biome.Effects().GrassColor.Get(); !ok || got != 0x79c05a {
		t.Fatalf("grass color = %v, %v", got, ok)
	}
	empty := worldgen.None[int]()
	if err := fx.SetGrassColor(&empty); err != nil {
		t.Fatal(err)
	}
	if f.biome.Effects().GrassColor.IsPresent() {
		t.Fatal("grass color should be cleared")
	}

	if err := fx.SetMusicValue(worldgen.Music{}); !errors.Is(err, ErrNullArgument) {
		t.Fatalf("music without sound err = %v", err)
	}
	sound := registry.MustIdentifier("minecraft:ambient.cave")
	if err := fx.SetAmbientSoundValue(sound); err != nil {
		t.Fatal(err)
	}
	if err := fx.SetFogColor(0xc0d8ff); err != nil {
		t.Fatal(err)
	}
	effects := f.biome.Effects()
	if got, _ := effects.AmbientSound.Get(); got != sound || effects.FogColor != 0xc0d8ff {
		t.Fatalf("effects = %+v", effects)
	}
	if err := fx.ClearAmbientSound(); err != nil {
		t.Fatal(err)
	}
	if f.biome.Effects().AmbientSound.IsPresent() {
		t.Fatal("ambient sound should be cleared")
	}
}

func TestSpawnSettingsEditor(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	spawns := ctx.SpawnSettings()
	cow := registry.MustIdentifier("minecraft:cow")
	zombie := registry.MustIdentifier("minecraft:zombie")

	if err := spawns.AddSpawn(worldgen.GroupCreature, worldgen.SpawnEntry{Type: cow, Weight: 8, MinGroupSize: 4, MaxGroupSize: 4}); err != nil {
		t.Fatal(err)
	}
	if err := spawns.AddSpawn(worldgen.GroupCreature, worldgen.SpawnEntry{}); !errors.Is(err, ErrNullArgument) {
		t.Fatalf("empty entry err = %v", err)
	}
	if removed, err := spawns.RemoveSpawnsOfEntityType(zombie); err != nil || !removed {
		t.Fatalf("remove zombie = %v, %v", removed, err)
	}
	if removed, err := spawns.RemoveSpawnsOfEntityType(zombie); err != nil || removed {
		t.Fatalf("second remove = %v, %v", removed, err)
	}
	if _, err := spawns.RemoveSpawns(nil); !errors.Is(err, ErrNullArgument) {
		t.Fatalf("nil predicate err = %v", err)
	}
	if err := spawns.SetSpawnCost(cow, 0.7, 0.15); err != nil {
		t.Fatal(err)
	}
	if err := spawns.SetCreatureSpawnProbability(0.5); err != nil {
		t.Fatal(err)
	}
	if err := spawns.SetPlayerSpawnFriendly(true); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Freeze(); err != nil {
		t.Fatal(err)
	}

	got := f.biome.SpawnSettings()
	if len(got.Spawners) != len(worldgen.SpawnGroups()) {
		t.Fatalf("spawn groups not dense: %d", len(got.Spawners))
	}
	if len(got.Spawners[worldgen.GroupMonster]) != 0 {
		t.Fatalf("monsters = %v", got.Spawners[worldgen.GroupMonster])
	}
	creatures := got.Spawners[worldgen.GroupCreature]
	if len(creatures) != 2 || creatures[1].Type != cow {
		t.Fatalf("creatures = %v", creatures)
	}
	if got.SpawnCosts[cow] != (worldgen.SpawnDensity{Mass: 0.7, GravityLimit: 0.15}) {
		t.Fatalf("cost = %+v", got.SpawnCosts[cow])
	}
	if got.CreatureSpawnProbability != 0.5 || !got.PlayerSpawnFriendly {
		t.Fatalf("scalars = %+v", got)
	}
}

func TestClearSpawnCost(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(t)
	cow := registry.MustIdentifier("minecraft:cow")
	if err := ctx.SpawnSettings().SetSpawnCost(cow, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := ctx.SpawnSettings().ClearSpawnCost(cow); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Freeze(); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.biome.SpawnSettings().SpawnCosts[cow]; ok {
		t.Fatal("cost should be cleared")
	}
}

func TestNewContextRequiresBiome(t *testing.T) {
	if _, err := NewContext(plainsKey, nil, worldgen.NewRegistries(), nil); !errors.Is(err, ErrNullArgument) {
		t.Fatalf("err = %v", err)
	}
}
