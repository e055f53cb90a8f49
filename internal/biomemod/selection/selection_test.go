package selection

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

var (
	jungleKey = registry.MustIdentifier("minecraft:jungle")
	wastesKey = registry.MustIdentifier("minecraft:nether_wastes")
	moddedKey = registry.MustIdentifier("example:crystal_fields")
	endKey    = registry.MustIdentifier("minecraft:the_end")
	jungleVil = registry.MustIdentifier("minecraft:village_jungle")
	bambooKey = registry.MustIdentifier("minecraft:bamboo")
)

type world struct {
	regs    *worldgen.Registries
	bamboo  *worldgen.ConfiguredFeature
	village *worldgen.ConfiguredStructure
	surface *worldgen.ConfiguredSurfaceBuilder
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		regs:    worldgen.NewRegistries(),
		bamboo:  &worldgen.ConfiguredFeature{Feature: registry.MustIdentifier("minecraft:bamboo")},
		village: &worldgen.ConfiguredStructure{Feature: registry.MustIdentifier("minecraft:village")},
		surface: &worldgen.ConfiguredSurfaceBuilder{Builder: registry.MustIdentifier("minecraft:default")},
	}
	mustRegister(t, w.regs.ConfiguredFeatures, bambooKey, w.bamboo)
	mustRegister(t, w.regs.ConfiguredStructures, jungleVil, w.village)
	mustRegister(t, w.regs.SurfaceBuilders, registry.MustIdentifier("minecraft:grass"), w.surface)

	w.regs.Builtin = worldgen.NewRegistries()
	for _, key := range []registry.Identifier{jungleKey, wastesKey, endKey} {
		mustRegister(t, w.regs.Builtin.Biomes, key, &worldgen.Biome{})
	}
	return w
}

func mustRegister[T any](t *testing.T, r *registry.Registry[T], key registry.Identifier, value *T) {
	t.Helper()
	if _, err := r.Register(key, value); err != nil {
		t.Fatalf("register %s: %v", key, err)
	}
}

func (w *world) biome(category worldgen.Category, temperature float32, withContent bool) *worldgen.Biome {
	gen := worldgen.NewGenerationSettings(nil, nil, nil, nil)
	if withContent {
		gen = worldgen.NewGenerationSettings(w.surface, nil,
			[][]*worldgen.ConfiguredFeature{{}, {w.bamboo}},
			[]*worldgen.ConfiguredStructure{w.village})
	}
	return worldgen.NewBiome(worldgen.BiomeParams{
		Weather:            worldgen.Weather{Precipitation: worldgen.PrecipitationRain, Temperature: temperature, Downfall: 0.5},
		Category:           category,
		Depth:              0.25,
		Scale:              0.5,
		GenerationSettings: gen,
	})
}

func TestContextReverseLookups(t *testing.T) {
	w := newWorld(t)
	ctx := NewContext(jungleKey, w.biome(worldgen.CategoryJungle, 0.95, true), w.regs)

	if key, ok := ctx.SurfaceBuilderKey(); !ok || key != registry.MustIdentifier("minecraft:grass") {
		t.Fatalf("surface key = %v, %v", key, ok)
	}
	if key, ok := ctx.FeatureKey(w.bamboo); !ok || key != bambooKey {
		t.Fatalf("feature key = %v, %v", key, ok)
	}
	if _, ok := ctx.FeatureKey(&worldgen.ConfiguredFeature{Feature: registry.MustIdentifier("minecraft:bamboo")}); ok {
		t.Fatal("unregistered copy should not resolve")
	}
	if key, ok := ctx.StructureKey(w.village); !ok || key != jungleVil {
		t.Fatalf("structure key = %v, %v", key, ok)
	}
	if !ctx.HasFeature(bambooKey) || !ctx.HasStructure(jungleVil) {
		t.Fatal("expected feature and structure present")
	}

	bare := NewContext(moddedKey, w.biome(worldgen.CategoryPlains, 0.5, false), w.regs)
	if _, ok := bare.SurfaceBuilderKey(); ok {
		t.Fatal("missing surface builder should not resolve")
	}
	if bare.HasFeature(bambooKey) {
		t.Fatal("bare biome has no features")
	}
}

func TestContextSnapshotIsDetached(t *testing.T) {
	w := newWorld(t)
	biome := w.biome(worldgen.CategoryJungle, 0.95, true)
	ctx := NewContext(jungleKey, biome, w.regs)

	gen := biome.GenerationSettings()
	gen.Structures = nil
	biome.SetGenerationSettings(gen)
	biome.SetWeather(worldgen.Weather{Temperature: -1})

	if !ctx.HasStructure(jungleVil) {
		t.Fatal("snapshot observed later edit")
	}
	if ctx.Biome().Weather().Temperature != 0.95 {
		t.Fatalf("snapshot weather = %+v", ctx.Biome().Weather())
	}
}

func TestSelectors(t *testing.T) {
	w := newWorld(t)
	contexts := map[string]*Context{
		"jungle": NewContext(jungleKey, w.biome(worldgen.CategoryJungle, 0.95, true), w.regs),
		"wastes": NewContext(wastesKey, w.biome(worldgen.CategoryNether, 2.0, false), w.regs),
		"end":    NewContext(endKey, w.biome(worldgen.CategoryTheEnd, 0.5, false), w.regs),
		"modded": NewContext(moddedKey, w.biome(worldgen.CategoryPlains, 0.5, false), w.regs),
	}
	cases := []struct {
		name     string
		selector Predicate
		want     map[string]bool
	}{
		{"all", All(), map[string]bool{"jungle": true, "wastes": true, "end": true, "modded": true}},
		{"builtin", BuiltIn(), map[string]bool{"jungle": true, "wastes": true, "end": true}},
		{"overworld", FoundInOverworld(), map[string]bool{"jungle": true, "modded": true}},
		{"nether", FoundInTheNether(), map[string]bool{"wastes": true}},
		{"end", FoundInTheEnd(), map[string]bool{"end": true}},
		{"categories", Categories(worldgen.CategoryJungle, worldgen.CategoryPlains), map[string]bool{"jungle": true, "modded": true}},
		{"include", IncludeByKey(wastesKey, endKey), map[string]bool{"wastes": true, "end": true}},
		{"exclude", ExcludeByKey(wastesKey, endKey), map[string]bool{"jungle": true, "modded": true}},
		{"has feature", HasFeature(bambooKey), map[string]bool{"jungle": true}},
		{"has structure", HasStructure(jungleVil), map[string]bool{"jungle": true}},
		{"and", And(BuiltIn(), FoundInOverworld()), map[string]bool{"jungle": true}},
		{"empty and", And(), map[string]bool{"jungle": true, "wastes": true, "end": true, "modded": true}},
		{"or", Or(FoundInTheNether(), FoundInTheEnd()), map[string]bool{"wastes": true, "end": true}},
		{"empty or", Or(), map[string]bool{}},
		{"not", Not(BuiltIn()), map[string]bool{"modded": true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for name, ctx := range contexts {
				if got := tc.selector(ctx); got != tc.want[name] {
					t.Errorf("%s: got %v, want %v", name, got, tc.want[name])
				}
			}
		})
	}
}

func TestFilter(t *testing.T) {
	w := newWorld(t)
	jungle := NewContext(jungleKey, w.biome(worldgen.CategoryJungle, 0.95, true), w.regs)
	modded := NewContext(moddedKey, w.biome(worldgen.CategoryPlains, 0.5, false), w.regs)

	cases := []struct {
		filter       string
		jungle, mods bool
	}{
		{"", true, true},
		{`category = "jungle"`, true, false},
		{`namespace = "example"`, false, true},
		{`key = "minecraft:jungle"`, true, false},
		{`path : "crystal"`, false, true},
		{`temperature > 0.5`, true, false},
		{`temperature >= 0.5 AND depth = 0.25`, true, true},
		{`category = "desert" OR scale < 1.0`, true, true},
		{`NOT namespace = "minecraft"`, false, true},
		{`precipitation = "rain" downfall <= 0.5`, true, true},
		{`precipitation != "rain"`, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			p, err := Filter(tc.filter)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := p(jungle); got != tc.jungle {
				t.Errorf("jungle = %v, want %v", got, tc.jungle)
			}
			if got := p(modded); got != tc.mods {
				t.Errorf("modded = %v, want %v", got, tc.mods)
			}
		})
	}
}

func TestFilterComparesAtStoredPrecision(t *testing.T) {
	w := newWorld(t)
	plains := NewContext(moddedKey, w.biome(worldgen.CategoryPlains, 0.8, false), w.regs)

	cases := []struct {
		filter string
		want   bool
	}{
		{`temperature = 0.8`, true},
		{`temperature <= 0.8`, true},
		{`temperature >= 0.8`, true},
		{`NOT temperature > 0.8`, true},
		{`temperature < 0.8`, false},
		{`temperature != 0.8`, false},
		{`temperature > 0.79`, true},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			p, err := Filter(tc.filter)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := p(plains); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterRejectsUnknownFields(t *testing.T) {
	_, err := Filter(`altitude > 3.0`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeInvalidModifier, "")) {
		t.Fatalf("err = %v, want invalid modifier code", err)
	}
}
