package worldgen

import (
	"testing"

	"github.com/louisbranch/biomemod/internal/world/registry"
)

func feature(kind string, children ...*ConfiguredFeature) *ConfiguredFeature {
	return &ConfiguredFeature{Feature: registry.MustIdentifier(kind), Features: children}
}

func TestDecoratedFeaturesDepthFirst(t *testing.T) {
	flowerA := feature("minecraft:flower")
	flowerB := feature("minecraft:flower")
	patch := feature("minecraft:random_patch", flowerB)
	root := feature("minecraft:decorated", flowerA, patch, flowerA)

	got := root.DecoratedFeatures()
	want := []*ConfiguredFeature{root, flowerA, patch, flowerB, flowerA}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("decorated[%d] mismatch", i)
		}
	}
}

func TestDecoratedFeaturesStopsAtCycles(t *testing.T) {
	flower := feature("minecraft:flower")
	selector := feature("minecraft:random_selector", flower)
	root := feature("minecraft:decorated", selector)
	selector.Features = append(selector.Features, root)

	got := root.DecoratedFeatures()
	want := []*ConfiguredFeature{root, selector, flower}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("decorated[%d] mismatch", i)
		}
	}
}

func TestCollectFlowerFeaturesKeepsRepeats(t *testing.T) {
	flower := feature("minecraft:flower")
	selector := feature("minecraft:random_selector", flower, flower)

	got := CollectFlowerFeatures([][]*ConfiguredFeature{{selector}})
	if len(got) != 2 || got[0] != flower || got[1] != flower {
		t.Fatalf("flowers = %d entries, want the same flower twice", len(got))
	}
}

func TestCollectFlowerFeaturesStepThenPositionOrder(t *testing.T) {
	f1 := feature("minecraft:flower")
	f2 := feature("minecraft:flower")
	f3 := feature("minecraft:flower")
	features := [][]*ConfiguredFeature{
		{feature("minecraft:ore")},
		nil,
		{feature("minecraft:decorated", f2), f1},
		{f3},
	}
	got := CollectFlowerFeatures(features)
	want := []*ConfiguredFeature{f2, f1, f3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flower[%d] mismatch", i)
		}
	}
}

func TestNewGenerationSettingsIsDense(t *testing.T) {
	settings := NewGenerationSettings(nil, nil, nil, nil)
	for _, step := range CarverSteps() {
		if _, ok := settings.Carvers[step]; !ok {
			t.Fatalf("missing carver step %s", step)
		}
	}
	spawns := NewSpawnSettings(0.1, nil, nil, false)
	for _, group := range SpawnGroups() {
		if _, ok := spawns.Spawners[group]; !ok {
			t.Fatalf("missing spawn group %s", group)
		}
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	ore := feature("minecraft:ore")
	biome := NewBiome(BiomeParams{
		GenerationSettings: NewGenerationSettings(nil, nil, [][]*ConfiguredFeature{{ore}}, nil),
		SpawnSettings:      NewSpawnSettings(0.1, nil, nil, false),
	})
	snapshot := biome.Snapshot()
	snapshot.GenerationSettings().Features[0][0] = nil
	if biome.GenerationSettings().Features[0][0] != ore {
		t.Fatal("expected snapshot edits not to reach the original")
	}
}

func TestEnumParsing(t *testing.T) {
	step, err := ParseGenerationStep("Vegetal_Decoration")
	if err != nil || step != StepVegetalDecoration {
		t.Fatalf("ParseGenerationStep = %v, %v", step, err)
	}
	if _, err := ParseSpawnGroup("villager"); err == nil {
		t.Fatal("expected unknown group error")
	}
	if Precipitation(7).Valid() {
		t.Fatal("expected out-of-range precipitation to be invalid")
	}
	if got := Category(99).String(); got != "invalid(99)" {
		t.Fatalf("String = %q", got)
	}
}

func TestCanonicalStructurePrefersBuiltin(t *testing.T) {
	builtin := NewRegistries()
	canonical := &ConfiguredStructure{Feature: registry.MustIdentifier("minecraft:village")}
	if _, err := builtin.ConfiguredStructures.Register(registry.MustIdentifier("minecraft:village_plains"), canonical); err != nil {
		t.Fatalf("register builtin: %v", err)
	}
	dynamic := NewRegistries()
	dynamic.Builtin = builtin
	copyOf := &ConfiguredStructure{Feature: registry.MustIdentifier("minecraft:village")}
	if _, err := dynamic.ConfiguredStructures.Register(registry.MustIdentifier("minecraft:village_plains"), copyOf); err != nil {
		t.Fatalf("register dynamic: %v", err)
	}
	modded := &ConfiguredStructure{Feature: registry.MustIdentifier("example:tower")}

	if got := dynamic.CanonicalStructure(copyOf); got != canonical {
		t.Fatal("expected dynamic copy to normalize to builtin instance")
	}
	if got := dynamic.CanonicalStructure(modded); got != modded {
		t.Fatal("expected unregistered structure to stay itself")
	}
}
