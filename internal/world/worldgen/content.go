package worldgen

import "github.com/louisbranch/biomemod/internal/world/registry"

// FeatureFlower is the feature algorithm whose configurations feed the
// flower cache used by bone meal and flower forests.
var FeatureFlower = registry.MustIdentifier("minecraft:flower")

// ConfiguredFeature is a parameterized placement algorithm. Wrapping
// features (decorators, random selectors) list the features they place in
// Features.
type ConfiguredFeature struct {
	Feature  registry.Identifier
	Config   map[string]any
	Features []*ConfiguredFeature
}

// IsFlower reports whether the feature itself places flowers.
func (f *ConfiguredFeature) IsFlower() bool {
	return f != nil && f.Feature == FeatureFlower
}

// DecoratedFeatures returns f followed by every feature it wraps, depth first.
// A feature wrapped more than once is listed each time; a feature that wraps
// one of its own ancestors is not descended into again.
func (f *ConfiguredFeature) DecoratedFeatures() []*ConfiguredFeature {
	var out []*ConfiguredFeature
	active := map[*ConfiguredFeature]bool{}
	var walk func(*ConfiguredFeature)
	walk = func(current *ConfiguredFeature) {
		if current == nil || active[current] {
			return
		}
		active[current] = true
		out = append(out, current)
		for _, child := range current.Features {
			walk(child)
		}
		delete(active, current)
	}
	walk(f)
	return out
}

// CollectFlowerFeatures flattens every flower configuration reachable from
// features, in step order then position order.
func CollectFlowerFeatures(features [][]*ConfiguredFeature) []*ConfiguredFeature {
	var out []*ConfiguredFeature
	for _, step := range features {
		for _, feature := range step {
			for _, decorated := range feature.DecoratedFeatures() {
				if decorated.IsFlower() {
					out = append(out, decorated)
				}
			}
		}
	}
	return out
}

// ConfiguredCarver is a parameterized cave or canyon carver.
type ConfiguredCarver struct {
	Carver      registry.Identifier
	Probability float32
	Config      map[string]any
}

// ConfiguredStructure is a configured variant of a structure feature type,
// e.g. the jungle variant of minecraft:village.
type ConfiguredStructure struct {
	// Feature is the structure-feature type. At most one configured structure
	// per type may be present on a biome.
	Feature registry.Identifier
	Config  map[string]any
}

// ConfiguredSurfaceBuilder paints the top blocks of a biome.
type ConfiguredSurfaceBuilder struct {
	Builder    registry.Identifier
	Top        registry.Identifier
	Under      registry.Identifier
	Underwater registry.Identifier
}
