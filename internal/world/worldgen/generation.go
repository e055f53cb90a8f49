package worldgen

import "slices"

// GenerationSettings lists what a biome places during chunk generation.
//
// In frozen form Carvers has an entry for every carver step and
// FlowerFeatures equals CollectFlowerFeatures(Features).
type GenerationSettings struct {
	SurfaceBuilder *ConfiguredSurfaceBuilder
	Carvers        map[CarverStep][]*ConfiguredCarver
	Features       [][]*ConfiguredFeature
	FlowerFeatures []*ConfiguredFeature
	Structures     []*ConfiguredStructure
}

// NewGenerationSettings builds frozen settings, filling carver steps and the
// flower cache.
func NewGenerationSettings(surface *ConfiguredSurfaceBuilder, carvers map[CarverStep][]*ConfiguredCarver, features [][]*ConfiguredFeature, structures []*ConfiguredStructure) GenerationSettings {
	dense := make(map[CarverStep][]*ConfiguredCarver, len(CarverSteps()))
	for _, step := range CarverSteps() {
		dense[step] = slices.Clone(carvers[step])
	}
	clonedFeatures := make([][]*ConfiguredFeature, len(features))
	for i, step := range features {
		clonedFeatures[i] = slices.Clone(step)
	}
	return GenerationSettings{
		SurfaceBuilder: surface,
		Carvers:        dense,
		Features:       clonedFeatures,
		FlowerFeatures: CollectFlowerFeatures(clonedFeatures),
		Structures:     slices.Clone(structures),
	}
}

// Clone copies every collection; configured objects stay shared.
func (g GenerationSettings) Clone() GenerationSettings {
	out := g
	if g.Carvers != nil {
		out.Carvers = make(map[CarverStep][]*ConfiguredCarver, len(g.Carvers))
		for step, carvers := range g.Carvers {
			out.Carvers[step] = slices.Clone(carvers)
		}
	}
	if g.Features != nil {
		out.Features = make([][]*ConfiguredFeature, len(g.Features))
		for i, step := range g.Features {
			out.Features[i] = slices.Clone(step)
		}
	}
	out.FlowerFeatures = slices.Clone(g.FlowerFeatures)
	out.Structures = slices.Clone(g.Structures)
	return out
}
