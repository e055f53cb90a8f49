package modification

import (
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// StructureStartIndex edits which biomes each structure may start in. It is
// keyed by generator settings rather than by biome: every call touches every
// registered generator settings entry.
//
// Structures are normalized to their canonical built-in instance before they
// are used as keys, so a dynamic copy and its built-in original share one
// entry.
type StructureStartIndex struct {
	registries *worldgen.Registries
}

// NewStructureStartIndex returns an index over registries.
func NewStructureStartIndex(registries *worldgen.Registries) *StructureStartIndex {
	return &StructureStartIndex{registries: registries}
}

// AddStart allows structure to start in biome.
func (x *StructureStartIndex) AddStart(structure *worldgen.ConfiguredStructure, biome registry.Identifier) error {
	if structure == nil {
		return nullArgument("structure")
	}
	if biome.IsZero() {
		return nullArgument("biome")
	}
	canonical := x.registries.CanonicalStructure(structure)
	x.each(func(config *worldgen.StructuresConfig) bool {
		starts, ok := config.ConfiguredStructures[canonical.Feature]
		if !ok {
			starts = worldgen.StructureStarts{}
			config.ConfiguredStructures[canonical.Feature] = starts
		}
		if slices.Contains(starts[canonical], biome) {
			return false
		}
		starts[canonical] = append(starts[canonical], biome)
		return true
	})
	return nil
}

// RemoveStart stops structure from starting in biome. It reports whether any
// generator settings entry changed.
func (x *StructureStartIndex) RemoveStart(structure *worldgen.ConfiguredStructure, biome registry.Identifier) (bool, error) {
	if structure == nil {
		return false, nullArgument("structure")
	}
	canonical := x.registries.CanonicalStructure(structure)
	removed := x.each(func(config *worldgen.StructuresConfig) bool {
		starts, ok := config.ConfiguredStructures[canonical.Feature]
		if !ok {
			return false
		}
		return removeBiome(starts, canonical, biome)
	})
	return removed, nil
}

// RemoveAllStarts stops every structure of featureType from starting in biome.
func (x *StructureStartIndex) RemoveAllStarts(featureType, biome registry.Identifier) (bool, error) {
	if featureType.IsZero() {
		return false, nullArgument("structure feature type")
	}
	removed := x.each(func(config *worldgen.StructuresConfig) bool {
		starts, ok := config.ConfiguredStructures[featureType]
		if !ok {
			return false
		}
		changed := false
		for structure := range starts {
			if removeBiome(starts, structure, biome) {
				changed = true
			}
		}
		return changed
	})
	return removed, nil
}

// each unfreezes every generator settings entry's structure config, applies
// edit, and writes a fresh copy back when edit reports a change.
func (x *StructureStartIndex) each(edit func(*worldgen.StructuresConfig) bool) bool {
	changed := false
	for _, entry := range x.registries.GeneratorSettings.Entries() {
		config := entry.Value.Structures.Clone()
		if edit(&config) {
			entry.Value.Structures = config
			changed = true
		}
	}
	return changed
}

func removeBiome(starts worldgen.StructureStarts, structure *worldgen.ConfiguredStructure, biome registry.Identifier) bool {
	biomes, ok := starts[structure]
	if !ok || !slices.Contains(biomes, biome) {
		return false
	}
	biomes = slices.DeleteFunc(biomes, func(id registry.Identifier) bool { return id == biome })
	if len(biomes) == 0 {
		delete(starts, structure)
	} else {
		starts[structure] = biomes
	}
	return true
}

// StructureStartsEditor is a view of the structure start index scoped to the
// biome being modified.
type StructureStartsEditor struct {
	ctx *Context
}

func (e *StructureStartsEditor) index() (*StructureStartIndex, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return nil, err
	}
	if e.ctx.starts == nil {
		return nil, nullArgument("structure start index")
	}
	return e.ctx.starts, nil
}

// AddStart resolves key and allows that structure to start in this biome.
func (e *StructureStartsEditor) AddStart(key registry.Identifier) error {
	index, err := e.index()
	if err != nil {
		return err
	}
	structure, err := e.ctx.registries.ConfiguredStructures.Resolve(key)
	if err != nil {
		return err
	}
	return index.AddStart(structure, e.ctx.key)
}

// RemoveStart resolves key and stops that structure starting in this biome.
func (e *StructureStartsEditor) RemoveStart(key registry.Identifier) (bool, error) {
	index, err := e.index()
	if err != nil {
		return false, err
	}
	structure, err := e.ctx.registries.ConfiguredStructures.Resolve(key)
	if err != nil {
		return false, err
	}
	return index.RemoveStart(structure, e.ctx.key)
}

// RemoveAllStarts stops every structure of featureType starting in this biome.
func (e *StructureStartsEditor) RemoveAllStarts(featureType registry.Identifier) (bool, error) {
	index, err := e.index()
	if err != nil {
		return false, err
	}
	return index.RemoveAllStarts(featureType, e.ctx.key)
}
