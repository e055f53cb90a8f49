package biomemod

import (
	"slices"

	"github.com/louisbranch/biomemod/internal/biomemod/modification"
	"github.com/louisbranch/biomemod/internal/biomemod/modifier"
	"github.com/louisbranch/biomemod/internal/biomemod/selection"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Modifications registers modifiers under one id. Every record added
// through it shares the id, so one ChangeOrder call reorders them all.
type Modifications struct {
	registry *modifier.Registry
	id       registry.Identifier
}

// Create returns a builder adding modifiers named id to modifiers.
func Create(modifiers *modifier.Registry, id registry.Identifier) *Modifications {
	return &Modifications{registry: modifiers, id: id}
}

// ID returns the shared modifier id.
func (m *Modifications) ID() registry.Identifier { return m.id }

// Add registers an action of either shape.
func (m *Modifications) Add(phase modifier.Phase, selector selection.Predicate, action modifier.Action) error {
	return m.registry.Add(m.id, phase, selector, action)
}

// AddFeature adds the feature under key at step to every selected biome.
func (m *Modifications) AddFeature(selector selection.Predicate, step worldgen.GenerationStep, key registry.Identifier) error {
	return m.Add(modifier.PhaseAdditions, selector, modifier.ContextOnly(func(c *modification.Context) error {
		return c.GenerationSettings().AddFeature(step, key)
	}))
}

// AddCarver adds the carver under key at step to every selected biome.
func (m *Modifications) AddCarver(selector selection.Predicate, step worldgen.CarverStep, key registry.Identifier) error {
	return m.Add(modifier.PhaseAdditions, selector, modifier.ContextOnly(func(c *modification.Context) error {
		return c.GenerationSettings().AddCarver(step, key)
	}))
}

// AddStructure adds the structure under key to every selected biome and lets
// it start there.
func (m *Modifications) AddStructure(selector selection.Predicate, key registry.Identifier) error {
	return m.Add(modifier.PhaseAdditions, selector, modifier.ContextOnly(func(c *modification.Context) error {
		if err := c.GenerationSettings().AddStructure(key); err != nil {
			return err
		}
		return c.StructureStarts().AddStart(key)
	}))
}

// AddSpawn adds a spawn entry to every selected biome.
func (m *Modifications) AddSpawn(selector selection.Predicate, group worldgen.SpawnGroup, entry worldgen.SpawnEntry) error {
	return m.Add(modifier.PhaseAdditions, selector, modifier.ContextOnly(func(c *modification.Context) error {
		return c.SpawnSettings().AddSpawn(group, entry)
	}))
}

// RemoveSpawns removes every spawn of the given entity types from selected biomes.
func (m *Modifications) RemoveSpawns(selector selection.Predicate, types ...registry.Identifier) error {
	types = slices.Clone(types)
	return m.Add(modifier.PhaseRemovals, selector, modifier.ContextOnly(func(c *modification.Context) error {
		_, err := c.SpawnSettings().RemoveSpawnsOfEntityType(types...)
		return err
	}))
}

// RemoveFeature removes the feature under key at step from selected biomes.
func (m *Modifications) RemoveFeature(selector selection.Predicate, step worldgen.GenerationStep, key registry.Identifier) error {
	return m.Add(modifier.PhaseRemovals, selector, modifier.ContextOnly(func(c *modification.Context) error {
		_, err := c.GenerationSettings().RemoveFeature(step, key)
		return err
	}))
}

// RemoveCarver removes the carver under key at step from selected biomes.
func (m *Modifications) RemoveCarver(selector selection.Predicate, step worldgen.CarverStep, key registry.Identifier) error {
	return m.Add(modifier.PhaseRemovals, selector, modifier.ContextOnly(func(c *modification.Context) error {
		_, err := c.GenerationSettings().RemoveCarver(step, key)
		return err
	}))
}

// RemoveStructure removes the structure under key from selected biomes and
// stops it starting there.
func (m *Modifications) RemoveStructure(selector selection.Predicate, key registry.Identifier) error {
	return m.Add(modifier.PhaseRemovals, selector, modifier.ContextOnly(func(c *modification.Context) error {
		if _, err := c.GenerationSettings().RemoveStructure(key); err != nil {
			return err
		}
		_, err := c.StructureStarts().RemoveStart(key)
		return err
	}))
}
