package modification

import (
	"maps"
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// SpawnSettingsEditor edits a working copy of the biome's spawn settings.
type SpawnSettingsEditor struct {
	ctx *Context

	probability         float32
	playerSpawnFriendly bool
	spawners            map[worldgen.SpawnGroup][]worldgen.SpawnEntry
	costs               map[registry.Identifier]worldgen.SpawnDensity
}

func newSpawnSettingsEditor(ctx *Context, settings worldgen.SpawnSettings) *SpawnSettingsEditor {
	spawners := make(map[worldgen.SpawnGroup][]worldgen.SpawnEntry, len(worldgen.SpawnGroups()))
	for _, group := range worldgen.SpawnGroups() {
		spawners[group] = slices.Clone(settings.Spawners[group])
	}
	costs := maps.Clone(settings.SpawnCosts)
	if costs == nil {
		costs = map[registry.Identifier]worldgen.SpawnDensity{}
	}
	return &SpawnSettingsEditor{
		ctx:                 ctx,
		probability:         settings.CreatureSpawnProbability,
		playerSpawnFriendly: settings.PlayerSpawnFriendly,
		spawners:            spawners,
		costs:               costs,
	}
}

// SetPlayerSpawnFriendly marks whether players may spawn in the biome.
func (e *SpawnSettingsEditor) SetPlayerSpawnFriendly(friendly bool) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	e.playerSpawnFriendly = friendly
	return nil
}

// SetCreatureSpawnProbability sets the chance of creatures spawning at chunk generation.
func (e *SpawnSettingsEditor) SetCreatureSpawnProbability(probability float32) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	e.probability = probability
	return nil
}

// AddSpawn appends entry to group.
func (e *SpawnSettingsEditor) AddSpawn(group worldgen.SpawnGroup, entry worldgen.SpawnEntry) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	if !group.Valid() {
		return invalidEnum("spawn group", group)
	}
	if entry.Type.IsZero() {
		return nullArgument("spawn entry")
	}
	e.spawners[group] = append(e.spawners[group], entry)
	return nil
}

// RemoveSpawns drops every entry match accepts, in every group, and reports
// whether anything was removed.
func (e *SpawnSettingsEditor) RemoveSpawns(match func(worldgen.SpawnGroup, worldgen.SpawnEntry) bool) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	if match == nil {
		return false, nullArgument("spawn predicate")
	}
	removed := false
	for _, group := range worldgen.SpawnGroups() {
		entries := e.spawners[group]
		kept := slices.DeleteFunc(slices.Clone(entries), func(entry worldgen.SpawnEntry) bool {
			return match(group, entry)
		})
		if len(kept) != len(entries) {
			e.spawners[group] = kept
			removed = true
		}
	}
	return removed, nil
}

// RemoveSpawnsOfEntityType drops every entry spawning one of types.
func (e *SpawnSettingsEditor) RemoveSpawnsOfEntityType(types ...registry.Identifier) (bool, error) {
	return e.RemoveSpawns(func(_ worldgen.SpawnGroup, entry worldgen.SpawnEntry) bool {
		return slices.Contains(types, entry.Type)
	})
}

// SetSpawnCost sets the density cost charged when entityType spawns.
func (e *SpawnSettingsEditor) SetSpawnCost(entityType registry.Identifier, mass, gravityLimit float64) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	if entityType.IsZero() {
		return nullArgument("entity type")
	}
	e.costs[entityType] = worldgen.SpawnDensity{Mass: mass, GravityLimit: gravityLimit}
	return nil
}

// ClearSpawnCost removes the density cost for entityType.
func (e *SpawnSettingsEditor) ClearSpawnCost(entityType registry.Identifier) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	delete(e.costs, entityType)
	return nil
}

// Spawners returns a read-only view of the working spawn lists.
func (e *SpawnSettingsEditor) Spawners() map[worldgen.SpawnGroup][]worldgen.SpawnEntry {
	return e.spawners
}

func (e *SpawnSettingsEditor) freeze() worldgen.SpawnSettings {
	return worldgen.NewSpawnSettings(e.probability, e.spawners, e.costs, e.playerSpawnFriendly)
}
