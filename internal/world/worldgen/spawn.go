package worldgen

import (
	"maps"
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
)

// SpawnEntry is one weighted mob spawn.
type SpawnEntry struct {
	Type         registry.Identifier
	Weight       int
	MinGroupSize int
	MaxGroupSize int
}

// SpawnDensity limits spawning of one entity type by local mass.
type SpawnDensity struct {
	Mass         float64
	GravityLimit float64
}

// SpawnSettings lists what may spawn in a biome.
//
// In frozen form Spawners has an entry for every spawn group.
type SpawnSettings struct {
	CreatureSpawnProbability float32
	Spawners                 map[SpawnGroup][]SpawnEntry
	SpawnCosts               map[registry.Identifier]SpawnDensity
	PlayerSpawnFriendly      bool
}

// NewSpawnSettings builds frozen settings with every group present.
func NewSpawnSettings(probability float32, spawners map[SpawnGroup][]SpawnEntry, costs map[registry.Identifier]SpawnDensity, playerSpawnFriendly bool) SpawnSettings {
	dense := make(map[SpawnGroup][]SpawnEntry, len(SpawnGroups()))
	for _, group := range SpawnGroups() {
		dense[group] = slices.Clone(spawners[group])
	}
	clonedCosts := maps.Clone(costs)
	if clonedCosts == nil {
		clonedCosts = map[registry.Identifier]SpawnDensity{}
	}
	return SpawnSettings{
		CreatureSpawnProbability: probability,
		Spawners:                 dense,
		SpawnCosts:               clonedCosts,
		PlayerSpawnFriendly:      playerSpawnFriendly,
	}
}

// Clone copies every collection.
func (s SpawnSettings) Clone() SpawnSettings {
	out := s
	if s.Spawners != nil {
		out.Spawners = make(map[SpawnGroup][]SpawnEntry, len(s.Spawners))
		for group, entries := range s.Spawners {
			out.Spawners[group] = slices.Clone(entries)
		}
	}
	out.SpawnCosts = maps.Clone(s.SpawnCosts)
	return out
}
