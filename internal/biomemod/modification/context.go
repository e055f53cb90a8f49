// Package modification holds the copy-on-write working state one biome is
// edited through during a modification pass.
//
// A Context is built unfrozen: every collection the editors touch is copied
// out of the biome's frozen settings. Editors mutate those private copies and
// Freeze writes fresh immutable copies back through the host port. Weather
// and effects are plain records and are written through immediately.
package modification

import (
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Context is the mutable view of one biome during a pass.
type Context struct {
	key        registry.Identifier
	biome      worldgen.BiomeAccess
	registries *worldgen.Registries
	starts     *StructureStartIndex
	frozen     bool

	weather    *WeatherEditor
	effects    *EffectsEditor
	generation *GenerationSettingsEditor
	spawns     *SpawnSettingsEditor
}

// NewContext unfreezes biome's settings into a new working context.
// starts may be nil when structure starts are not edited in this pass.
func NewContext(key registry.Identifier, biome worldgen.BiomeAccess, registries *worldgen.Registries, starts *StructureStartIndex) (*Context, error) {
	if biome == nil {
		return nil, nullArgument("biome")
	}
	if registries == nil {
		return nil, nullArgument("registries")
	}
	c := &Context{
		key:        key,
		biome:      biome,
		registries: registries,
		starts:     starts,
	}
	c.weather = &WeatherEditor{ctx: c}
	c.effects = &EffectsEditor{ctx: c}
	c.generation = newGenerationSettingsEditor(c, biome.GenerationSettings())
	c.spawns = newSpawnSettingsEditor(c, biome.SpawnSettings())
	return c, nil
}

// BiomeKey returns the key of the biome being modified.
func (c *Context) BiomeKey() registry.Identifier { return c.key }

// Weather edits precipitation, temperature and downfall.
func (c *Context) Weather() *WeatherEditor { return c.weather }

// Effects edits colors, particles, sounds and music.
func (c *Context) Effects() *EffectsEditor { return c.effects }

// GenerationSettings edits features, carvers, structures and the surface builder.
func (c *Context) GenerationSettings() *GenerationSettingsEditor { return c.generation }

// SpawnSettings edits spawn entries, spawn costs and probabilities.
func (c *Context) SpawnSettings() *SpawnSettingsEditor { return c.spawns }

// StructureStarts edits where structures may start for this biome across
// every generator settings entry.
func (c *Context) StructureStarts() *StructureStartsEditor {
	return &StructureStartsEditor{ctx: c}
}

// Frozen reports whether Freeze has run.
func (c *Context) Frozen() bool { return c.frozen }

// Freeze writes the working copies back to the biome as fresh immutable
// collections. It may run once; later edits fail with ErrFrozen.
func (c *Context) Freeze() error {
	if c.frozen {
		return frozen(c.key)
	}
	c.biome.SetGenerationSettings(c.generation.freeze())
	c.biome.SetSpawnSettings(c.spawns.freeze())
	c.frozen = true
	return nil
}

func (c *Context) checkUnfrozen() error {
	if c.frozen {
		return frozen(c.key)
	}
	return nil
}
