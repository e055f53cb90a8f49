// Package worldfile reads and writes registry builds as YAML documents.
//
// Every registry is a list so raw ids follow document order. References
// between entries use identifiers ("minecraft:plains").
package worldfile

// Document is one registry build. Builtin, when present, describes the
// built-in registries dynamic entries may be copies of.
type Document struct {
	Features          []FeatureDoc           `yaml:"features,omitempty" json:"features,omitempty"`
	Carvers           []CarverDoc            `yaml:"carvers,omitempty" json:"carvers,omitempty"`
	Structures        []StructureDoc         `yaml:"structures,omitempty" json:"structures,omitempty"`
	SurfaceBuilders   []SurfaceBuilderDoc    `yaml:"surface_builders,omitempty" json:"surface_builders,omitempty"`
	GeneratorSettings []GeneratorSettingsDoc `yaml:"generator_settings,omitempty" json:"generator_settings,omitempty"`
	Biomes            []BiomeDoc             `yaml:"biomes,omitempty" json:"biomes,omitempty"`
	Builtin           *Document              `yaml:"builtin,omitempty" json:"builtin,omitempty"`
}

// FeatureDoc is a configured feature. Inside Features, an entry with only a
// key references a registered feature; an entry with a type is inline.
type FeatureDoc struct {
	Key      string         `yaml:"key,omitempty" json:"key,omitempty"`
	Type     string         `yaml:"type,omitempty" json:"type,omitempty"`
	Config   map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
	Features []FeatureDoc   `yaml:"features,omitempty" json:"features,omitempty"`
}

type CarverDoc struct {
	Key         string         `yaml:"key" json:"key"`
	Type        string         `yaml:"type" json:"type"`
	Probability float32        `yaml:"probability" json:"probability"`
	Config      map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

type StructureDoc struct {
	Key    string         `yaml:"key" json:"key"`
	Type   string         `yaml:"type" json:"type"`
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

type SurfaceBuilderDoc struct {
	Key        string `yaml:"key" json:"key"`
	Type       string `yaml:"type" json:"type"`
	Top        string `yaml:"top,omitempty" json:"top,omitempty"`
	Under      string `yaml:"under,omitempty" json:"under,omitempty"`
	Underwater string `yaml:"underwater,omitempty" json:"underwater,omitempty"`
}

type GeneratorSettingsDoc struct {
	Key             string              `yaml:"key" json:"key"`
	StructureStarts []StructureStartDoc `yaml:"structure_starts,omitempty" json:"structure_starts,omitempty"`
}

// StructureStartDoc lists the biomes one structure may start in.
type StructureStartDoc struct {
	Structure string   `yaml:"structure" json:"structure"`
	Biomes    []string `yaml:"biomes" json:"biomes"`
}

type BiomeDoc struct {
	Key            string              `yaml:"key" json:"key"`
	Category       string              `yaml:"category" json:"category"`
	Depth          float32             `yaml:"depth" json:"depth"`
	Scale          float32             `yaml:"scale" json:"scale"`
	Weather        WeatherDoc          `yaml:"weather" json:"weather"`
	Effects        EffectsDoc          `yaml:"effects" json:"effects"`
	SurfaceBuilder string              `yaml:"surface_builder,omitempty" json:"surface_builder,omitempty"`
	Carvers        map[string][]string `yaml:"carvers,omitempty" json:"carvers,omitempty"`
	Features       [][]string          `yaml:"features,omitempty" json:"features,omitempty"`
	Structures     []string            `yaml:"structures,omitempty" json:"structures,omitempty"`
	Spawns         SpawnsDoc           `yaml:"spawns" json:"spawns"`
}

type WeatherDoc struct {
	Precipitation       string  `yaml:"precipitation" json:"precipitation"`
	Temperature         float32 `yaml:"temperature" json:"temperature"`
	TemperatureModifier string  `yaml:"temperature_modifier,omitempty" json:"temperature_modifier,omitempty"`
	Downfall            float32 `yaml:"downfall" json:"downfall"`
}

type EffectsDoc struct {
	FogColor           int                `yaml:"fog_color" json:"fog_color"`
	WaterColor         int                `yaml:"water_color" json:"water_color"`
	WaterFogColor      int                `yaml:"water_fog_color" json:"water_fog_color"`
	SkyColor           int                `yaml:"sky_color" json:"sky_color"`
	FoliageColor       *int               `yaml:"foliage_color,omitempty" json:"foliage_color,omitempty"`
	GrassColor         *int               `yaml:"grass_color,omitempty" json:"grass_color,omitempty"`
	GrassColorModifier string             `yaml:"grass_color_modifier,omitempty" json:"grass_color_modifier,omitempty"`
	Particle           *ParticleDoc       `yaml:"particle,omitempty" json:"particle,omitempty"`
	AmbientSound       string             `yaml:"ambient_sound,omitempty" json:"ambient_sound,omitempty"`
	MoodSound          *MoodSoundDoc      `yaml:"mood_sound,omitempty" json:"mood_sound,omitempty"`
	AdditionsSound     *AdditionsSoundDoc `yaml:"additions_sound,omitempty" json:"additions_sound,omitempty"`
	Music              *MusicDoc          `yaml:"music,omitempty" json:"music,omitempty"`
}

type ParticleDoc struct {
	Particle    string  `yaml:"particle" json:"particle"`
	Probability float32 `yaml:"probability" json:"probability"`
}

type MoodSoundDoc struct {
	Sound             string  `yaml:"sound" json:"sound"`
	TickDelay         int     `yaml:"tick_delay" json:"tick_delay"`
	BlockSearchExtent int     `yaml:"block_search_extent" json:"block_search_extent"`
	Offset            float64 `yaml:"offset" json:"offset"`
}

type AdditionsSoundDoc struct {
	Sound  string  `yaml:"sound" json:"sound"`
	Chance float64 `yaml:"chance" json:"chance"`
}

type MusicDoc struct {
	Sound               string `yaml:"sound" json:"sound"`
	MinDelay            int    `yaml:"min_delay" json:"min_delay"`
	MaxDelay            int    `yaml:"max_delay" json:"max_delay"`
	ReplaceCurrentMusic bool   `yaml:"replace_current_music" json:"replace_current_music"`
}

type SpawnsDoc struct {
	CreatureSpawnProbability float32                    `yaml:"creature_spawn_probability" json:"creature_spawn_probability"`
	PlayerSpawnFriendly      bool                       `yaml:"player_spawn_friendly,omitempty" json:"player_spawn_friendly,omitempty"`
	Spawners                 map[string][]SpawnDoc      `yaml:"spawners,omitempty" json:"spawners,omitempty"`
	SpawnCosts               map[string]SpawnDensityDoc `yaml:"spawn_costs,omitempty" json:"spawn_costs,omitempty"`
}

type SpawnDoc struct {
	Type   string `yaml:"type" json:"type"`
	Weight int    `yaml:"weight" json:"weight"`
	Min    int    `yaml:"min" json:"min"`
	Max    int    `yaml:"max" json:"max"`
}

type SpawnDensityDoc struct {
	Mass         float64 `yaml:"mass" json:"mass"`
	GravityLimit float64 `yaml:"gravity_limit" json:"gravity_limit"`
}
