package worldgen

// BiomeAccess is the host port the modification pipeline reads and writes
// biome state through. Getters return frozen records; setters replace them
// wholesale.
type BiomeAccess interface {
	Weather() Weather
	SetWeather(Weather)
	Effects() Effects
	SetEffects(Effects)
	GenerationSettings() GenerationSettings
	SetGenerationSettings(GenerationSettings)
	SpawnSettings() SpawnSettings
	SetSpawnSettings(SpawnSettings)
}

// Biome is one registered biome.
type Biome struct {
	weather    Weather
	category   Category
	depth      float32
	scale      float32
	effects    Effects
	generation GenerationSettings
	spawns     SpawnSettings
}

// BiomeParams describes a biome at construction.
type BiomeParams struct {
	Weather            Weather
	Category           Category
	Depth              float32
	Scale              float32
	Effects            Effects
	GenerationSettings GenerationSettings
	SpawnSettings      SpawnSettings
}

// NewBiome builds a biome from params.
func NewBiome(p BiomeParams) *Biome {
	return &Biome{
		weather:    p.Weather,
		category:   p.Category,
		depth:      p.Depth,
		scale:      p.Scale,
		effects:    p.Effects,
		generation: p.GenerationSettings,
		spawns:     p.SpawnSettings,
	}
}

// Accessors for the frozen settings groups.
func (b *Biome) Weather() Weather                           { return b.weather }
func (b *Biome) SetWeather(w Weather)                       { b.weather = w }
func (b *Biome) Category() Category                         { return b.category }
func (b *Biome) Depth() float32                             { return b.depth }
func (b *Biome) Scale() float32                             { return b.scale }
func (b *Biome) Effects() Effects                           { return b.effects }
func (b *Biome) SetEffects(e Effects)                       { b.effects = e }
func (b *Biome) GenerationSettings() GenerationSettings     { return b.generation }
func (b *Biome) SetGenerationSettings(g GenerationSettings) { b.generation = g }
func (b *Biome) SpawnSettings() SpawnSettings               { return b.spawns }
func (b *Biome) SetSpawnSettings(s SpawnSettings)           { b.spawns = s }

// Params returns the biome's current state as construction params.
func (b *Biome) Params() BiomeParams {
	return BiomeParams{
		Weather:            b.weather,
		Category:           b.category,
		Depth:              b.depth,
		Scale:              b.scale,
		Effects:            b.effects,
		GenerationSettings: b.generation,
		SpawnSettings:      b.spawns,
	}
}

// Snapshot returns a detached copy whose collections do not alias b's.
// Configured objects remain shared.
func (b *Biome) Snapshot() *Biome {
	out := *b
	out.generation = b.generation.Clone()
	out.spawns = b.spawns.Clone()
	return &out
}

var _ BiomeAccess = (*Biome)(nil)
