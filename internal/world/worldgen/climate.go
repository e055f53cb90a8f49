package worldgen

import "github.com/louisbranch/biomemod/internal/world/registry"

// Weather holds the climate parameters of a biome.
type Weather struct {
	Precipitation       Precipitation
	Temperature         float32
	TemperatureModifier TemperatureModifier
	Downfall            float32
}

// Optional is a value that may be absent. The zero Optional is empty.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns an empty optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is set.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value or fallback when empty.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// ParticleConfig spawns ambient particles.
type ParticleConfig struct {
	Particle    registry.Identifier
	Probability float32
}

// MoodSound plays in dark enclosed spaces.
type MoodSound struct {
	Sound             registry.Identifier
	TickDelay         int
	BlockSearchExtent int
	Offset            float64
}

// AdditionsSound plays randomly on top of ambient sound.
type AdditionsSound struct {
	Sound  registry.Identifier
	Chance float64
}

// Music is the background track selection.
type Music struct {
	Sound               registry.Identifier
	MinDelay            int
	MaxDelay            int
	ReplaceCurrentMusic bool
}

// Effects holds the visual and audio presentation of a biome.
type Effects struct {
	FogColor           int
	WaterColor         int
	WaterFogColor      int
	SkyColor           int
	FoliageColor       Optional[int]
	GrassColor         Optional[int]
	GrassColorModifier GrassColorModifier
	Particle           Optional[ParticleConfig]
	AmbientSound       Optional[registry.Identifier]
	MoodSound          Optional[MoodSound]
	AdditionsSound     Optional[AdditionsSound]
	Music              Optional[Music]
}
