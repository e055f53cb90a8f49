package modification

import (
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// EffectsEditor writes visual and audio fields directly to the biome.
//
// Optional setters take a pointer to the optional: nil is rejected with
// ErrNullArgument, an empty optional clears the field.
type EffectsEditor struct {
	ctx *Context
}

func (e *EffectsEditor) update(apply func(*worldgen.Effects)) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	effects := e.ctx.biome.Effects()
	apply(&effects)
	e.ctx.biome.SetEffects(effects)
	return nil
}

// SetFogColor sets the fog tint.
func (e *EffectsEditor) SetFogColor(color int) error {
	return e.update(func(fx *worldgen.Effects) { fx.FogColor = color })
}

// SetWaterColor sets the water tint.
func (e *EffectsEditor) SetWaterColor(color int) error {
	return e.update(func(fx *worldgen.Effects) { fx.WaterColor = color })
}

// SetWaterFogColor sets the underwater fog tint.
func (e *EffectsEditor) SetWaterFogColor(color int) error {
	return e.update(func(fx *worldgen.Effects) { fx.WaterFogColor = color })
}

// SetSkyColor sets the sky tint.
func (e *EffectsEditor) SetSkyColor(color int) error {
	return e.update(func(fx *worldgen.Effects) { fx.SkyColor = color })
}

// SetFoliageColor overrides or clears the foliage tint.
func (e *EffectsEditor) SetFoliageColor(color *worldgen.Optional[int]) error {
	if color == nil {
		return nullArgument("foliage color")
	}
	return e.update(func(fx *worldgen.Effects) { fx.FoliageColor = *color })
}

// SetGrassColor overrides or clears the grass tint.
func (e *EffectsEditor) SetGrassColor(color *worldgen.Optional[int]) error {
	if color == nil {
		return nullArgument("grass color")
	}
	return e.update(func(fx *worldgen.Effects) { fx.GrassColor = *color })
}

// SetGrassColorModifier sets the positional grass tint.
func (e *EffectsEditor) SetGrassColorModifier(m worldgen.GrassColorModifier) error {
	if !m.Valid() {
		return invalidEnum("grass color modifier", m)
	}
	return e.update(func(fx *worldgen.Effects) { fx.GrassColorModifier = m })
}

// SetParticleConfig sets ambient particles. A present config must name a particle.
func (e *EffectsEditor) SetParticleConfig(particle *worldgen.Optional[worldgen.ParticleConfig]) error {
	if particle == nil {
		return nullArgument("particle config")
	}
	if value, ok := particle.Get(); ok && value.Particle.IsZero() {
		return nullArgument("particle")
	}
	return e.update(func(fx *worldgen.Effects) { fx.Particle = *particle })
}

// SetAmbientSound sets or clears the looping ambient sound.
func (e *EffectsEditor) SetAmbientSound(sound *worldgen.Optional[registry.Identifier]) error {
	if sound == nil {
		return nullArgument("ambient sound")
	}
	if value, ok := sound.Get(); ok && value.IsZero() {
		return nullArgument("ambient sound")
	}
	return e.update(func(fx *worldgen.Effects) { fx.AmbientSound = *sound })
}

// SetMoodSound sets or clears the cave mood sound. A present value must name a sound.
func (e *EffectsEditor) SetMoodSound(sound *worldgen.Optional[worldgen.MoodSound]) error {
	if sound == nil {
		return nullArgument("mood sound")
	}
	if value, ok := sound.Get(); ok && value.Sound.IsZero() {
		return nullArgument("mood sound")
	}
	return e.update(func(fx *worldgen.Effects) { fx.MoodSound = *sound })
}

// SetAdditionsSound sets or clears the random additions sound.
func (e *EffectsEditor) SetAdditionsSound(sound *worldgen.Optional[worldgen.AdditionsSound]) error {
	if sound == nil {
		return nullArgument("additions sound")
	}
	if value, ok := sound.Get(); ok && value.Sound.IsZero() {
		return nullArgument("additions sound")
	}
	return e.update(func(fx *worldgen.Effects) { fx.AdditionsSound = *sound })
}

// SetMusic sets or clears the biome music.
func (e *EffectsEditor) SetMusic(music *worldgen.Optional[worldgen.Music]) error {
	if music == nil {
		return nullArgument("music")
	}
	if value, ok := music.Get(); ok && value.Sound.IsZero() {
		return nullArgument("music")
	}
	return e.update(func(fx *worldgen.Effects) { fx.Music = *music })
}

// Convenience wrappers over the optional setters.

// SetFoliageColorValue overrides the foliage tint.
func (e *EffectsEditor) SetFoliageColorValue(color int) error {
	return e.SetFoliageColor(ptr(worldgen.Some(color)))
}

// ClearFoliageColor falls back to the climate foliage tint.
func (e *EffectsEditor) ClearFoliageColor() error {
	return e.SetFoliageColor(ptr(worldgen.None[int]()))
}

// SetGrassColorValue overrides the grass tint.
func (e *EffectsEditor) SetGrassColorValue(color int) error {
	return e.SetGrassColor(ptr(worldgen.Some(color)))
}

// ClearGrassColor falls back to the climate grass tint.
func (e *EffectsEditor) ClearGrassColor() error {
	return e.SetGrassColor(ptr(worldgen.None[int]()))
}

// SetParticle sets ambient particles.
func (e *EffectsEditor) SetParticle(particle worldgen.ParticleConfig) error {
	return e.SetParticleConfig(ptr(worldgen.Some(particle)))
}

// ClearParticleConfig removes ambient particles.
func (e *EffectsEditor) ClearParticleConfig() error {
	return e.SetParticleConfig(ptr(worldgen.None[worldgen.ParticleConfig]()))
}

// SetAmbientSoundValue sets the ambient sound.
func (e *EffectsEditor) SetAmbientSoundValue(sound registry.Identifier) error {
	return e.SetAmbientSound(ptr(worldgen.Some(sound)))
}

// ClearAmbientSound removes the ambient sound.
func (e *EffectsEditor) ClearAmbientSound() error {
	return e.SetAmbientSound(ptr(worldgen.None[registry.Identifier]()))
}

// SetMoodSoundValue sets the mood sound.
func (e *EffectsEditor) SetMoodSoundValue(sound worldgen.MoodSound) error {
	return e.SetMoodSound(ptr(worldgen.Some(sound)))
}

// ClearMoodSound removes the mood sound.
func (e *EffectsEditor) ClearMoodSound() error {
	return e.SetMoodSound(ptr(worldgen.None[worldgen.MoodSound]()))
}

// SetAdditionsSoundValue sets the additions sound.
func (e *EffectsEditor) SetAdditionsSoundValue(sound worldgen.AdditionsSound) error {
	return e.SetAdditionsSound(ptr(worldgen.Some(sound)))
}

// ClearAdditionsSound removes the additions sound.
func (e *EffectsEditor) ClearAdditionsSound() error {
	return e.SetAdditionsSound(ptr(worldgen.None[worldgen.AdditionsSound]()))
}

// SetMusicValue sets the biome music.
func (e *EffectsEditor) SetMusicValue(music worldgen.Music) error {
	return e.SetMusic(ptr(worldgen.Some(music)))
}

// ClearMusic removes the biome music.
func (e *EffectsEditor) ClearMusic() error {
	return e.SetMusic(ptr(worldgen.None[worldgen.Music]()))
}

func ptr[T any](v T) *T { return &v }
