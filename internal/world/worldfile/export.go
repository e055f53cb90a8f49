package worldfile

import (
	"cmp"
	"fmt"
	"slices"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Export describes regs as a document. Biome contents must reference
// registered objects; wrapped feature children may be inline.
func Export(regs *worldgen.Registries) (*Document, error) {
	if regs == nil {
		return nil, apperrors.New(apperrors.CodeWorldFileInvalid, "registries are required")
	}
	doc, err := export(regs, regs.Builtin)
	if err != nil {
		return nil, err
	}
	if regs.Builtin != nil {
		if doc.Builtin, err = export(regs.Builtin, nil); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func export(regs, builtin *worldgen.Registries) (*Document, error) {
	e := exporter{regs: regs, builtin: builtin}
	doc := &Document{}
	for _, entry := range regs.ConfiguredFeatures.Entries() {
		doc.Features = append(doc.Features, FeatureDoc{
			Key:      entry.Key.String(),
			Type:     entry.Value.Feature.String(),
			Config:   entry.Value.Config,
			Features: e.featureChildren(entry.Value.Features, map[*worldgen.ConfiguredFeature]bool{entry.Value: true}),
		})
	}
	for _, entry := range regs.ConfiguredCarvers.Entries() {
		doc.Carvers = append(doc.Carvers, CarverDoc{
			Key:         entry.Key.String(),
			Type:        entry.Value.Carver.String(),
			Probability: entry.Value.Probability,
			Config:      entry.Value.Config,
		})
	}
	for _, entry := range regs.ConfiguredStructures.Entries() {
		doc.Structures = append(doc.Structures, StructureDoc{
			Key:    entry.Key.String(),
			Type:   entry.Value.Feature.String(),
			Config: entry.Value.Config,
		})
	}
	for _, entry := range regs.SurfaceBuilders.Entries() {
		doc.SurfaceBuilders = append(doc.SurfaceBuilders, SurfaceBuilderDoc{
			Key:        entry.Key.String(),
			Type:       entry.Value.Builder.String(),
			Top:        identifierText(entry.Value.Top),
			Under:      identifierText(entry.Value.Under),
			Underwater: identifierText(entry.Value.Underwater),
		})
	}
	for _, entry := range regs.Biomes.Entries() {
		biome, err := e.biome(entry)
		if err != nil {
			return nil, err
		}
		doc.Biomes = append(doc.Biomes, biome)
	}
	for _, entry := range regs.GeneratorSettings.Entries() {
		settings, err := e.generatorSettings(entry)
		if err != nil {
			return nil, err
		}
		doc.GeneratorSettings = append(doc.GeneratorSettings, settings)
	}
	return doc, nil
}

type exporter struct {
	regs    *worldgen.Registries
	builtin *worldgen.Registries
}

// featureChildren writes registered children by key and the rest inline.
// visiting guards against cycles through inline features.
func (e exporter) featureChildren(children []*worldgen.ConfiguredFeature, visiting map[*worldgen.ConfiguredFeature]bool) []FeatureDoc {
	var out []FeatureDoc
	for _, child := range children {
		if key, ok := e.regs.ConfiguredFeatures.KeyOf(child); ok {
			out = append(out, FeatureDoc{Key: key.String()})
			continue
		}
		if visiting[child] {
			continue
		}
		visiting[child] = true
		out = append(out, FeatureDoc{
			Type:     child.Feature.String(),
			Config:   child.Config,
			Features: e.featureChildren(child.Features, visiting),
		})
		delete(visiting, child)
	}
	return out
}

func (e exporter) biome(entry registry.Entry[worldgen.Biome]) (BiomeDoc, error) {
	path := entry.Key.String()
	b := entry.Value
	generation := b.GenerationSettings()
	doc := BiomeDoc{
		Key:      entry.Key.String(),
		Category: b.Category().String(),
		Depth:    b.Depth(),
		Scale:    b.Scale(),
		Weather:  exportWeather(b.Weather()),
		Effects:  exportEffects(b.Effects()),
		Spawns:   exportSpawns(b.SpawnSettings()),
	}
	if generation.SurfaceBuilder != nil {
		key, ok := e.regs.SurfaceBuilders.KeyOf(generation.SurfaceBuilder)
		if !ok {
			return BiomeDoc{}, unregistered(path, "surface builder")
		}
		doc.SurfaceBuilder = key.String()
	}
	for _, step := range worldgen.CarverSteps() {
		for _, carver := range generation.Carvers[step] {
			key, ok := e.regs.ConfiguredCarvers.KeyOf(carver)
			if !ok {
				return BiomeDoc{}, unregistered(path, "carver")
			}
			if doc.Carvers == nil {
				doc.Carvers = map[string][]string{}
			}
			doc.Carvers[step.String()] = append(doc.Carvers[step.String()], key.String())
		}
	}
	for _, step := range generation.Features {
		keys := []string{}
		for _, feature := range step {
			key, ok := e.regs.ConfiguredFeatures.KeyOf(feature)
			if !ok {
				return BiomeDoc{}, unregistered(path, "feature")
			}
			keys = append(keys, key.String())
		}
		doc.Features = append(doc.Features, keys)
	}
	for _, structure := range generation.Structures {
		key, ok := e.structureKey(structure)
		if !ok {
			return BiomeDoc{}, unregistered(path, "structure")
		}
		doc.Structures = append(doc.Structures, key.String())
	}
	return doc, nil
}

func (e exporter) generatorSettings(entry registry.Entry[worldgen.ChunkGeneratorSettings]) (GeneratorSettingsDoc, error) {
	doc := GeneratorSettingsDoc{Key: entry.Key.String()}
	type start struct {
		featureType registry.Identifier
		key         registry.Identifier
		biomes      []registry.Identifier
	}
	var starts []start
	for featureType, byStructure := range entry.Value.Structures.ConfiguredStructures {
		for structure, biomes := range byStructure {
			key, ok := e.structureKey(structure)
			if !ok {
				return GeneratorSettingsDoc{}, unregistered(entry.Key.String(), "structure start")
			}
			starts = append(starts, start{featureType: featureType, key: key, biomes: biomes})
		}
	}
	slices.SortFunc(starts, func(a, b start) int {
		return cmp.Or(a.featureType.Compare(b.featureType), a.key.Compare(b.key))
	})
	for _, s := range starts {
		if len(s.biomes) == 0 {
			continue
		}
		biomes := make([]string, len(s.biomes))
		for i, biome := range s.biomes {
			biomes[i] = biome.String()
		}
		doc.StructureStarts = append(doc.StructureStarts, StructureStartDoc{Structure: s.key.String(), Biomes: biomes})
	}
	return doc, nil
}

// structureKey finds structure in the dynamic registry or, for normalized
// starts, in the built-in one.
func (e exporter) structureKey(structure *worldgen.ConfiguredStructure) (registry.Identifier, bool) {
	if key, ok := e.regs.ConfiguredStructures.KeyOf(structure); ok {
		return key, true
	}
	if e.builtin != nil {
		return e.builtin.ConfiguredStructures.KeyOf(structure)
	}
	return registry.Identifier{}, false
}

func exportWeather(w worldgen.Weather) WeatherDoc {
	doc := WeatherDoc{
		Precipitation: w.Precipitation.String(),
		Temperature:   w.Temperature,
		Downfall:      w.Downfall,
	}
	if w.TemperatureModifier != worldgen.TemperatureModifierNone {
		doc.TemperatureModifier = w.TemperatureModifier.String()
	}
	return doc
}

func exportEffects(e worldgen.Effects) EffectsDoc {
	doc := EffectsDoc{
		FogColor:      e.FogColor,
		WaterColor:    e.WaterColor,
		WaterFogColor: e.WaterFogColor,
		SkyColor:      e.SkyColor,
	}
	if color, ok := e.FoliageColor.Get(); ok {
		doc.FoliageColor = &color
	}
	if color, ok := e.GrassColor.Get(); ok {
		doc.GrassColor = &color
	}
	if e.GrassColorModifier != worldgen.GrassColorModifierNone {
		doc.GrassColorModifier = e.GrassColorModifier.String()
	}
	if particle, ok := e.Particle.Get(); ok {
		doc.Particle = &ParticleDoc{Particle: particle.Particle.String(), Probability: particle.Probability}
	}
	if sound, ok := e.AmbientSound.Get(); ok {
		doc.AmbientSound = sound.String()
	}
	if mood, ok := e.MoodSound.Get(); ok {
		doc.MoodSound = &MoodSoundDoc{
			Sound:             mood.Sound.String(),
			TickDelay:         mood.TickDelay,
			BlockSearchExtent: mood.BlockSearchExtent,
			Offset:            mood.Offset,
		}
	}
	if additions, ok := e.AdditionsSound.Get(); ok {
		doc.AdditionsSound = &AdditionsSoundDoc{Sound: additions.Sound.String(), Chance: additions.Chance}
	}
	if music, ok := e.Music.Get(); ok {
		doc.Music = &MusicDoc{
			Sound:               music.Sound.String(),
			MinDelay:            music.MinDelay,
			MaxDelay:            music.MaxDelay,
			ReplaceCurrentMusic: music.ReplaceCurrentMusic,
		}
	}
	return doc
}

func exportSpawns(s worldgen.SpawnSettings) SpawnsDoc {
	doc := SpawnsDoc{
		CreatureSpawnProbability: s.CreatureSpawnProbability,
		PlayerSpawnFriendly:      s.PlayerSpawnFriendly,
	}
	for _, group := range worldgen.SpawnGroups() {
		for _, entry := range s.Spawners[group] {
			if doc.Spawners == nil {
				doc.Spawners = map[string][]SpawnDoc{}
			}
			doc.Spawners[group.String()] = append(doc.Spawners[group.String()], SpawnDoc{
				Type:   entry.Type.String(),
				Weight: entry.Weight,
				Min:    entry.MinGroupSize,
				Max:    entry.MaxGroupSize,
			})
		}
	}
	for entityType, cost := range s.SpawnCosts {
		if doc.SpawnCosts == nil {
			doc.SpawnCosts = map[string]SpawnDensityDoc{}
		}
		doc.SpawnCosts[entityType.String()] = SpawnDensityDoc{Mass: cost.Mass, GravityLimit: cost.GravityLimit}
	}
	return doc
}

func identifierText(id registry.Identifier) string {
	if id.IsZero() {
		return ""
	}
	return id.String()
}

func unregistered(path, what string) error {
	return invalid(path, fmt.Errorf("%s is not registered", what))
}
