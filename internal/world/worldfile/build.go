package worldfile

import (
	"fmt"
	"slices"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Build creates the registries a document describes. Entries are registered
// in document order, so raw ids match list positions.
func (d *Document) Build() (*worldgen.Registries, error) {
	if d == nil {
		return nil, apperrors.New(apperrors.CodeWorldFileInvalid, "world document is required")
	}
	regs, err := d.build("")
	if err != nil {
		return nil, err
	}
	if d.Builtin != nil {
		if d.Builtin.Builtin != nil {
			return nil, invalid("builtin.builtin", fmt.Errorf("builtin registries cannot nest"))
		}
		if regs.Builtin, err = d.Builtin.build("builtin."); err != nil {
			return nil, err
		}
		if err := d.Builtin.linkStructureStarts(regs.Builtin, "builtin."); err != nil {
			return nil, err
		}
	}
	// Linked after the built-in build so starts normalize to built-in instances.
	if err := d.linkStructureStarts(regs, ""); err != nil {
		return nil, err
	}
	return regs, nil
}

func (d *Document) build(prefix string) (*worldgen.Registries, error) {
	regs := worldgen.NewRegistries()
	b := builder{regs: regs, prefix: prefix}
	steps := []func() error{
		func() error { return b.features(d.Features) },
		func() error { return b.carvers(d.Carvers) },
		func() error { return b.structures(d.Structures) },
		func() error { return b.surfaceBuilders(d.SurfaceBuilders) },
		func() error { return b.biomes(d.Biomes) },
		func() error { return b.generatorSettings(d.GeneratorSettings) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return regs, nil
}

// linkStructureStarts fills generator settings once structures are known.
// Dynamic structures are normalized to their built-in instance.
func (d *Document) linkStructureStarts(regs *worldgen.Registries, prefix string) error {
	for i, doc := range d.GeneratorSettings {
		path := fmt.Sprintf("%sgenerator_settings[%d]", prefix, i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		settings, _ := regs.GeneratorSettings.Get(key)
		for j, start := range doc.StructureStarts {
			startPath := fmt.Sprintf("%s.structure_starts[%d]", path, j)
			structure, err := resolve(regs.ConfiguredStructures, start.Structure, startPath+".structure")
			if err != nil {
				return err
			}
			structure = regs.CanonicalStructure(structure)
			biomes, err := identifiers(start.Biomes, startPath+".biomes")
			if err != nil {
				return err
			}
			byType := settings.Structures.ConfiguredStructures[structure.Feature]
			if byType == nil {
				byType = worldgen.StructureStarts{}
				settings.Structures.ConfiguredStructures[structure.Feature] = byType
			}
			for _, biome := range biomes {
				if !slices.Contains(byType[structure], biome) {
					byType[structure] = append(byType[structure], biome)
				}
			}
		}
	}
	return nil
}

type builder struct {
	regs   *worldgen.Registries
	prefix string
}

func (b builder) path(format string, args ...any) string {
	return b.prefix + fmt.Sprintf(format, args...)
}

func (b builder) features(docs []FeatureDoc) error {
	created := make([]*worldgen.ConfiguredFeature, len(docs))
	for i, doc := range docs {
		path := b.path("features[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		feature, err := newFeature(doc, path)
		if err != nil {
			return err
		}
		if _, err := b.regs.ConfiguredFeatures.Register(key, feature); err != nil {
			return invalid(path, err)
		}
		created[i] = feature
	}
	// Children may reference features declared later in the list.
	for i, doc := range docs {
		children, err := b.featureChildren(doc.Features, b.path("features[%d]", i))
		if err != nil {
			return err
		}
		created[i].Features = children
	}
	return nil
}

func newFeature(doc FeatureDoc, path string) (*worldgen.ConfiguredFeature, error) {
	featureType, err := registry.ParseIdentifier(doc.Type)
	if err != nil {
		return nil, invalid(path+".type", err)
	}
	return &worldgen.ConfiguredFeature{Feature: featureType, Config: doc.Config}, nil
}

func (b builder) featureChildren(docs []FeatureDoc, path string) ([]*worldgen.ConfiguredFeature, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]*worldgen.ConfiguredFeature, 0, len(docs))
	for i, doc := range docs {
		childPath := fmt.Sprintf("%s.features[%d]", path, i)
		if doc.Type == "" {
			child, err := resolve(b.regs.ConfiguredFeatures, doc.Key, childPath+".key")
			if err != nil {
				return nil, err
			}
			out = append(out, child)
			continue
		}
		child, err := newFeature(doc, childPath)
		if err != nil {
			return nil, err
		}
		if child.Features, err = b.featureChildren(doc.Features, childPath); err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func (b builder) carvers(docs []CarverDoc) error {
	for i, doc := range docs {
		path := b.path("carvers[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		carverType, err := registry.ParseIdentifier(doc.Type)
		if err != nil {
			return invalid(path+".type", err)
		}
		carver := &worldgen.ConfiguredCarver{Carver: carverType, Probability: doc.Probability, Config: doc.Config}
		if _, err := b.regs.ConfiguredCarvers.Register(key, carver); err != nil {
			return invalid(path, err)
		}
	}
	return nil
}

func (b builder) structures(docs []StructureDoc) error {
	for i, doc := range docs {
		path := b.path("structures[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		featureType, err := registry.ParseIdentifier(doc.Type)
		if err != nil {
			return invalid(path+".type", err)
		}
		structure := &worldgen.ConfiguredStructure{Feature: featureType, Config: doc.Config}
		if _, err := b.regs.ConfiguredStructures.Register(key, structure); err != nil {
			return invalid(path, err)
		}
	}
	return nil
}

func (b builder) surfaceBuilders(docs []SurfaceBuilderDoc) error {
	for i, doc := range docs {
		path := b.path("surface_builders[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		surface := &worldgen.ConfiguredSurfaceBuilder{}
		fields := []struct {
			name  string
			value string
			dst   *registry.Identifier
		}{
			{"type", doc.Type, &surface.Builder},
			{"top", doc.Top, &surface.Top},
			{"under", doc.Under, &surface.Under},
			{"underwater", doc.Underwater, &surface.Underwater},
		}
		for _, field := range fields {
			if field.value == "" && field.name != "type" {
				continue
			}
			id, err := registry.ParseIdentifier(field.value)
			if err != nil {
				return invalid(path+"."+field.name, err)
			}
			*field.dst = id
		}
		if _, err := b.regs.SurfaceBuilders.Register(key, surface); err != nil {
			return invalid(path, err)
		}
	}
	return nil
}

func (b builder) generatorSettings(docs []GeneratorSettingsDoc) error {
	for i, doc := range docs {
		path := b.path("generator_settings[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		settings := &worldgen.ChunkGeneratorSettings{
			Structures: worldgen.StructuresConfig{
				ConfiguredStructures: map[registry.Identifier]worldgen.StructureStarts{},
			},
		}
		if _, err := b.regs.GeneratorSettings.Register(key, settings); err != nil {
			return invalid(path, err)
		}
	}
	return nil
}

func (b builder) biomes(docs []BiomeDoc) error {
	for i, doc := range docs {
		path := b.path("biomes[%d]", i)
		key, err := registry.ParseIdentifier(doc.Key)
		if err != nil {
			return invalid(path+".key", err)
		}
		biome, err := b.biome(doc, path)
		if err != nil {
			return err
		}
		if _, err := b.regs.Biomes.Register(key, biome); err != nil {
			return invalid(path, err)
		}
	}
	return nil
}

func (b builder) biome(doc BiomeDoc, path string) (*worldgen.Biome, error) {
	category, err := worldgen.ParseCategory(doc.Category)
	if err != nil {
		return nil, invalid(path+".category", err)
	}
	weather, err := buildWeather(doc.Weather, path+".weather")
	if err != nil {
		return nil, err
	}
	effects, err := buildEffects(doc.Effects, path+".effects")
	if err != nil {
		return nil, err
	}
	generation, err := b.generation(doc, path)
	if err != nil {
		return nil, err
	}
	spawns, err := buildSpawns(doc.Spawns, path+".spawns")
	if err != nil {
		return nil, err
	}
	return worldgen.NewBiome(worldgen.BiomeParams{
		Weather:            weather,
		Category:           category,
		Depth:              doc.Depth,
		Scale:              doc.Scale,
		Effects:            effects,
		GenerationSettings: generation,
		SpawnSettings:      spawns,
	}), nil
}

func (b builder) generation(doc BiomeDoc, path string) (worldgen.GenerationSettings, error) {
	var surface *worldgen.ConfiguredSurfaceBuilder
	if doc.SurfaceBuilder != "" {
		var err error
		if surface, err = resolve(b.regs.SurfaceBuilders, doc.SurfaceBuilder, path+".surface_builder"); err != nil {
			return worldgen.GenerationSettings{}, err
		}
	}
	carvers := map[worldgen.CarverStep][]*worldgen.ConfiguredCarver{}
	for name, keys := range doc.Carvers {
		step, err := worldgen.ParseCarverStep(name)
		if err != nil {
			return worldgen.GenerationSettings{}, invalid(path+".carvers", err)
		}
		for i, key := range keys {
			carver, err := resolve(b.regs.ConfiguredCarvers, key, fmt.Sprintf("%s.carvers.%s[%d]", path, name, i))
			if err != nil {
				return worldgen.GenerationSettings{}, err
			}
			carvers[step] = append(carvers[step], carver)
		}
	}
	if len(doc.Features) > len(worldgen.GenerationSteps()) {
		return worldgen.GenerationSettings{}, invalid(path+".features",
			fmt.Errorf("%d feature steps, at most %d allowed", len(doc.Features), len(worldgen.GenerationSteps())))
	}
	features := make([][]*worldgen.ConfiguredFeature, len(doc.Features))
	for step, keys := range doc.Features {
		for i, key := range keys {
			feature, err := resolve(b.regs.ConfiguredFeatures, key, fmt.Sprintf("%s.features[%d][%d]", path, step, i))
			if err != nil {
				return worldgen.GenerationSettings{}, err
			}
			features[step] = append(features[step], feature)
		}
	}
	structures := make([]*worldgen.ConfiguredStructure, 0, len(doc.Structures))
	for i, key := range doc.Structures {
		structure, err := resolve(b.regs.ConfiguredStructures, key, fmt.Sprintf("%s.structures[%d]", path, i))
		if err != nil {
			return worldgen.GenerationSettings{}, err
		}
		structures = append(structures, structure)
	}
	return worldgen.NewGenerationSettings(surface, carvers, features, structures), nil
}

func buildWeather(doc WeatherDoc, path string) (worldgen.Weather, error) {
	precipitation, err := worldgen.ParsePrecipitation(doc.Precipitation)
	if err != nil {
		return worldgen.Weather{}, invalid(path+".precipitation", err)
	}
	modifier := worldgen.TemperatureModifierNone
	if doc.TemperatureModifier != "" {
		if modifier, err = worldgen.ParseTemperatureModifier(doc.TemperatureModifier); err != nil {
			return worldgen.Weather{}, invalid(path+".temperature_modifier", err)
		}
	}
	return worldgen.Weather{
		Precipitation:       precipitation,
		Temperature:         doc.Temperature,
		TemperatureModifier: modifier,
		Downfall:            doc.Downfall,
	}, nil
}

func buildEffects(doc EffectsDoc, path string) (worldgen.Effects, error) {
	effects := worldgen.Effects{
		FogColor:      doc.FogColor,
		WaterColor:    doc.WaterColor,
		WaterFogColor: doc.WaterFogColor,
		SkyColor:      doc.SkyColor,
	}
	if doc.FoliageColor != nil {
		effects.FoliageColor = worldgen.Some(*doc.FoliageColor)
	}
	if doc.GrassColor != nil {
		effects.GrassColor = worldgen.Some(*doc.GrassColor)
	}
	if doc.GrassColorModifier != "" {
		modifier, err := worldgen.ParseGrassColorModifier(doc.GrassColorModifier)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".grass_color_modifier", err)
		}
		effects.GrassColorModifier = modifier
	}
	if doc.Particle != nil {
		particle, err := registry.ParseIdentifier(doc.Particle.Particle)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".particle.particle", err)
		}
		effects.Particle = worldgen.Some(worldgen.ParticleConfig{Particle: particle, Probability: doc.Particle.Probability})
	}
	if doc.AmbientSound != "" {
		sound, err := registry.ParseIdentifier(doc.AmbientSound)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".ambient_sound", err)
		}
		effects.AmbientSound = worldgen.Some(sound)
	}
	if doc.MoodSound != nil {
		sound, err := registry.ParseIdentifier(doc.MoodSound.Sound)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".mood_sound.sound", err)
		}
		effects.MoodSound = worldgen.Some(worldgen.MoodSound{
			Sound:             sound,
			TickDelay:         doc.MoodSound.TickDelay,
			BlockSearchExtent: doc.MoodSound.BlockSearchExtent,
			Offset:            doc.MoodSound.Offset,
		})
	}
	if doc.AdditionsSound != nil {
		sound, err := registry.ParseIdentifier(doc.AdditionsSound.Sound)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".additions_sound.sound", err)
		}
		effects.AdditionsSound = worldgen.Some(worldgen.AdditionsSound{Sound: sound, Chance: doc.AdditionsSound.Chance})
	}
	if doc.Music != nil {
		sound, err := registry.ParseIdentifier(doc.Music.Sound)
		if err != nil {
			return worldgen.Effects{}, invalid(path+".music.sound", err)
		}
		effects.Music = worldgen.Some(worldgen.Music{
			Sound:               sound,
			MinDelay:            doc.Music.MinDelay,
			MaxDelay:            doc.Music.MaxDelay,
			ReplaceCurrentMusic: doc.Music.ReplaceCurrentMusic,
		})
	}
	return effects, nil
}

func buildSpawns(doc SpawnsDoc, path string) (worldgen.SpawnSettings, error) {
	spawners := map[worldgen.SpawnGroup][]worldgen.SpawnEntry{}
	for name, entries := range doc.Spawners {
		group, err := worldgen.ParseSpawnGroup(name)
		if err != nil {
			return worldgen.SpawnSettings{}, invalid(path+".spawners", err)
		}
		for i, entry := range entries {
			entryPath := fmt.Sprintf("%s.spawners.%s[%d]", path, name, i)
			entityType, err := registry.ParseIdentifier(entry.Type)
			if err != nil {
				return worldgen.SpawnSettings{}, invalid(entryPath+".type", err)
			}
			if entry.Min > entry.Max {
				return worldgen.SpawnSettings{}, invalid(entryPath, fmt.Errorf("min %d exceeds max %d", entry.Min, entry.Max))
			}
			spawners[group] = append(spawners[group], worldgen.SpawnEntry{
				Type:         entityType,
				Weight:       entry.Weight,
				MinGroupSize: entry.Min,
				MaxGroupSize: entry.Max,
			})
		}
	}
	costs := map[registry.Identifier]worldgen.SpawnDensity{}
	for name, cost := range doc.SpawnCosts {
		entityType, err := registry.ParseIdentifier(name)
		if err != nil {
			return worldgen.SpawnSettings{}, invalid(path+".spawn_costs", err)
		}
		costs[entityType] = worldgen.SpawnDensity{Mass: cost.Mass, GravityLimit: cost.GravityLimit}
	}
	return worldgen.NewSpawnSettings(doc.CreatureSpawnProbability, spawners, costs, doc.PlayerSpawnFriendly), nil
}

func resolve[T any](reg *registry.Registry[T], value, path string) (*T, error) {
	key, err := registry.ParseIdentifier(value)
	if err != nil {
		return nil, invalid(path, err)
	}
	out, err := reg.Resolve(key)
	if err != nil {
		return nil, invalid(path, err)
	}
	return out, nil
}

func identifiers(values []string, path string) ([]registry.Identifier, error) {
	out := make([]registry.Identifier, 0, len(values))
	for i, value := range values {
		id, err := registry.ParseIdentifier(value)
		if err != nil {
			return nil, invalid(fmt.Sprintf("%s[%d]", path, i), err)
		}
		out = append(out, id)
	}
	return out, nil
}

func invalid(path string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeWorldFileInvalid,
		"world file "+path,
		map[string]string{"Path": path}, cause)
}
