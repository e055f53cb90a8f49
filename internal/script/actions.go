package script

import (
	"fmt"

	"github.com/louisbranch/biomemod/internal/biomemod/modification"
	"github.com/louisbranch/biomemod/internal/biomemod/modifier"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

const (
	kindAddFeature        = "add_feature"
	kindRemoveFeature     = "remove_feature"
	kindAddCarver         = "add_carver"
	kindRemoveCarver      = "remove_carver"
	kindAddStructure      = "add_structure"
	kindRemoveStructure   = "remove_structure"
	kindAddSpawn          = "add_spawn"
	kindRemoveSpawns      = "remove_spawns"
	kindSetSpawnCost      = "set_spawn_cost"
	kindSetSurfaceBuilder = "set_surface_builder"
	kindWeather           = "weather"
	kindEffects           = "effects"
)

type actionBuilder func(arguments) (modifier.ContextOnly, error)

var actionBuilders = map[string]actionBuilder{
	kindAddFeature:        buildAddFeature,
	kindRemoveFeature:     buildRemoveFeature,
	kindAddCarver:         buildAddCarver,
	kindRemoveCarver:      buildRemoveCarver,
	kindAddStructure:      buildAddStructure,
	kindRemoveStructure:   buildRemoveStructure,
	kindAddSpawn:          buildAddSpawn,
	kindRemoveSpawns:      buildRemoveSpawns,
	kindSetSpawnCost:      buildSetSpawnCost,
	kindSetSurfaceBuilder: buildSetSurfaceBuilder,
	kindWeather:           buildWeather,
	kindEffects:           buildEffects,
}

func featureStep(args arguments) (worldgen.GenerationStep, registry.Identifier, error) {
	name, err := args.text("step")
	if err != nil {
		return 0, registry.Identifier{}, err
	}
	step, err := worldgen.ParseGenerationStep(name)
	if err != nil {
		return 0, registry.Identifier{}, err
	}
	key, err := args.identifier("feature")
	return step, key, err
}

func buildAddFeature(args arguments) (modifier.ContextOnly, error) {
	step, key, err := featureStep(args)
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		return c.GenerationSettings().AddFeature(step, key)
	}, nil
}

func buildRemoveFeature(args arguments) (modifier.ContextOnly, error) {
	step, key, err := featureStep(args)
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		_, err := c.GenerationSettings().RemoveFeature(step, key)
		return err
	}, nil
}

func carverStep(args arguments) (worldgen.CarverStep, registry.Identifier, error) {
	name, err := args.text("step")
	if err != nil {
		return 0, registry.Identifier{}, err
	}
	step, err := worldgen.ParseCarverStep(name)
	if err != nil {
		return 0, registry.Identifier{}, err
	}
	key, err := args.identifier("carver")
	return step, key, err
}

func buildAddCarver(args arguments) (modifier.ContextOnly, error) {
	step, key, err := carverStep(args)
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		return c.GenerationSettings().AddCarver(step, key)
	}, nil
}

func buildRemoveCarver(args arguments) (modifier.ContextOnly, error) {
	step, key, err := carverStep(args)
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		_, err := c.GenerationSettings().RemoveCarver(step, key)
		return err
	}, nil
}

// add_structure also lets the structure start in the biome unless
// starts = false.
func buildAddStructure(args arguments) (modifier.ContextOnly, error) {
	key, err := args.identifier("structure")
	if err != nil {
		return nil, err
	}
	starts := true
	if args.has("starts") {
		if starts, err = args.flag("starts"); err != nil {
			return nil, err
		}
	}
	return func(c *modification.Context) error {
		if err := c.GenerationSettings().AddStructure(key); err != nil {
			return err
		}
		if !starts {
			return nil
		}
		return c.StructureStarts().AddStart(key)
	}, nil
}

// remove_structure takes either a structure key or a structure-feature type.
func buildRemoveStructure(args arguments) (modifier.ContextOnly, error) {
	switch {
	case args.has("structure"):
		key, err := args.identifier("structure")
		if err != nil {
			return nil, err
		}
		return func(c *modification.Context) error {
			if _, err := c.GenerationSettings().RemoveStructure(key); err != nil {
				return err
			}
			_, err := c.StructureStarts().RemoveStart(key)
			return err
		}, nil
	case args.has("type"):
		featureType, err := args.identifier("type")
		if err != nil {
			return nil, err
		}
		return func(c *modification.Context) error {
			if _, err := c.GenerationSettings().RemoveStructuresOfType(featureType); err != nil {
				return err
			}
			_, err := c.StructureStarts().RemoveAllStarts(featureType)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("structure or type is required")
	}
}

func buildAddSpawn(args arguments) (modifier.ContextOnly, error) {
	name, err := args.text("group")
	if err != nil {
		return nil, err
	}
	group, err := worldgen.ParseSpawnGroup(name)
	if err != nil {
		return nil, err
	}
	entity, err := args.identifier("entity")
	if err != nil {
		return nil, err
	}
	weight, err := args.integer("weight")
	if err != nil {
		return nil, err
	}
	minSize, err := args.intOr("min", 1)
	if err != nil {
		return nil, err
	}
	maxSize, err := args.intOr("max", minSize)
	if err != nil {
		return nil, err
	}
	if minSize > maxSize {
		return nil, fmt.Errorf("min %d is greater than max %d", minSize, maxSize)
	}
	entry := worldgen.SpawnEntry{Type: entity, Weight: weight, MinGroupSize: minSize, MaxGroupSize: maxSize}
	return func(c *modification.Context) error {
		return c.SpawnSettings().AddSpawn(group, entry)
	}, nil
}

func buildRemoveSpawns(args arguments) (modifier.ContextOnly, error) {
	entities, err := args.identifiers("entities")
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("entities is required")
	}
	return func(c *modification.Context) error {
		_, err := c.SpawnSettings().RemoveSpawnsOfEntityType(entities...)
		return err
	}, nil
}

func buildSetSpawnCost(args arguments) (modifier.ContextOnly, error) {
	entity, err := args.identifier("entity")
	if err != nil {
		return nil, err
	}
	if reset, err := args.flag("clear"); err != nil {
		return nil, err
	} else if reset {
		return func(c *modification.Context) error {
			return c.SpawnSettings().ClearSpawnCost(entity)
		}, nil
	}
	mass, err := args.number("mass")
	if err != nil {
		return nil, err
	}
	limit, err := args.number("gravity_limit")
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		return c.SpawnSettings().SetSpawnCost(entity, mass, limit)
	}, nil
}

func buildSetSurfaceBuilder(args arguments) (modifier.ContextOnly, error) {
	key, err := args.identifier("surface_builder")
	if err != nil {
		return nil, err
	}
	return func(c *modification.Context) error {
		return c.GenerationSettings().SetSurfaceBuilder(key)
	}, nil
}

// edit is one deferred editor call compiled from a weather or effects table.
type edit func(*modification.Context) error

func sequence(edits []edit) modifier.ContextOnly {
	return func(c *modification.Context) error {
		for _, e := range edits {
			if err := e(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func buildWeather(args arguments) (modifier.ContextOnly, error) {
	var edits []edit
	if args.has("precipitation") {
		name, err := args.text("precipitation")
		if err != nil {
			return nil, err
		}
		p, err := worldgen.ParsePrecipitation(name)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Weather().SetPrecipitation(p) })
	}
	if args.has("temperature") {
		t, err := args.number("temperature")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Weather().SetTemperature(float32(t)) })
	}
	if args.has("temperature_modifier") {
		name, err := args.text("temperature_modifier")
		if err != nil {
			return nil, err
		}
		m, err := worldgen.ParseTemperatureModifier(name)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Weather().SetTemperatureModifier(m) })
	}
	if args.has("downfall") {
		d, err := args.number("downfall")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Weather().SetDownfall(float32(d)) })
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("weather sets nothing")
	}
	return sequence(edits), nil
}

var colorSetters = map[string]func(*modification.EffectsEditor, int) error{
	"fog_color":       (*modification.EffectsEditor).SetFogColor,
	"water_color":     (*modification.EffectsEditor).SetWaterColor,
	"water_fog_color": (*modification.EffectsEditor).SetWaterFogColor,
	"sky_color":       (*modification.EffectsEditor).SetSkyColor,
	"foliage_color":   (*modification.EffectsEditor).SetFoliageColorValue,
	"grass_color":     (*modification.EffectsEditor).SetGrassColorValue,
}

// buildEffects accepts colors as integers and the string "none" to clear the
// optional foliage and grass colors.
func buildEffects(args arguments) (modifier.ContextOnly, error) {
	var edits []edit
	for _, key := range []string{"fog_color", "water_color", "water_fog_color", "sky_color", "foliage_color", "grass_color"} {
		if !args.has(key) {
			continue
		}
		if s, ok := args[key].(string); ok && s == "none" {
			switch key {
			case "foliage_color":
				edits = append(edits, func(c *modification.Context) error { return c.Effects().ClearFoliageColor() })
				continue
			case "grass_color":
				edits = append(edits, func(c *modification.Context) error { return c.Effects().ClearGrassColor() })
				continue
			}
		}
		color, err := args.integer(key)
		if err != nil {
			return nil, err
		}
		set := colorSetters[key]
		edits = append(edits, func(c *modification.Context) error { return set(c.Effects(), color) })
	}
	if args.has("grass_color_modifier") {
		name, err := args.text("grass_color_modifier")
		if err != nil {
			return nil, err
		}
		m, err := worldgen.ParseGrassColorModifier(name)
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Effects().SetGrassColorModifier(m) })
	}
	if args.has("ambient_sound") {
		sound, err := args.identifier("ambient_sound")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(c *modification.Context) error { return c.Effects().SetAmbientSoundValue(sound) })
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("effects sets nothing")
	}
	return sequence(edits), nil
}
