package worldgen

import (
	"fmt"
	"strings"
)

// GenerationStep orders feature placement within a chunk.
type GenerationStep int

const (
	StepRawGeneration GenerationStep = iota
	StepLakes
	StepLocalModifications
	StepUndergroundStructures
	StepSurfaceStructures
	StepStrongholds
	StepUndergroundOres
	StepUndergroundDecoration
	StepVegetalDecoration
	StepTopLayerModification
	generationStepCount
)

var generationStepNames = [...]string{
	"raw_generation",
	"lakes",
	"local_modifications",
	"underground_structures",
	"surface_structures",
	"strongholds",
	"underground_ores",
	"underground_decoration",
	"vegetal_decoration",
	"top_layer_modification",
}

// GenerationSteps returns every feature step in placement order.
func GenerationSteps() []GenerationStep {
	steps := make([]GenerationStep, generationStepCount)
	for i := range steps {
		steps[i] = GenerationStep(i)
	}
	return steps
}

// Valid reports whether s is a known generation step.
func (s GenerationStep) Valid() bool { return s >= 0 && s < generationStepCount }

// String returns the generation step name.
func (s GenerationStep) String() string { return enumName(generationStepNames[:], int(s)) }

// ParseGenerationStep parses a step name such as "vegetal_decoration".
func ParseGenerationStep(value string) (GenerationStep, error) {
	i, err := parseEnum("generation step", generationStepNames[:], value)
	return GenerationStep(i), err
}

// CarverStep selects the carving pass.
type CarverStep int

const (
	CarverAir CarverStep = iota
	CarverLiquid
	carverStepCount
)

var carverStepNames = [...]string{"air", "liquid"}

// CarverSteps returns every carver step.
func CarverSteps() []CarverStep {
	return []CarverStep{CarverAir, CarverLiquid}
}

// Valid reports whether s is a known carver step.
func (s CarverStep) Valid() bool { return s >= 0 && s < carverStepCount }

// String returns the carver step name.
func (s CarverStep) String() string { return enumName(carverStepNames[:], int(s)) }

// ParseCarverStep parses "air" or "liquid".
func ParseCarverStep(value string) (CarverStep, error) {
	i, err := parseEnum("carver step", carverStepNames[:], value)
	return CarverStep(i), err
}

// SpawnGroup buckets mob spawns by category.
type SpawnGroup int

const (
	GroupMonster SpawnGroup = iota
	GroupCreature
	GroupAmbient
	GroupUndergroundWaterCreature
	GroupWaterCreature
	GroupWaterAmbient
	GroupMisc
	spawnGroupCount
)

var spawnGroupNames = [...]string{
	"monster",
	"creature",
	"ambient",
	"underground_water_creature",
	"water_creature",
	"water_ambient",
	"misc",
}

// SpawnGroups returns every spawn group.
func SpawnGroups() []SpawnGroup {
	groups := make([]SpawnGroup, spawnGroupCount)
	for i := range groups {
		groups[i] = SpawnGroup(i)
	}
	return groups
}

// Valid reports whether g is a known spawn group.
func (g SpawnGroup) Valid() bool { return g >= 0 && g < spawnGroupCount }

// String returns the spawn group name.
func (g SpawnGroup) String() string { return enumName(spawnGroupNames[:], int(g)) }

// ParseSpawnGroup parses a group name such as "creature".
func ParseSpawnGroup(value string) (SpawnGroup, error) {
	i, err := parseEnum("spawn group", spawnGroupNames[:], value)
	return SpawnGroup(i), err
}

// Precipitation is the kind of weather a biome receives.
type Precipitation int

const (
	PrecipitationNone Precipitation = iota
	PrecipitationRain
	PrecipitationSnow
	precipitationCount
)

var precipitationNames = [...]string{"none", "rain", "snow"}

// Valid reports whether p is a known precipitation.
func (p Precipitation) Valid() bool { return p >= 0 && p < precipitationCount }

// String returns the precipitation name.
func (p Precipitation) String() string { return enumName(precipitationNames[:], int(p)) }

// ParsePrecipitation parses "none", "rain" or "snow".
func ParsePrecipitation(value string) (Precipitation, error) {
	i, err := parseEnum("precipitation", precipitationNames[:], value)
	return Precipitation(i), err
}

// TemperatureModifier adjusts temperature by position.
type TemperatureModifier int

const (
	TemperatureModifierNone TemperatureModifier = iota
	TemperatureModifierFrozen
	temperatureModifierCount
)

var temperatureModifierNames = [...]string{"none", "frozen"}

// Valid reports whether m is a known temperature modifier.
func (m TemperatureModifier) Valid() bool { return m >= 0 && m < temperatureModifierCount }

// String returns the temperature modifier name.
func (m TemperatureModifier) String() string { return enumName(temperatureModifierNames[:], int(m)) }

// ParseTemperatureModifier parses "none" or "frozen".
func ParseTemperatureModifier(value string) (TemperatureModifier, error) {
	i, err := parseEnum("temperature modifier", temperatureModifierNames[:], value)
	return TemperatureModifier(i), err
}

// GrassColorModifier tints grass by position.
type GrassColorModifier int

const (
	GrassColorModifierNone GrassColorModifier = iota
	GrassColorModifierDarkForest
	GrassColorModifierSwamp
	grassColorModifierCount
)

var grassColorModifierNames = [...]string{"none", "dark_forest", "swamp"}

// Valid reports whether m is a known grass color modifier.
func (m GrassColorModifier) Valid() bool { return m >= 0 && m < grassColorModifierCount }

// String returns the grass color modifier name.
func (m GrassColorModifier) String() string { return enumName(grassColorModifierNames[:], int(m)) }

// ParseGrassColorModifier parses "none", "dark_forest" or "swamp".
func ParseGrassColorModifier(value string) (GrassColorModifier, error) {
	i, err := parseEnum("grass color modifier", grassColorModifierNames[:], value)
	return GrassColorModifier(i), err
}

// Category is the coarse biome classification.
type Category int

const (
	CategoryNone Category = iota
	CategoryTaiga
	CategoryExtremeHills
	CategoryJungle
	CategoryMesa
	CategoryPlains
	CategorySavanna
	CategoryIcy
	CategoryTheEnd
	CategoryBeach
	CategoryForest
	CategoryOcean
	CategoryDesert
	CategoryRiver
	CategorySwamp
	CategoryMushroom
	CategoryNether
	CategoryUnderground
	categoryCount
)

var categoryNames = [...]string{
	"none",
	"taiga",
	"extreme_hills",
	"jungle",
	"mesa",
	"plains",
	"savanna",
	"icy",
	"the_end",
	"beach",
	"forest",
	"ocean",
	"desert",
	"river",
	"swamp",
	"mushroom",
	"nether",
	"underground",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return c >= 0 && c < categoryCount }

// String returns the category name.
func (c Category) String() string { return enumName(categoryNames[:], int(c)) }

// ParseCategory parses a category name such as "jungle".
func ParseCategory(value string) (Category, error) {
	i, err := parseEnum("category", categoryNames[:], value)
	return Category(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return names[i]
}

func parseEnum(kind string, names []string, value string) (int, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range names {
		if name == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, value)
}
