package modification

import (
	"maps"
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// GenerationSettingsEditor edits a working copy of the biome's generation
// settings.
//
// Features are step-indexed and dense: adding at step n grows the table with
// empty steps up to n. The flower cache is rebuilt after every feature change.
type GenerationSettingsEditor struct {
	ctx *Context

	surface    *worldgen.ConfiguredSurfaceBuilder
	carvers    map[worldgen.CarverStep][]*worldgen.ConfiguredCarver
	features   [][]*worldgen.ConfiguredFeature
	flowers    []*worldgen.ConfiguredFeature
	structures []*worldgen.ConfiguredStructure
}

func newGenerationSettingsEditor(ctx *Context, settings worldgen.GenerationSettings) *GenerationSettingsEditor {
	carvers := make(map[worldgen.CarverStep][]*worldgen.ConfiguredCarver, len(worldgen.CarverSteps()))
	for _, step := range worldgen.CarverSteps() {
		carvers[step] = slices.Clone(settings.Carvers[step])
	}
	features := make([][]*worldgen.ConfiguredFeature, len(settings.Features))
	for i, step := range settings.Features {
		features[i] = slices.Clone(step)
	}
	return &GenerationSettingsEditor{
		ctx:        ctx,
		surface:    settings.SurfaceBuilder,
		carvers:    carvers,
		features:   features,
		flowers:    slices.Clone(settings.FlowerFeatures),
		structures: slices.Clone(settings.Structures),
	}
}

// AddFeature resolves key and appends the feature at step.
func (e *GenerationSettingsEditor) AddFeature(step worldgen.GenerationStep, key registry.Identifier) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	feature, err := e.ctx.registries.ConfiguredFeatures.Resolve(key)
	if err != nil {
		return err
	}
	return e.AddBuiltInFeature(step, feature)
}

// AddBuiltInFeature appends an already resolved feature at step.
func (e *GenerationSettingsEditor) AddBuiltInFeature(step worldgen.GenerationStep, feature *worldgen.ConfiguredFeature) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	if !step.Valid() {
		return invalidEnum("generation step", step)
	}
	if feature == nil {
		return nullArgument("feature")
	}
	index := int(step)
	for len(e.features) <= index {
		e.features = append(e.features, []*worldgen.ConfiguredFeature{})
	}
	e.features[index] = append(e.features[index], feature)
	e.rebuildFlowerFeatures()
	return nil
}

// RemoveFeature resolves key and removes every occurrence of that feature at
// step. It reports whether anything was removed.
func (e *GenerationSettingsEditor) RemoveFeature(step worldgen.GenerationStep, key registry.Identifier) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	feature, err := e.ctx.registries.ConfiguredFeatures.Resolve(key)
	if err != nil {
		return false, err
	}
	return e.RemoveBuiltInFeature(step, feature)
}

// RemoveBuiltInFeature removes every occurrence of feature at step.
func (e *GenerationSettingsEditor) RemoveBuiltInFeature(step worldgen.GenerationStep, feature *worldgen.ConfiguredFeature) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	if !step.Valid() {
		return false, invalidEnum("generation step", step)
	}
	if feature == nil {
		return false, nullArgument("feature")
	}
	index := int(step)
	if index >= len(e.features) {
		return false, nil
	}
	kept, removed := removeIdentical(e.features[index], feature)
	if !removed {
		return false, nil
	}
	e.features[index] = kept
	e.rebuildFlowerFeatures()
	return true, nil
}

// AddCarver resolves key and appends the carver at step.
func (e *GenerationSettingsEditor) AddCarver(step worldgen.CarverStep, key registry.Identifier) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	if !step.Valid() {
		return invalidEnum("carver step", step)
	}
	carver, err := e.ctx.registries.ConfiguredCarvers.Resolve(key)
	if err != nil {
		return err
	}
	e.carvers[step] = append(e.carvers[step], carver)
	return nil
}

// RemoveCarver resolves key and removes that carver from step.
func (e *GenerationSettingsEditor) RemoveCarver(step worldgen.CarverStep, key registry.Identifier) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	if !step.Valid() {
		return false, invalidEnum("carver step", step)
	}
	carver, err := e.ctx.registries.ConfiguredCarvers.Resolve(key)
	if err != nil {
		return false, err
	}
	kept, removed := removeIdentical(e.carvers[step], carver)
	if removed {
		e.carvers[step] = kept
	}
	return removed, nil
}

// SetSurfaceBuilder resolves key and replaces the surface builder.
func (e *GenerationSettingsEditor) SetSurfaceBuilder(key registry.Identifier) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	surface, err := e.ctx.registries.SurfaceBuilders.Resolve(key)
	if err != nil {
		return err
	}
	e.surface = surface
	return nil
}

// AddStructure resolves key and adds the structure, replacing any structure
// of the same structure-feature type.
func (e *GenerationSettingsEditor) AddStructure(key registry.Identifier) error {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return err
	}
	structure, err := e.ctx.registries.ConfiguredStructures.Resolve(key)
	if err != nil {
		return err
	}
	e.structures = slices.DeleteFunc(e.structures, func(existing *worldgen.ConfiguredStructure) bool {
		return existing.Feature == structure.Feature
	})
	e.structures = append(e.structures, structure)
	return nil
}

// RemoveStructure resolves key and removes that exact structure.
func (e *GenerationSettingsEditor) RemoveStructure(key registry.Identifier) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	structure, err := e.ctx.registries.ConfiguredStructures.Resolve(key)
	if err != nil {
		return false, err
	}
	kept, removed := removeIdentical(e.structures, structure)
	if removed {
		e.structures = kept
	}
	return removed, nil
}

// RemoveStructuresOfType removes every structure of the given
// structure-feature type.
func (e *GenerationSettingsEditor) RemoveStructuresOfType(featureType registry.Identifier) (bool, error) {
	if err := e.ctx.checkUnfrozen(); err != nil {
		return false, err
	}
	if featureType.IsZero() {
		return false, nullArgument("structure feature type")
	}
	before := len(e.structures)
	e.structures = slices.DeleteFunc(e.structures, func(existing *worldgen.ConfiguredStructure) bool {
		return existing.Feature == featureType
	})
	return len(e.structures) != before, nil
}

// Features returns a read-only view of the working feature table.
func (e *GenerationSettingsEditor) Features() [][]*worldgen.ConfiguredFeature {
	return e.features
}

// FlowerFeatures returns a read-only view of the working flower cache.
func (e *GenerationSettingsEditor) FlowerFeatures() []*worldgen.ConfiguredFeature {
	return e.flowers
}

func (e *GenerationSettingsEditor) rebuildFlowerFeatures() {
	e.flowers = worldgen.CollectFlowerFeatures(e.features)
}

func (e *GenerationSettingsEditor) freeze() worldgen.GenerationSettings {
	features := make([][]*worldgen.ConfiguredFeature, len(e.features))
	for i, step := range e.features {
		features[i] = slices.Clone(step)
	}
	carvers := maps.Clone(e.carvers)
	for step, list := range carvers {
		carvers[step] = slices.Clone(list)
	}
	return worldgen.GenerationSettings{
		SurfaceBuilder: e.surface,
		Carvers:        carvers,
		Features:       features,
		FlowerFeatures: slices.Clone(e.flowers),
		Structures:     slices.Clone(e.structures),
	}
}

// removeIdentical drops every element pointer-equal to target. The input is
// left untouched when nothing matches.
func removeIdentical[T any](list []*T, target *T) ([]*T, bool) {
	if !slices.Contains(list, target) {
		return list, false
	}
	kept := make([]*T, 0, len(list))
	for _, item := range list {
		if item != target {
			kept = append(kept, item)
		}
	}
	return kept, true
}
