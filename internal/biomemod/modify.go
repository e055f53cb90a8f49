package biomemod

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/biomemod/internal/biomemod/modification"
	"github.com/louisbranch/biomemod/internal/biomemod/modifier"
	"github.com/louisbranch/biomemod/internal/biomemod/selection"
	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/platform/id"
	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

const tracerName = "github.com/louisbranch/biomemod/internal/biomemod"

// Application is one modifier applied to one biome.
type Application struct {
	Modifier registry.Identifier
	Phase    modifier.Phase
	Biome    registry.Identifier
}

// Report summarizes one pass.
type Report struct {
	RunID            string
	StartedAt        time.Time
	Elapsed          time.Duration
	BiomesProcessed  int
	BiomesChanged    int
	ModifiersApplied int
	Applications     []Application
}

// Modify applies every modifier in modifiers to every biome of registries
// that state has not seen yet.
//
// Biomes are visited in raw id order and modifiers in (phase, order, id)
// order. A biome is marked in state before any modifier runs on it, so a
// failing pass is never retried for that biome. The first selector panic or
// action error aborts the pass; the returned report covers the work done up
// to that point.
func Modify(ctx context.Context, registries *worldgen.Registries, modifiers *modifier.Registry, state *PassState) (Report, error) {
	if registries == nil || modifiers == nil || state == nil {
		return Report{}, apperrors.New(apperrors.CodeNullArgument, "registries, modifiers and state are required")
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "biomemod.modify")
	defer span.End()

	runID, err := id.NewID()
	if err != nil {
		return Report{}, fmt.Errorf("generate run id: %w", err)
	}
	report := Report{RunID: runID, StartedAt: time.Now()}

	records := modifiers.Sorted()
	starts := modification.NewStructureStartIndex(registries)
	for _, entry := range biomesByRawID(registries) {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(report.StartedAt)
			return report, err
		}
		if !state.mark(entry.Key) {
			continue
		}
		report.BiomesProcessed++
		if err := modifyBiome(entry, registries, starts, records, &report); err != nil {
			report.Elapsed = time.Since(report.StartedAt)
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "modifier failed")
			return report, err
		}
	}
	report.Elapsed = time.Since(report.StartedAt)

	span.SetAttributes(
		attribute.String("biomemod.run_id", report.RunID),
		attribute.Int("biomemod.biomes_processed", report.BiomesProcessed),
		attribute.Int("biomemod.biomes_changed", report.BiomesChanged),
		attribute.Int("biomemod.modifiers_applied", report.ModifiersApplied),
	)
	if report.BiomesProcessed > 0 {
		p := message.NewPrinter(language.English)
		log.Print(p.Sprintf("Applied %d biome modifications to %d of %d new biomes in %v",
			report.ModifiersApplied, report.BiomesChanged, report.BiomesProcessed, report.Elapsed.Round(time.Microsecond)))
	}
	return report, nil
}

func biomesByRawID(registries *worldgen.Registries) []registry.Entry[worldgen.Biome] {
	entries := registries.Biomes.Entries()
	slices.SortFunc(entries, func(a, b registry.Entry[worldgen.Biome]) int {
		return a.RawID - b.RawID
	})
	return entries
}

func modifyBiome(entry registry.Entry[worldgen.Biome], registries *worldgen.Registries, starts *modification.StructureStartIndex, records []modifier.Record, report *Report) error {
	sel := selection.NewContext(entry.Key, entry.Value, registries)
	var mod *modification.Context
	for _, record := range records {
		if !record.Selector(sel) {
			continue
		}
		if mod == nil {
			var err error
			mod, err = modification.NewContext(entry.Key, entry.Value, registries, starts)
			if err != nil {
				return err
			}
		}
		if err := modifier.Apply(record.Action, sel, mod); err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeModifierFailed,
				fmt.Sprintf("modifier %s failed on biome %s", record.ID, entry.Key),
				map[string]string{"Modifier": record.ID.String(), "Biome": entry.Key.String()},
				err)
		}
		report.ModifiersApplied++
		report.Applications = append(report.Applications, Application{
			Modifier: record.ID,
			Phase:    record.Phase,
			Biome:    entry.Key,
		})
	}
	if mod == nil {
		return nil
	}
	report.BiomesChanged++
	return mod.Freeze()
}
