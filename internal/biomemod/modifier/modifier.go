// Package modifier stores biome modifiers and orders them for a pass.
package modifier

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/louisbranch/biomemod/internal/biomemod/modification"
	"github.com/louisbranch/biomemod/internal/biomemod/selection"
	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
)

// Action is the mutation a modifier applies to a matching biome. It is
// either a ContextOnly or a WithSelection.
type Action interface {
	isAction()
}

// ContextOnly mutates the biome through its modification context.
type ContextOnly func(*modification.Context) error

// WithSelection mutates the biome and may also read the pre-modification
// selection view.
type WithSelection func(*selection.Context, *modification.Context) error

func (ContextOnly) isAction()   {}
func (WithSelection) isAction() {}

// Apply runs action against the given contexts.
func Apply(action Action, sel *selection.Context, mod *modification.Context) error {
	switch fn := action.(type) {
	case ContextOnly:
		return fn(mod)
	case WithSelection:
		return fn(sel, mod)
	default:
		return apperrors.New(apperrors.CodeInvalidModifier, fmt.Sprintf("unsupported action %T", action))
	}
}

// Record is one registered modifier.
type Record struct {
	ID       registry.Identifier
	Phase    Phase
	Order    int
	Selector selection.Predicate
	Action   Action
}

// Compare orders records by phase, then order, then id.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Phase, b.Phase); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return a.ID.Compare(b.ID)
}

// Registry holds modifiers. Evaluation order depends only on
// (phase, order, id); registration order has no effect.
type Registry struct {
	records []Record
	sorted  []Record
	dirty   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a modifier with order 0.
func (r *Registry) Add(id registry.Identifier, phase Phase, selector selection.Predicate, action Action) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !phase.Valid() {
		return apperrors.WithMetadata(apperrors.CodeNullArgument,
			fmt.Sprintf("modifier %s has invalid phase %s", id, phase),
			map[string]string{"Modifier": id.String()})
	}
	if selector == nil {
		return apperrors.WithMetadata(apperrors.CodeNullArgument,
			fmt.Sprintf("modifier %s has no selector", id),
			map[string]string{"Modifier": id.String(), "Argument": "selector"})
	}
	if !validAction(action) {
		return apperrors.WithMetadata(apperrors.CodeNullArgument,
			fmt.Sprintf("modifier %s has no action", id),
			map[string]string{"Modifier": id.String(), "Argument": "action"})
	}
	r.records = append(r.records, Record{ID: id, Phase: phase, Selector: selector, Action: action})
	r.dirty = true
	return nil
}

func validAction(action Action) bool {
	switch fn := action.(type) {
	case ContextOnly:
		return fn != nil
	case WithSelection:
		return fn != nil
	default:
		return false
	}
}

// ChangeOrder sets the order of every record registered under id and
// reports whether any matched.
func (r *Registry) ChangeOrder(id registry.Identifier, order int) bool {
	found := false
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Order = order
			found = true
		}
	}
	if found {
		r.dirty = true
	}
	return found
}

// Clear drops every record.
func (r *Registry) Clear() {
	r.records = nil
	r.sorted = nil
	r.dirty = false
}

// Len returns the number of registered records.
func (r *Registry) Len() int { return len(r.records) }

// Sorted returns the records in evaluation order. The result is cached until
// the registry changes; callers must not modify it.
func (r *Registry) Sorted() []Record {
	if r.dirty {
		r.sorted = slices.Clone(r.records)
		slices.SortStableFunc(r.sorted, Compare)
		r.dirty = false
	}
	return r.sorted
}
