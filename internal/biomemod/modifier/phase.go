package modifier

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

// Phase is the coarse ordering bucket of a modifier. Phases run in
// declaration order.
type Phase int

const (
	// PhaseAdditions adds features, spawns and structures.
	PhaseAdditions Phase = iota
	// PhaseRemovals removes content added by the base game or earlier modifiers.
	PhaseRemovals
	// PhaseReplacements swaps one piece of content for another.
	PhaseReplacements
	// PhasePostProcessing sees the result of every other phase.
	PhasePostProcessing
	phaseCount
)

var phaseNames = [...]string{"additions", "removals", "replacements", "post_processing"}

// Phases returns every phase in execution order.
func Phases() []Phase {
	return []Phase{PhaseAdditions, PhaseRemovals, PhaseReplacements, PhasePostProcessing}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool { return p >= 0 && p < phaseCount }

// String returns the phase name, e.g. "post_processing".
func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase parses a phase name such as "removals".
func ParsePhase(value string) (Phase, error) {
	for i, name := range phaseNames {
		if strings.EqualFold(value, name) {
			return Phase(i), nil
		}
	}
	return 0, apperrors.WithMetadata(apperrors.CodeInvalidModifier,
		fmt.Sprintf("unknown phase %q", value),
		map[string]string{"Phase": value})
}
