package modification

import (
	"fmt"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/registry"
)

var (
	// ErrNullArgument matches rejected missing or invalid arguments.
	ErrNullArgument = apperrors.New(apperrors.CodeNullArgument, "argument is required")
	// ErrFrozen matches edits attempted after Freeze.
	ErrFrozen = apperrors.New(apperrors.CodeContextFrozen, "modification context is frozen")
)

func nullArgument(name string) error {
	return apperrors.WithMetadata(apperrors.CodeNullArgument,
		fmt.Sprintf("%s is required", name),
		map[string]string{"Argument": name})
}

func invalidEnum(name string, value fmt.Stringer) error {
	return apperrors.WithMetadata(apperrors.CodeNullArgument,
		fmt.Sprintf("%s is not a valid value: %s", name, value),
		map[string]string{"Argument": name})
}

func frozen(biome registry.Identifier) error {
	return apperrors.WithMetadata(apperrors.CodeContextFrozen,
		fmt.Sprintf("biome %s is frozen", biome),
		map[string]string{"Biome": biome.String()})
}
