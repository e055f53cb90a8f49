// Package registry provides the keyed object registries the modification
// pipeline resolves world-generation content through.
//
// Registries assign raw ids in registration order, resolve identifiers to
// shared objects, and answer reverse lookups by object identity. They are the
// narrow host port the pipeline consumes; codec-driven population belongs to
// callers such as the world file loader.
package registry

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

// DefaultNamespace is assumed when an identifier omits its namespace.
const DefaultNamespace = "minecraft"

// Identifier names a registry entry as namespace:path.
type Identifier struct {
	Namespace string
	Path      string
}

// NewIdentifier builds an identifier from its parts.
func NewIdentifier(namespace, path string) Identifier {
	return Identifier{Namespace: namespace, Path: path}
}

// ParseIdentifier parses "namespace:path" or "path" (default namespace).
func ParseIdentifier(value string) (Identifier, error) {
	value = strings.TrimSpace(value)
	namespace, path, found := strings.Cut(value, ":")
	if !found {
		namespace, path = DefaultNamespace, value
	}
	id := Identifier{Namespace: namespace, Path: path}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// MustIdentifier parses value and panics when it is malformed.
// Intended for package-level constants and tests.
func MustIdentifier(value string) Identifier {
	id, err := ParseIdentifier(value)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate checks the identifier character set.
func (id Identifier) Validate() error {
	if id.Namespace == "" || id.Path == "" || !validPart(id.Namespace, false) || !validPart(id.Path, true) {
		return apperrors.WithMetadata(apperrors.CodeInvalidKey,
			fmt.Sprintf("invalid identifier %q", id.Namespace+":"+id.Path),
			map[string]string{"Key": id.Namespace + ":" + id.Path})
	}
	return nil
}

// String renders the identifier as namespace:path.
func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

// Compare orders identifiers lexicographically by their string form.
func (id Identifier) Compare(other Identifier) int {
	return strings.Compare(id.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func validPart(value string, allowSlash bool) bool {
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		case r == '/' && allowSlash:
		default:
			return false
		}
	}
	return true
}
