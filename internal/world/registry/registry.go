package registry

import (
	"fmt"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

var (
	// ErrUnknownKey matches resolution failures for identifiers a registry does not hold.
	ErrUnknownKey = apperrors.New(apperrors.CodeUnknownKey, "unknown registry key")
	// ErrDuplicateKey matches attempts to register an identifier twice.
	ErrDuplicateKey = apperrors.New(apperrors.CodeDuplicateKey, "duplicate registry key")
)

// Entry pairs a registered identifier with its value and raw id.
type Entry[T any] struct {
	Key   Identifier
	RawID int
	Value *T
}

// Lookup is the read port the modification pipeline needs from a registry.
type Lookup[T any] interface {
	Get(key Identifier) (*T, bool)
	Resolve(key Identifier) (*T, error)
	KeyOf(value *T) (Identifier, bool)
	RawID(key Identifier) (int, bool)
	Entries() []Entry[T]
}

// Registry stores values of one kind by identifier.
//
// Raw ids are assigned densely in registration order. Reverse lookups use
// pointer identity, so two equal-looking values registered separately keep
// distinct keys.
type Registry[T any] struct {
	name    Identifier
	entries []Entry[T]
	byKey   map[Identifier]int
	byValue map[*T]int
}

// New creates an empty registry named name.
func New[T any](name Identifier) *Registry[T] {
	return &Registry[T]{
		name:    name,
		byKey:   make(map[Identifier]int),
		byValue: make(map[*T]int),
	}
}

// Name returns the registry identifier.
func (r *Registry[T]) Name() Identifier {
	if r == nil {
		return Identifier{}
	}
	return r.name
}

// Register adds value under key and returns its raw id.
func (r *Registry[T]) Register(key Identifier, value *T) (int, error) {
	if r == nil {
		return 0, fmt.Errorf("registry is required")
	}
	if err := key.Validate(); err != nil {
		return 0, err
	}
	if value == nil {
		return 0, fmt.Errorf("register %s in %s: value is required", key, r.name)
	}
	if _, exists := r.byKey[key]; exists {
		return 0, apperrors.WithMetadata(apperrors.CodeDuplicateKey,
			fmt.Sprintf("%s already contains %s", r.name, key),
			map[string]string{"Registry": r.name.String(), "Key": key.String()})
	}
	rawID := len(r.entries)
	r.entries = append(r.entries, Entry[T]{Key: key, RawID: rawID, Value: value})
	r.byKey[key] = rawID
	if _, seen := r.byValue[value]; !seen {
		r.byValue[value] = rawID
	}
	return rawID, nil
}

// Get returns the value registered under key.
func (r *Registry[T]) Get(key Identifier) (*T, bool) {
	if r == nil {
		return nil, false
	}
	rawID, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return r.entries[rawID].Value, true
}

// Resolve returns the value registered under key or an unknown-key error
// carrying the closest registered identifier as a suggestion.
func (r *Registry[T]) Resolve(key Identifier) (*T, error) {
	if value, ok := r.Get(key); ok {
		return value, nil
	}
	metadata := map[string]string{
		"Registry": r.Name().String(),
		"Key":      key.String(),
	}
	message := fmt.Sprintf("%s has no entry %s", r.Name(), key)
	if suggestion, ok := r.Suggest(key); ok {
		metadata["Suggestion"] = suggestion.String()
		message += fmt.Sprintf(" (did you mean %s?)", suggestion)
	}
	return nil, apperrors.WithMetadata(apperrors.CodeUnknownKey, message, metadata)
}

// KeyOf returns the identifier value was registered under.
func (r *Registry[T]) KeyOf(value *T) (Identifier, bool) {
	if r == nil || value == nil {
		return Identifier{}, false
	}
	rawID, ok := r.byValue[value]
	if !ok {
		return Identifier{}, false
	}
	return r.entries[rawID].Key, true
}

// RawID returns the registration index of key.
func (r *Registry[T]) RawID(key Identifier) (int, bool) {
	if r == nil {
		return 0, false
	}
	rawID, ok := r.byKey[key]
	return rawID, ok
}

// Entries returns every entry in raw id order.
func (r *Registry[T]) Entries() []Entry[T] {
	if r == nil {
		return nil
	}
	out := make([]Entry[T], len(r.entries))
	copy(out, r.entries)
	return out
}

// Keys returns every registered identifier in raw id order.
func (r *Registry[T]) Keys() []Identifier {
	if r == nil {
		return nil
	}
	keys := make([]Identifier, len(r.entries))
	for i, entry := range r.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

var _ Lookup[struct{}] = (*Registry[struct{}])(nil)
