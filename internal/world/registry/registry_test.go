package registry

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

type thing struct{ name string }

func newThings(t *testing.T, keys ...string) (*Registry[thing], []*thing) {
	t.Helper()
	r := New[thing](MustIdentifier("test:thing"))
	values := make([]*thing, 0, len(keys))
	for _, key := range keys {
		value := &thing{name: key}
		if _, err := r.Register(MustIdentifier(key), value); err != nil {
			t.Fatalf("register %s: %v", key, err)
		}
		values = append(values, value)
	}
	return r, values
}

func TestRegisterAssignsRawIDsInOrder(t *testing.T) {
	r, _ := newThings(t, "test:c", "test:a", "test:b")
	for i, key := range []string{"test:c", "test:a", "test:b"} {
		raw, ok := r.RawID(MustIdentifier(key))
		if !ok || raw != i {
			t.Fatalf("RawID(%s) = %d,%v want %d", key, raw, ok, i)
		}
	}
	entries := r.Entries()
	if len(entries) != 3 || entries[0].Key != MustIdentifier("test:c") {
		t.Fatalf("entries = %+v", entries)
	}
	if r.Len() != 3 {
		t.Fatalf("len = %d", r.Len())
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r, _ := newThings(t, "test:a")
	_, err := r.Register(MustIdentifier("test:a"), &thing{})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := r.Register(MustIdentifier("test:b"), nil); err == nil {
		t.Fatal("expected nil value to be rejected")
	}
}

func TestKeyOfUsesIdentity(t *testing.T) {
	r, values := newThings(t, "test:a", "test:b")
	key, ok := r.KeyOf(values[1])
	if !ok || key != MustIdentifier("test:b") {
		t.Fatalf("KeyOf = %v,%v", key, ok)
	}
	if _, ok := r.KeyOf(&thing{name: "test:a"}); ok {
		t.Fatal("expected lookalike value not to resolve")
	}
	if _, ok := r.KeyOf(nil); ok {
		t.Fatal("expected nil not to resolve")
	}
}

func TestResolveUnknownKeySuggestsClosest(t *testing.T) {
	r, values := newThings(t, "minecraft:flower_plain", "minecraft:flower_forest", "minecraft:ore_iron")

	got, err := r.Resolve(MustIdentifier("minecraft:flower_plain"))
	if err != nil || got != values[0] {
		t.Fatalf("Resolve = %v,%v", got, err)
	}

	_, err = r.Resolve(MustIdentifier("minecraft:flower_plan"))
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	meta := apperrors.MetadataOf(err)
	if meta["Suggestion"] != "minecraft:flower_plain" {
		t.Fatalf("suggestion = %q", meta["Suggestion"])
	}
	if meta["Registry"] != "test:thing" {
		t.Fatalf("registry metadata = %q", meta["Registry"])
	}

	_, err = r.Resolve(MustIdentifier("example:something_else"))
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if _, ok := apperrors.MetadataOf(err)["Suggestion"]; ok {
		t.Fatal("expected no suggestion for distant key")
	}
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var r *Registry[thing]
	if _, ok := r.Get(MustIdentifier("test:a")); ok {
		t.Fatal("expected nil registry lookup to miss")
	}
	if r.Len() != 0 || r.Entries() != nil || r.Keys() != nil {
		t.Fatal("expected nil registry to be empty")
	}
}
