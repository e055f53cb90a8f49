package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	World  string `env:"TEST_WORLD" envDefault:"world.yaml"`
	Limit  int    `env:"TEST_LIMIT" envDefault:"20"`
	Strict bool   `env:"TEST_STRICT"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.World != "world.yaml" {
		t.Fatalf("expected default world, got %q", cfg.World)
	}
	if cfg.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", cfg.Limit)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TEST_WORLD", "ignored.yaml")
	t.Setenv("BIOMEMOD_TEST_WORLD", "custom.yaml")
	t.Setenv("BIOMEMOD_TEST_STRICT", "true")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.World != "custom.yaml" {
		t.Fatalf("expected prefixed world, got %q", cfg.World)
	}
	if !cfg.Strict {
		t.Fatal("expected strict from env")
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BIOMEMOD_TEST_LIMIT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
