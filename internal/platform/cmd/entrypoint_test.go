package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	World string `env:"CMD_TEST_WORLD" envDefault:"world.yaml"`
	Mode  string `env:"CMD_TEST_MODE" envDefault:"run"`
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("BIOMEMOD_CMD_TEST_WORLD", "env.yaml")
	t.Setenv("BIOMEMOD_CMD_TEST_MODE", "env-mode")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.World, "world", "", "world")
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")
	if err := ParseArgs(fs, []string{"-world", "flag.yaml"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.World != "flag.yaml" {
		t.Fatalf("expected flag world, got %q", cfg.World)
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("expected env mode, got %q", cfg.Mode)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target to be rejected")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRunsBody(t *testing.T) {
	t.Setenv("BIOMEMOD_OTEL_ENDPOINT", "")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceRun, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !called {
		t.Fatal("expected run body to be called")
	}
}

func TestRunWithTelemetryPropagatesError(t *testing.T) {
	t.Setenv("BIOMEMOD_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceRun, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestRunWithTelemetryValidatesInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected blank service to fail")
	}
	if err := RunWithTelemetry(context.Background(), ServiceRun, nil); err == nil {
		t.Fatal("expected nil run to fail")
	}
}
