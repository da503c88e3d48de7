package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator.Count != 5000 || cfg.Generator.DaysBack != 90 || cfg.Generator.BatchSize != 1000 {
		t.Fatalf("unexpected generator defaults: %+v", cfg.Generator)
	}
	if cfg.Generator.Seed != 42 {
		t.Fatalf("default seed = %d, want 42", cfg.Generator.Seed)
	}
	if cfg.Transform.MaxRejectRate != 1.0 {
		t.Fatalf("default max reject rate = %v, want 1.0", cfg.Transform.MaxRejectRate)
	}
	if cfg.Logger.Level != "info" {
		t.Fatalf("default log level = %q, want info", cfg.Logger.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GENERATOR_COUNT", "250")
	t.Setenv("GENERATOR_SEED", "7")
	t.Setenv("GENERATOR_COMPRESS", "true")
	t.Setenv("TRANSFORM_INPUTS", "a.jsonl, b/ ,")
	t.Setenv("TRANSFORM_MAX_REJECT_RATE", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator.Count != 250 || cfg.Generator.Seed != 7 || !cfg.Generator.Compress {
		t.Fatalf("generator overrides not applied: %+v", cfg.Generator)
	}
	if !reflect.DeepEqual(cfg.Transform.Inputs, []string{"a.jsonl", "b/"}) {
		t.Fatalf("inputs = %v, want [a.jsonl b/]", cfg.Transform.Inputs)
	}
	if cfg.Transform.MaxRejectRate != 0.25 {
		t.Fatalf("max reject rate = %v, want 0.25", cfg.Transform.MaxRejectRate)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GENERATOR_COUNT", "not-a-number")
	t.Setenv("TRANSFORM_MAX_REJECT_RATE", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator.Count != 5000 {
		t.Fatalf("malformed count should fall back to default, got %d", cfg.Generator.Count)
	}
	if cfg.Transform.MaxRejectRate != 1.0 {
		t.Fatalf("malformed rate should fall back to default, got %v", cfg.Transform.MaxRejectRate)
	}
}
