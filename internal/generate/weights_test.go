package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
}

func TestWeightsCoverage(t *testing.T) {
	w := DefaultWeights()
	delete(w.Severity, schema.SeverityP3)
	if err := w.Validate(); !util.IsCode(err, util.CodeConfigInvalid) {
		t.Fatalf("expected config error for missing severity, got %v", err)
	}

	w = DefaultWeights()
	w.Market["XX"] = 0.5
	if err := w.Validate(); !util.IsCode(err, util.CodeConfigInvalid) {
		t.Fatalf("expected config error for extra market, got %v", err)
	}

	w = DefaultWeights()
	w.Channel[schema.ChannelEmail] = 0
	if err := w.Validate(); !util.IsCode(err, util.CodeConfigInvalid) {
		t.Fatalf("expected config error for zero mass, got %v", err)
	}

	w = DefaultWeights()
	w.ResolveCeiling = 1.5
	if err := w.Validate(); !util.IsCode(err, util.CodeConfigInvalid) {
		t.Fatalf("expected config error for resolve ceiling, got %v", err)
	}
}

func TestLoadWeightsOverridesTunables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	body := "resolve_half_life_hours: 24\ndealers_per_market: 3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write weights file: %v", err)
	}

	w, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights returned error: %v", err)
	}
	if w.ResolveHalfLifeHours != 24 || w.DealersPerMarket != 3 {
		t.Fatalf("overrides not applied: %+v", w)
	}
	// Untouched tables keep their defaults.
	if w.Severity[schema.SeverityP1] != 0.05 {
		t.Fatalf("default severity table lost: %v", w.Severity)
	}
}

func TestLoadWeightsRejectsPartialTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	body := "severity:\n  P1: 1.0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write weights file: %v", err)
	}
	if _, err := LoadWeights(path); !util.IsCode(err, util.CodeConfigInvalid) {
		t.Fatalf("expected config error for partial severity table, got %v", err)
	}
}

func TestLoadWeightsMissingFile(t *testing.T) {
	if _, err := LoadWeights(filepath.Join(t.TempDir(), "absent.yaml")); !util.IsCode(err, util.CodeIOFailure) {
		t.Fatalf("expected io error, got %v", err)
	}
}
