package generate

import (
	"reflect"
	"testing"
	"time"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

var testNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	gen, err := New(cfg, DefaultWeights(), testNow)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return gen
}

func TestConfigRejection(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero count", Config{Count: 0, DaysBack: 7, BatchSize: 10}},
		{"negative count", Config{Count: -5, DaysBack: 7, BatchSize: 10}},
		{"zero batch size", Config{Count: 10, DaysBack: 7, BatchSize: 0}},
		{"negative days back", Config{Count: 10, DaysBack: -1, BatchSize: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, DefaultWeights(), testNow); !util.IsCode(err, util.CodeConfigInvalid) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	cfg := Config{Count: 500, DaysBack: 30, BatchSize: 100, Seed: 42}
	a := newTestGenerator(t, cfg).Generate()
	b := newTestGenerator(t, cfg).Generate()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical seeds produced different tickets")
	}

	other := cfg
	other.Seed = 43
	c := newTestGenerator(t, other).Generate()
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds produced identical tickets")
	}
}

func TestBatchSizeDoesNotAffectContent(t *testing.T) {
	// BatchSize only controls file boundaries, never record content.
	small := Config{Count: 200, DaysBack: 14, BatchSize: 7, Seed: 7}
	large := Config{Count: 200, DaysBack: 14, BatchSize: 200, Seed: 7}
	a := newTestGenerator(t, small).Generate()
	b := newTestGenerator(t, large).Generate()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("batch size changed generated content")
	}
}

func TestInvariantClosure(t *testing.T) {
	cfg := Config{Count: 2000, DaysBack: 90, BatchSize: 1000, Seed: 99}
	tickets := newTestGenerator(t, cfg).Generate()
	if len(tickets) != cfg.Count {
		t.Fatalf("expected %d tickets, got %d", cfg.Count, len(tickets))
	}

	seen := make(map[string]bool, len(tickets))
	for i, tk := range tickets {
		if err := tk.Validate(); err != nil {
			t.Fatalf("ticket %d fails schema validation: %v", i, err)
		}
		if seen[tk.TicketID] {
			t.Fatalf("duplicate ticket_id %s", tk.TicketID)
		}
		seen[tk.TicketID] = true
		if tk.CreatedAt.Before(testNow.Add(-90*24*time.Hour)) || tk.CreatedAt.After(testNow) {
			t.Fatalf("ticket %d created_at %v outside window", i, tk.CreatedAt)
		}
		if tk.UpdatedAt.After(testNow) {
			t.Fatalf("ticket %d updated_at %v in the future", i, tk.UpdatedAt)
		}
		if tk.ResolvedAt != nil && tk.ResolvedAt.After(testNow) {
			t.Fatalf("ticket %d resolved_at %v in the future", i, tk.ResolvedAt)
		}
	}
}

func TestSLAConsistency(t *testing.T) {
	cfg := Config{Count: 2000, DaysBack: 60, BatchSize: 1000, Seed: 1}
	tickets := newTestGenerator(t, cfg).Generate()

	var breached int
	for i, tk := range tickets {
		target := schema.SLATarget(tk.Severity)
		var want bool
		if tk.ResolvedAt != nil {
			want = tk.ResolvedAt.Sub(tk.CreatedAt) > target
		} else {
			want = testNow.Sub(tk.CreatedAt) > target
		}
		if tk.SLABreached != want {
			t.Fatalf("ticket %d sla_breached = %v, want %v (severity %s)", i, tk.SLABreached, want, tk.Severity)
		}
		if tk.SLABreached {
			breached++
		}
	}
	// The distribution spread should produce a non-trivial breach mix.
	if breached == 0 || breached == len(tickets) {
		t.Fatalf("degenerate breach mix: %d of %d", breached, len(tickets))
	}
}

func TestResolutionLikelihoodGrowsWithAge(t *testing.T) {
	cfg := Config{Count: 3000, DaysBack: 90, BatchSize: 1000, Seed: 5}
	tickets := newTestGenerator(t, cfg).Generate()

	resolvedOld, old, resolvedYoung, young := 0, 0, 0, 0
	for _, tk := range tickets {
		age := testNow.Sub(tk.CreatedAt)
		if age > 45*24*time.Hour {
			old++
			if tk.Status.Terminal() {
				resolvedOld++
			}
		} else if age < 7*24*time.Hour {
			young++
			if tk.Status.Terminal() {
				resolvedYoung++
			}
		}
	}
	if old == 0 || young == 0 {
		t.Fatalf("sample did not cover both age bands (old=%d young=%d)", old, young)
	}
	if float64(resolvedOld)/float64(old) <= float64(resolvedYoung)/float64(young) {
		t.Fatalf("old tickets should resolve more often: old %d/%d, young %d/%d",
			resolvedOld, old, resolvedYoung, young)
	}
}

func TestZeroDaysBack(t *testing.T) {
	cfg := Config{Count: 10, DaysBack: 0, BatchSize: 10, Seed: 3}
	tickets := newTestGenerator(t, cfg).Generate()
	for i, tk := range tickets {
		if !tk.CreatedAt.Equal(testNow) {
			t.Fatalf("ticket %d created_at %v, want %v", i, tk.CreatedAt, testNow)
		}
		if err := tk.Validate(); err != nil {
			t.Fatalf("ticket %d invalid: %v", i, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	cfg := Config{Count: 100, DaysBack: 30, BatchSize: 50, Seed: 11}
	tickets := newTestGenerator(t, cfg).Generate()
	s := Summarize(tickets, 2)
	if s.Generated != 100 || s.Files != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	total := 0
	for _, n := range s.BySeverity {
		total += n
	}
	if total != 100 {
		t.Fatalf("severity mix sums to %d, want 100", total)
	}
	if s.BreachRate() < 0 || s.BreachRate() > 1 {
		t.Fatalf("breach rate %v out of range", s.BreachRate())
	}
}
