package transform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
)

// Round-trips one resolved and one unresolved ticket through a
// partition write and read-back, covering the nullable resolved_at
// column in both states.
func TestWritePartitionRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	resolvedAt := created.Add(3 * time.Hour)
	resolved := schema.Ticket{
		TicketID:    "c0ffee00-0000-4000-8000-000000000001",
		CreatedAt:   created,
		UpdatedAt:   resolvedAt,
		ResolvedAt:  &resolvedAt,
		Severity:    schema.SeverityP2,
		Status:      schema.StatusResolved,
		Category:    schema.CategoryBrake,
		Channel:     schema.ChannelPhone,
		Market:      "DE",
		DealerID:    "DLR-DE-003",
		CustomerID:  "CUST-0A1B2C3D4E",
		VINLast6:    "7K3M9P",
		ModelSeries: "X5",
		ModelYear:   2023,
		SLABreached: false,
	}
	open := resolved
	open.TicketID = "c0ffee00-0000-4000-8000-000000000002"
	open.Status = schema.StatusOpen
	open.ResolvedAt = nil
	open.UpdatedAt = created.Add(time.Hour)
	open.SLABreached = true

	datasetDir := filepath.Join(t.TempDir(), "tickets")
	result := writePartition(datasetDir, "DE", []schema.Ticket{resolved, open}, 0)
	if result.Err != nil {
		t.Fatalf("writePartition returned error: %v", result.Err)
	}
	if result.Records != 2 || result.Fragments != 1 {
		t.Fatalf("unexpected partition result: %+v", result)
	}

	got, err := ReadPartition(result.Path)
	if err != nil {
		t.Fatalf("ReadPartition returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records back, got %d", len(got))
	}
	assertTicketsEqual(t, resolved, got[0])
	assertTicketsEqual(t, open, got[1])
	if got[0].ResolvedAt == nil {
		t.Fatalf("resolved ticket lost resolved_at")
	}
	if got[1].ResolvedAt != nil {
		t.Fatalf("open ticket gained resolved_at: %v", got[1].ResolvedAt)
	}
}

func TestReadPartitionRejectsNonPartitionDir(t *testing.T) {
	if _, err := ReadPartition(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory without partition prefix")
	}
}
