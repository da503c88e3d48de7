package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// fragmentRow is the columnar fragment schema: the ticket field list
// in declared order, minus the partition column, which the directory
// layout carries. Field order here must track schema.FragmentFields().
type fragmentRow struct {
	TicketID  string    `parquet:"ticket_id"`
	CreatedAt time.Time `parquet:"created_at,timestamp(millisecond)"`
	UpdatedAt time.Time `parquet:"updated_at,timestamp(millisecond)"`
	// The pointer carries optionality; time.Time maps to a timestamp
	// column on its own, and the explicit unit option is rejected on
	// pointer fields.
	ResolvedAt  *time.Time `parquet:"resolved_at,optional"`
	Severity    string     `parquet:"severity"`
	Status      string     `parquet:"status"`
	Category    string     `parquet:"category"`
	Channel     string     `parquet:"channel"`
	DealerID    string     `parquet:"dealer_id"`
	CustomerID  string     `parquet:"customer_id"`
	VINLast6    string     `parquet:"vin_last6"`
	ModelSeries string     `parquet:"model_series"`
	ModelYear   int32      `parquet:"model_year"`
	SLABreached bool       `parquet:"sla_breached"`
}

func toFragmentRow(t schema.Ticket) fragmentRow {
	return fragmentRow{
		TicketID:    t.TicketID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ResolvedAt:  t.ResolvedAt,
		Severity:    string(t.Severity),
		Status:      string(t.Status),
		Category:    string(t.Category),
		Channel:     string(t.Channel),
		DealerID:    t.DealerID,
		CustomerID:  t.CustomerID,
		VINLast6:    t.VINLast6,
		ModelSeries: t.ModelSeries,
		ModelYear:   int32(t.ModelYear),
		SLABreached: t.SLABreached,
	}
}

func fromFragmentRow(r fragmentRow, market string) schema.Ticket {
	return schema.Ticket{
		TicketID:    r.TicketID,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		ResolvedAt:  utcPtr(r.ResolvedAt),
		Severity:    schema.Severity(r.Severity),
		Status:      schema.Status(r.Status),
		Category:    schema.Category(r.Category),
		Channel:     schema.Channel(r.Channel),
		Market:      market,
		DealerID:    r.DealerID,
		CustomerID:  r.CustomerID,
		VINLast6:    r.VINLast6,
		ModelSeries: r.ModelSeries,
		ModelYear:   int(r.ModelYear),
		SLABreached: r.SLABreached,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// writePartition rebuilds one partition directory from scratch:
// datasetDir/market=<value>/part-NNNNN.parquet, snappy-compressed.
// Errors are captured in the result so other partitions still write.
func writePartition(datasetDir, market string, tickets []schema.Ticket, fragmentRows int) *PartitionResult {
	dir := filepath.Join(datasetDir, schema.PartitionKey+"="+market)
	result := &PartitionResult{Records: len(tickets), Path: dir}

	// Drop prior fragments so a re-run never mixes datasets.
	if err := os.RemoveAll(dir); err != nil {
		result.Err = util.NewIOError("clear partition directory", dir, err)
		return result
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Err = util.NewIOError("create partition directory", dir, err)
		return result
	}

	limit := fragmentRows
	if limit <= 0 {
		limit = len(tickets)
	}
	for start := 0; start < len(tickets); start += limit {
		end := start + limit
		if end > len(tickets) {
			end = len(tickets)
		}
		path := filepath.Join(dir, fmt.Sprintf("part-%05d.parquet", result.Fragments))
		if err := writeFragment(path, tickets[start:end]); err != nil {
			result.Err = err
			return result
		}
		result.Fragments++
	}
	return result
}

func writeFragment(path string, tickets []schema.Ticket) error {
	rows := make([]fragmentRow, len(tickets))
	for i, t := range tickets {
		rows[i] = toFragmentRow(t)
	}

	f, err := os.Create(path)
	if err != nil {
		return util.NewIOError("create fragment file", path, err)
	}
	w := parquet.NewGenericWriter[fragmentRow](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return util.NewIOError("write fragment rows", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return util.NewIOError("finalize fragment", path, err)
	}
	if err := f.Close(); err != nil {
		return util.NewIOError("close fragment file", path, err)
	}
	return nil
}

// ReadPartition loads every fragment of one partition directory back
// into tickets, restoring the partition column from the directory name.
// Intended for verification and downstream tooling.
func ReadPartition(dir string) ([]schema.Ticket, error) {
	base := filepath.Base(dir)
	market, ok := strings.CutPrefix(base, schema.PartitionKey+"=")
	if !ok {
		return nil, util.NewIOError("not a partition directory", dir, nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, util.NewIOError("read partition directory", dir, err)
	}
	var fragments []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".parquet") {
			fragments = append(fragments, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(fragments)

	var tickets []schema.Ticket
	for _, path := range fragments {
		rows, err := parquet.ReadFile[fragmentRow](path)
		if err != nil {
			return nil, util.NewIOError("read fragment", path, err)
		}
		for _, r := range rows {
			tickets = append(tickets, fromFragmentRow(r, market))
		}
	}
	return tickets, nil
}
