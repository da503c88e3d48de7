package transform

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// rejectSampleCap bounds how many offending lines the summary retains.
const rejectSampleCap = 8

// Config is the transform's public parameter surface.
type Config struct {
	// Inputs are record files or directories holding .jsonl / .jsonl.gz.
	Inputs []string
	// OutputDir is the destination root; partitions land under
	// OutputDir/tickets/market=<value>/.
	OutputDir string
	// MaxRejectRate is the fraction of rejected records above which the
	// run fails. Zero is treated as the default 1.0, which keeps only
	// the zero-valid guard.
	MaxRejectRate float64
	// FragmentRows caps rows per columnar fragment; 0 writes one
	// fragment per partition.
	FragmentRows int
}

// Validate rejects invalid parameters before any work.
func (c Config) Validate() error {
	if len(c.Inputs) == 0 {
		return util.NewConfigError("at least one input is required", map[string]any{"parameter": "inputs"})
	}
	if c.OutputDir == "" {
		return util.NewConfigError("output directory is required", map[string]any{"parameter": "output"})
	}
	if c.MaxRejectRate < 0 || c.MaxRejectRate > 1 {
		return util.NewConfigError("max_reject_rate must be in [0, 1]", map[string]any{"parameter": "max_reject_rate", "value": c.MaxRejectRate})
	}
	if c.FragmentRows < 0 {
		return util.NewConfigError("fragment_rows must be non-negative", map[string]any{"parameter": "fragment_rows", "value": c.FragmentRows})
	}
	return nil
}

// PartitionResult reports one partition's write outcome.
type PartitionResult struct {
	Records   int
	Fragments int
	Path      string
	Err       error
}

// Summary is the user-visible outcome of a transform run.
type Summary struct {
	RecordsRead   int
	Validated     int
	Rejected      int
	RejectReasons map[string]int
	RejectSamples []string
	Partitions    map[string]*PartitionResult
}

// Transformer converts row-oriented ticket records into a partitioned
// columnar dataset. Each run rebuilds the touched partitions from
// scratch; output is a pure function of the validated input.
type Transformer struct {
	cfg    Config
	logger *zap.Logger
}

// New validates the configuration and constructs a Transformer.
func New(cfg Config, logger *zap.Logger) (*Transformer, error) {
	if cfg.MaxRejectRate == 0 {
		cfg.MaxRejectRate = 1.0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{cfg: cfg, logger: logger}, nil
}

// Run executes the three stages: parse & validate, partition, write.
// Individual record rejections are counted, not fatal; the run fails
// when no valid records remain, when the rejection rate crosses the
// configured threshold, or when a partition cannot be written. Partial
// partition failures are reported per-partition in the summary.
func (t *Transformer) Run() (*Summary, error) {
	files, err := resolveInputs(t.cfg.Inputs)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RejectReasons: make(map[string]int),
		Partitions:    make(map[string]*PartitionResult),
	}

	var valid []schema.Ticket
	for _, path := range files {
		records, err := t.readFile(path, summary)
		if err != nil {
			return nil, err
		}
		valid = append(valid, records...)
	}
	summary.Validated = len(valid)

	if summary.Validated == 0 {
		return summary, util.NewValidationError(
			"no valid records remain after validation",
			map[string]any{"read": summary.RecordsRead, "rejected": summary.Rejected},
		)
	}
	if rate := float64(summary.Rejected) / float64(summary.RecordsRead); rate > t.cfg.MaxRejectRate {
		return summary, util.NewValidationError(
			fmt.Sprintf("rejection rate %.2f exceeds threshold %.2f", rate, t.cfg.MaxRejectRate),
			map[string]any{"read": summary.RecordsRead, "rejected": summary.Rejected},
		)
	}

	partitions := partition(valid)

	keys := make([]string, 0, len(partitions))
	for k := range partitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	datasetDir := filepath.Join(t.cfg.OutputDir, "tickets")
	var failed []string
	for _, market := range keys {
		result := writePartition(datasetDir, market, partitions[market], t.cfg.FragmentRows)
		summary.Partitions[market] = result
		if result.Err != nil {
			failed = append(failed, market)
			t.logger.Error("partition write failed",
				zap.String("market", market),
				zap.Error(result.Err))
			continue
		}
		t.logger.Info("partition written",
			zap.String("market", market),
			zap.Int("records", result.Records),
			zap.Int("fragments", result.Fragments))
	}
	if len(failed) > 0 {
		return summary, util.NewIOError(
			fmt.Sprintf("failed to write partitions: %s", strings.Join(failed, ", ")),
			datasetDir, nil,
		)
	}
	return summary, nil
}

// readFile parses and validates one record file, appending rejects to
// the summary. An unreadable file is fatal; a bad record is not.
func (t *Transformer) readFile(path string, summary *Summary) ([]schema.Ticket, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var valid []schema.Ticket
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		summary.RecordsRead++

		var ticket schema.Ticket
		if err := json.Unmarshal(raw, &ticket); err != nil {
			t.reject(summary, path, line, raw, "parse")
			continue
		}
		if err := ticket.Validate(); err != nil {
			t.reject(summary, path, line, raw, rejectReason(err))
			continue
		}
		valid = append(valid, ticket)
	}
	if err := scanner.Err(); err != nil {
		return nil, util.NewIOError("read input records", path, err)
	}
	return valid, nil
}

func (t *Transformer) reject(summary *Summary, path string, line int, raw []byte, reason string) {
	summary.Rejected++
	summary.RejectReasons[reason]++
	if len(summary.RejectSamples) < rejectSampleCap {
		summary.RejectSamples = append(summary.RejectSamples, fmt.Sprintf("%s:%d: %s", path, line, raw))
	}
	t.logger.Debug("record rejected",
		zap.String("file", path),
		zap.Int("line", line),
		zap.String("reason", reason))
}

// rejectReason keys the tally by the offending field when known.
func rejectReason(err error) string {
	if pe, ok := util.AsPipelineError(err); ok {
		if field, ok := pe.Details["field"].(string); ok {
			return field
		}
	}
	return "schema"
}

// partition groups validated records by market. Assignment is a pure
// function of the record's own market value; input order is preserved
// within each group.
func partition(tickets []schema.Ticket) map[string][]schema.Ticket {
	groups := make(map[string][]schema.Ticket)
	for _, t := range tickets {
		groups[t.Market] = append(groups[t.Market], t)
	}
	return groups
}
