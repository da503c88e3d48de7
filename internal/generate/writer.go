package generate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// WriteBatches writes tickets as JSON-Lines files under dir, at most
// batchSize records per file, in generation order. Files are named
// tickets_<label>_NNNN.jsonl (plus .gz when compress is set); the label
// is caller-supplied so batch boundaries never affect record content.
// Returns the written file paths in order.
func WriteBatches(tickets []schema.Ticket, dir, label string, batchSize int, compress bool) ([]string, error) {
	if batchSize <= 0 {
		return nil, util.NewConfigError("batch_size must be positive", map[string]any{"parameter": "batch_size", "value": batchSize})
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, util.NewIOError("create output directory", dir, err)
	}

	var paths []string
	for start := 0; start < len(tickets); start += batchSize {
		end := start + batchSize
		if end > len(tickets) {
			end = len(tickets)
		}
		name := fmt.Sprintf("tickets_%s_%04d.jsonl", label, len(paths))
		if compress {
			name += ".gz"
		}
		path := filepath.Join(dir, name)
		if err := writeBatch(path, tickets[start:end], compress); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeBatch(path string, tickets []schema.Ticket, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return util.NewIOError("create batch file", path, err)
	}
	defer f.Close()

	var w *bufio.Writer
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = bufio.NewWriter(gz)
	} else {
		w = bufio.NewWriter(f)
	}

	enc := json.NewEncoder(w)
	for _, t := range tickets {
		if err := enc.Encode(t); err != nil {
			return util.NewIOError("encode ticket record", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return util.NewIOError("flush batch file", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return util.NewIOError("finalize gzip stream", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return util.NewIOError("close batch file", path, err)
	}
	return nil
}
