package transform

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// resolveInputs expands the configured input locations into a flat,
// ordered list of record files. Directories are globbed for .jsonl and
// .jsonl.gz entries, sorted by name.
func resolveInputs(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, util.NewIOError("stat input", in, err)
		}
		if !info.IsDir() {
			files = append(files, in)
			continue
		}
		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, util.NewIOError("read input directory", in, err)
		}
		var matched []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ".jsonl") || strings.HasSuffix(name, ".jsonl.gz") {
				matched = append(matched, filepath.Join(in, name))
			}
		}
		sort.Strings(matched)
		files = append(files, matched...)
	}
	if len(files) == 0 {
		return nil, util.NewConfigError("no input record files found", map[string]any{"parameter": "inputs"})
	}
	return files, nil
}

// recordSource wraps a record file, transparently decoding gzip.
type recordSource struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

func openSource(path string) (*recordSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.NewIOError("open input", path, err)
	}
	src := &recordSource{Reader: f, file: f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, util.NewIOError("open gzip input", path, err)
		}
		src.Reader = gz
		src.gz = gz
	}
	return src, nil
}

func (s *recordSource) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	return s.file.Close()
}
