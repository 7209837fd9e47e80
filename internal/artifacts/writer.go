// Package artifacts writes the per-document output files (JSON + CSV) that
// the history dashboard links for download. Artifacts are job-scoped and
// immutable; the cross-document history lives in the ledger.
package artifacts

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"declascan/internal/extract"
	"declascan/internal/flatten"
)

const utf8bom = "\ufeff"

// Writer persists per-document artifacts under a single output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir, logger: logger}, nil
}

// Write persists the JSON and CSV artifacts for one extracted document and
// returns their file names (not paths — names are what history entries link).
func (w *Writer) Write(id string, res *extract.Result, stats *extract.Statistics) (jsonName, csvName string, err error) {
	base := fmt.Sprintf("DI_%s_%s", time.Now().Format("20060102"), shortID(id))
	jsonName = base + ".json"
	csvName = base + ".csv"

	if err := w.writeJSON(jsonName, res, stats); err != nil {
		return "", "", err
	}
	if err := w.writeCSV(csvName, res); err != nil {
		return "", "", err
	}
	w.logger.Debug("artifacts written", "json", jsonName, "csv", csvName)
	return jsonName, csvName, nil
}

// Path resolves an artifact name to its on-disk path, rejecting anything
// that is not a bare file name.
func (w *Writer) Path(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	p := filepath.Join(w.dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("artifact %s: %w", name, err)
	}
	return p, nil
}

func (w *Writer) writeJSON(name string, res *extract.Result, stats *extract.Statistics) error {
	// The result marshals its own ordered object; statistics ride along
	// under a reserved key, as dashboards expect.
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(body[:len(body)-1]) // open the result object back up
	if len(res.Sections) > 0 {
		buf.WriteByte(',')
	}
	buf.WriteString(`"_statistics":`)
	buf.Write(statsJSON)
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("format artifact: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write json artifact: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, res *extract.Result) error {
	rec := flatten.Flatten(res.Nested())

	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("create csv artifact: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(utf8bom); err != nil {
		return fmt.Errorf("write csv artifact: %w", err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(rec.Keys()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.Write(rec.Values(rec.Keys())); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv artifact: %w", err)
	}
	return f.Close()
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
