// Package ledger is the append-only provenance store shared by every
// extraction worker. It keeps two synchronized projections of the same
// history: a structured JSON sequence for programmatic consumption and a
// tabular CSV for spreadsheets. Both stores are updated for the same
// logical event, so a single mutex guards them jointly; the structured
// rewrite additionally goes through a temp file + rename so no reader ever
// observes a half-written store.
package ledger

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"declascan/internal/flatten"
)

const (
	structuredFile = "GLOBAL_HISTORY.json"
	tabularFile    = "GLOBAL_HISTORY.csv"
)

// Typed load outcomes. Callers that need to distinguish a fresh store from
// a damaged one check these with errors.Is.
var (
	ErrStoreAbsent  = errors.New("ledger: store absent")
	ErrStoreCorrupt = errors.New("ledger: store corrupt")
)

// utf8bom keeps the CSV openable in Excel with accented headers intact.
const utf8bom = "\ufeff"

// Ledger owns the two master history files and their synchronization.
type Ledger struct {
	mu             sync.Mutex
	structuredPath string
	tabularPath    string
	columns        []string // tabular header, frozen at first write
	logger         *slog.Logger
}

// New creates a ledger rooted at dir, creating dir if needed. Neither store
// has to pre-exist; both are treated as empty until first append.
func New(dir string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &Ledger{
		structuredPath: filepath.Join(dir, structuredFile),
		tabularPath:    filepath.Join(dir, tabularFile),
		logger:         logger,
	}, nil
}

func (l *Ledger) StructuredPath() string { return l.structuredPath }
func (l *Ledger) TabularPath() string    { return l.tabularPath }

// AppendStructured appends one entry to the structured sequence. The whole
// read-modify-rewrite runs inside the ledger lock; an absent or corrupt
// store starts a fresh sequence rather than failing the append. Write
// failures propagate — a lost audit row is never swallowed.
func (l *Ledger) AppendStructured(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.loadLocked()
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreAbsent):
			// first append
		case errors.Is(err, ErrStoreCorrupt):
			l.logger.Warn("structured store corrupt, starting fresh sequence",
				"path", l.structuredPath, "error", err)
		default:
			l.logger.Warn("structured store unreadable, starting fresh sequence",
				"path", l.structuredPath, "error", err)
		}
		entries = nil
	}
	entries = append(entries, e)
	return l.rewriteLocked(entries)
}

// Recent returns the n most recent entries, newest first. Any load failure
// yields an empty slice: the ledger is a best-effort audit trail, and a
// damaged store must not fail dashboard reads.
func (l *Ledger) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.loadLocked()
	if err != nil {
		if !errors.Is(err, ErrStoreAbsent) {
			l.logger.Warn("structured store unreadable", "path", l.structuredPath, "error", err)
		}
		return []Entry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}

// AppendTabular appends one row to the tabular store. The column set is
// fixed by the first row ever written: later rows are projected onto it,
// unknown keys dropped, missing keys blank. Header write and row write sit
// under the same lock so concurrent appends cannot interleave rows or
// duplicate the header.
func (l *Ledger) AppendTabular(rec *flatten.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cols, created, err := l.columnsLocked(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(l.tabularPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tabular store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if created {
		if _, err := f.WriteString(utf8bom); err != nil {
			return fmt.Errorf("write tabular bom: %w", err)
		}
		if err := w.Write(cols); err != nil {
			return fmt.Errorf("write tabular header: %w", err)
		}
	}
	if err := w.Write(rec.Values(cols)); err != nil {
		return fmt.Errorf("write tabular row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush tabular store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tabular store: %w", err)
	}
	// Freeze the column set only once the header row is durably on disk;
	// a failed first append must not pin columns the store never got.
	l.columns = cols
	return nil
}

// TabularSnapshot returns the full tabular store, header row first. An
// absent store yields no rows and no error.
func (l *Ledger) TabularSnapshot() ([][]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.tabularPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tabular store: %w", err)
	}
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8bom)))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: tabular: %v", ErrStoreCorrupt, err)
	}
	return rows, nil
}

// columnsLocked resolves the frozen column set, reading the existing header
// or deriving one from rec when the store does not exist yet. The second
// return reports whether the store must be created (header still owed).
func (l *Ledger) columnsLocked(rec *flatten.Record) ([]string, bool, error) {
	if l.columns != nil {
		return l.columns, false, nil
	}
	data, err := os.ReadFile(l.tabularPath)
	if errors.Is(err, fs.ErrNotExist) {
		return append([]string(nil), rec.Keys()...), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read tabular header: %w", err)
	}
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8bom)))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, false, fmt.Errorf("%w: tabular header: %v", ErrStoreCorrupt, err)
	}
	l.columns = header
	return l.columns, false, nil
}

// loadLocked reads the full structured sequence, distinguishing an absent
// store from a corrupt one. Callers hold the lock.
func (l *Ledger) loadLocked() ([]Entry, error) {
	data, err := os.ReadFile(l.structuredPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrStoreAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("read structured store: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	return entries, nil
}

// rewriteLocked persists the full sequence atomically: write a sibling temp
// file, then rename over the store. Readers either see the old sequence or
// the new one, never a torn write. Callers hold the lock.
func (l *Ledger) rewriteLocked(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structured store: %w", err)
	}
	dir := filepath.Dir(l.structuredPath)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, l.structuredPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace structured store: %w", err)
	}
	return nil
}
