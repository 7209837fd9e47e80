package ledger

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"declascan/constants"
	"declascan/internal/flatten"
)

func newLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := New(dir, nil)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l, dir
}

func sampleEntry(id string) Entry {
	return Entry{
		ID:          id,
		Filename:    id + ".pdf",
		Date:        time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
		Status:      constants.StatusSuccess,
		FieldsFound: 30,
		TotalFields: 45,
		JSONPath:    "DI_20250612_" + id + ".json",
		CSVPath:     "DI_20250612_" + id + ".csv",
	}
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	l, _ := newLedger(t)

	for _, id := range []string{"first", "second", "third"} {
		if err := l.AppendStructured(sampleEntry(id)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	got := l.Recent(10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"third", "second", "first"} {
		if got[i].ID != want {
			t.Errorf("entry[%d].ID = %s, want %s", i, got[i].ID, want)
		}
	}

	if got := l.Recent(2); len(got) != 2 || got[0].ID != "third" || got[1].ID != "second" {
		t.Errorf("Recent(2) = %v, want [third second]", got)
	}
}

func TestRecentOnAbsentStore(t *testing.T) {
	l, _ := newLedger(t)
	got := l.Recent(5)
	if got == nil || len(got) != 0 {
		t.Errorf("Recent on absent store = %v, want non-nil empty slice", got)
	}
}

func TestRecentOnCorruptStore(t *testing.T) {
	l, dir := newLedger(t)
	if err := os.WriteFile(filepath.Join(dir, structuredFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := l.Recent(5); len(got) != 0 {
		t.Errorf("Recent on corrupt store = %v, want empty", got)
	}
}

func TestAppendAfterCorruptionStartsFresh(t *testing.T) {
	l, dir := newLedger(t)
	if err := os.WriteFile(filepath.Join(dir, structuredFile), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := l.AppendStructured(sampleEntry("a")); err != nil {
		t.Fatalf("append over corrupt store: %v", err)
	}
	got := l.Recent(10)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Recent = %v, want the single fresh entry", got)
	}
}

func TestStructuredStoreIsValidJSONArray(t *testing.T) {
	l, _ := newLedger(t)
	if err := l.AppendStructured(sampleEntry("a")); err != nil {
		t.Fatal(err)
	}
	if err := l.AppendStructured(sampleEntry("b")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(l.StructuredPath())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("store is not a JSON array of entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("on-disk order = %v, want append order [a b]", entries)
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	l, _ := newLedger(t)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- l.AppendStructured(sampleEntry(fmt.Sprintf("id-%03d", i)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent append: %v", err)
		}
	}

	got := l.Recent(n)
	if len(got) != n {
		t.Fatalf("Recent(%d) returned %d entries, want %d", n, len(got), n)
	}
	seen := make(map[string]bool, n)
	for _, e := range got {
		if seen[e.ID] {
			t.Errorf("duplicate entry %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func record(pairs ...string) *flatten.Record {
	rec := flatten.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Put(pairs[i], pairs[i+1])
	}
	return rec
}

func TestTabularHeaderFrozenAtFirstWrite(t *testing.T) {
	l, _ := newLedger(t)

	if err := l.AppendTabular(record("extraction_id", "a", "declaration_number", "4521")); err != nil {
		t.Fatalf("first append: %v", err)
	}
	// Second row: one extra key, one missing key.
	if err := l.AppendTabular(record("extraction_id", "b", "surprise_column", "x")); err != nil {
		t.Fatalf("second append: %v", err)
	}

	rows, err := l.TabularSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	wantHeader := []string{"extraction_id", "declaration_number"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "a" || rows[1][1] != "4521" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "b" || rows[2][1] != "" {
		t.Errorf("row 2 = %v, want missing column blank and extra column dropped", rows[2])
	}
}

func TestTabularHeaderReadBackAfterRestart(t *testing.T) {
	l1, dir := newLedger(t)
	if err := l1.AppendTabular(record("extraction_id", "a", "total", "1")); err != nil {
		t.Fatal(err)
	}

	// Fresh ledger over the same directory must adopt the existing header,
	// not derive a new one from the incoming row.
	l2, err := New(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := l2.AppendTabular(record("total", "2", "extraction_id", "b")); err != nil {
		t.Fatal(err)
	}

	rows, err := l2.TabularSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[2][0] != "b" || rows[2][1] != "2" {
		t.Errorf("row 2 = %v, want values projected onto the original header order", rows[2])
	}
}

func TestHeaderNotFrozenByFailedFirstAppend(t *testing.T) {
	l, _ := newLedger(t)

	// Resolve the column set as the first append would, then pretend the
	// write failed before the header row reached disk.
	l.mu.Lock()
	cols, created, err := l.columnsLocked(record("extraction_id", "a"))
	l.mu.Unlock()
	if err != nil || !created {
		t.Fatalf("cols=%v created=%t err=%v", cols, created, err)
	}
	if l.columns != nil {
		t.Fatal("column set frozen before the header row was written")
	}

	// The next append owns the header: its own keys, written to disk.
	if err := l.AppendTabular(record("status", "ok", "total", "1")); err != nil {
		t.Fatal(err)
	}
	rows, err := l.TabularSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "status" || rows[0][1] != "total" {
		t.Errorf("header = %v, want the successful append's keys", rows[0])
	}
	if rows[1][0] != "ok" || rows[1][1] != "1" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestTabularStoreCarriesBOM(t *testing.T) {
	l, _ := newLedger(t)
	if err := l.AppendTabular(record("extraction_id", "a")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(l.TabularPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), utf8bom) {
		t.Error("tabular store missing UTF-8 BOM")
	}
	// The BOM must not leak into the parsed header.
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8bom)))
	header, err := r.Read()
	if err != nil || header[0] != "extraction_id" {
		t.Errorf("header = %v (err %v), want clean extraction_id", header, err)
	}
}

func TestTabularSnapshotAbsentStore(t *testing.T) {
	l, _ := newLedger(t)
	rows, err := l.TabularSnapshot()
	if err != nil {
		t.Fatalf("snapshot of absent store: %v", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
}

func TestConcurrentTabularAppendsSingleHeader(t *testing.T) {
	l, _ := newLedger(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := record("extraction_id", fmt.Sprintf("id-%02d", i), "status", "success")
			if err := l.AppendTabular(rec); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	rows, err := l.TabularSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(rows) != n+1 {
		t.Fatalf("rows = %d, want one header + %d rows", len(rows), n)
	}
	for i, row := range rows[1:] {
		if row[0] == "extraction_id" {
			t.Errorf("row %d repeats the header", i+1)
		}
	}
}
