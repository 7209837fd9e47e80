// Package pipeline coordinates one document's trip through the system:
// text acquisition, schema extraction, artifact output, ledger append.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"declascan/constants"
	"declascan/internal/artifacts"
	"declascan/internal/extract"
	"declascan/internal/flatten"
	"declascan/internal/ledger"
	"declascan/internal/schema"
	"declascan/internal/textsource"
)

// Meta columns prepended to every tabular ledger row, before the flattened
// field columns. Part of the frozen tabular header.
const (
	colExtractionID = "extraction_id"
	colExtractedAt  = "extracted_at"
	colSourceFile   = "source_file"
)

// Outcome is the per-document result reported to the caller. Every
// processed document yields exactly one Outcome and one ledger entry,
// whether it succeeded or failed.
type Outcome struct {
	ID       string                `json:"id"`
	Filename string                `json:"filename"`
	Status   constants.EntryStatus `json:"status"`
	Stats    *extract.Statistics   `json:"stats,omitempty"`
	JSONName string                `json:"json_path,omitempty"`
	CSVName  string                `json:"csv_path,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// Processor runs the extraction pipeline for single documents.
type Processor struct {
	Logger    *slog.Logger
	Source    *textsource.Resolver
	Schema    *schema.Compiled
	Engine    *extract.Engine
	Artifacts *artifacts.Writer
	Ledger    *ledger.Ledger
}

func NewProcessor(
	logger *slog.Logger,
	src *textsource.Resolver,
	sch *schema.Compiled,
	eng *extract.Engine,
	art *artifacts.Writer,
	led *ledger.Ledger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Source: src, Schema: sch, Engine: eng, Artifacts: art, Ledger: led}
}

// ProcessFile handles one document end to end. A document-level failure
// (unreadable source, artifact write failure) becomes an error Outcome with
// its own ledger entry; it never aborts the caller's batch. The returned
// error is non-nil only when the ledger append itself failed — lost audit
// data the caller must not ignore.
func (p *Processor) ProcessFile(ctx context.Context, path, originalName string) (Outcome, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	text, err := p.Source.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("pipeline.textsource.failed", "id", id, "file", originalName, "error", err)
		return p.recordFailure(id, originalName, now, err)
	}

	res, stats := p.Engine.ExtractDocument(text, p.Schema)
	p.Logger.Info("pipeline.extract.ok",
		"id", id,
		"file", originalName,
		"extracted", stats.ExtractedFields,
		"total", stats.TotalFields,
		"rate", stats.ExtractionRate,
	)

	jsonName, csvName, err := p.Artifacts.Write(id, res, stats)
	if err != nil {
		p.Logger.Error("pipeline.artifacts.failed", "id", id, "file", originalName, "error", err)
		return p.recordFailure(id, originalName, now, err)
	}

	entry := ledger.Entry{
		ID:          id,
		Filename:    originalName,
		Date:        now,
		Status:      constants.StatusSuccess,
		FieldsFound: stats.ExtractedFields,
		TotalFields: stats.TotalFields,
		JSONPath:    jsonName,
		CSVPath:     csvName,
	}
	if err := p.Ledger.AppendStructured(entry); err != nil {
		return Outcome{}, fmt.Errorf("append structured history: %w", err)
	}
	if err := p.Ledger.AppendTabular(p.tabularRow(id, originalName, now, res)); err != nil {
		return Outcome{}, fmt.Errorf("append tabular history: %w", err)
	}

	return Outcome{
		ID:       id,
		Filename: originalName,
		Status:   constants.StatusSuccess,
		Stats:    stats,
		JSONName: jsonName,
		CSVName:  csvName,
	}, nil
}

// recordFailure writes the error ledger entry owed for a failed document.
func (p *Processor) recordFailure(id, originalName string, now time.Time, cause error) (Outcome, error) {
	entry := ledger.Entry{
		ID:       id,
		Filename: originalName,
		Date:     now,
		Status:   constants.StatusError,
		ErrorMsg: cause.Error(),
	}
	if err := p.Ledger.AppendStructured(entry); err != nil {
		return Outcome{}, fmt.Errorf("append error history: %w", err)
	}
	return Outcome{
		ID:       id,
		Filename: originalName,
		Status:   constants.StatusError,
		Error:    cause.Error(),
	}, nil
}

// tabularRow builds one tabular ledger row: stable meta columns first, then
// the flattened extraction result in schema order.
func (p *Processor) tabularRow(id, originalName string, now time.Time, res *extract.Result) *flatten.Record {
	row := flatten.NewRecord()
	row.Put(colExtractionID, id)
	row.Put(colExtractedAt, now.Format("2006-01-02 15:04:05"))
	row.Put(colSourceFile, originalName)
	flat := flatten.Flatten(res.Nested())
	for _, k := range flat.Keys() {
		v, _ := flat.Get(k)
		row.Put(k, v)
	}
	return row
}
