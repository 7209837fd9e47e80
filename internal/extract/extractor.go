// Package extract applies a compiled rule schema to declaration text,
// producing a nested result plus completeness statistics. Extraction is
// pure pattern matching: no I/O, no randomness, deterministic for a given
// (schema, text) pair.
package extract

import (
	"log/slog"
	"math"

	"declascan/internal/schema"
)

// Statistics is the derived completeness report for one extraction pass.
type Statistics struct {
	TotalFields     int      `json:"total_fields"`
	ExtractedFields int      `json:"extracted_fields"`
	ExtractionRate  float64  `json:"extraction_rate"`
	MissingFields   []string `json:"missing_fields"`
}

// Engine runs schema-driven field extraction.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// ExtractField tries a field's rules in declaration order and returns the
// first normalized non-empty capture, or "" when the field is absent.
//
// A rule with a capture group yields group 1; without one, the whole match.
// A match that normalizes to "" does not win: the next rule is tried. Rules
// that failed to compile are skipped, never fatal — one bad pattern in a
// large schema must not blank a document.
func (e *Engine) ExtractField(text string, f *schema.CompiledField) string {
	for i, r := range f.Rules {
		if r.Err != nil {
			e.logger.Debug("skipping malformed rule",
				"field", f.Qualified(), "rule", i, "error", r.Err)
			continue
		}
		m := r.Re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := m[0]
		if r.Re.NumSubexp() > 0 {
			// Group 1 may not have participated in the winning alternative;
			// it is then empty and rejected below like any empty capture.
			raw = m[1]
		}
		if v := Normalize(raw); v != "" {
			return v
		}
	}
	return ""
}

// ExtractDocument runs the full schema over a text blob in one pass,
// producing the Result and its Statistics. Every declared field gets
// exactly one entry, absent ones as "".
func (e *Engine) ExtractDocument(text string, c *schema.Compiled) (*Result, *Statistics) {
	res := &Result{Sections: make([]SectionValues, 0, len(c.Sections))}
	stats := &Statistics{MissingFields: []string{}}

	for _, sec := range c.Sections {
		sv := SectionValues{Name: sec.Name, Fields: make([]FieldValue, 0, len(sec.Fields))}
		for i := range sec.Fields {
			f := &sec.Fields[i]
			stats.TotalFields++
			v := e.ExtractField(text, f)
			if v != "" {
				stats.ExtractedFields++
			} else {
				stats.MissingFields = append(stats.MissingFields, f.Qualified())
			}
			sv.Fields = append(sv.Fields, FieldValue{Name: f.Name, Value: v})
		}
		res.Sections = append(res.Sections, sv)
	}

	stats.ExtractionRate = rate(stats.ExtractedFields, stats.TotalFields)
	return res, stats
}

// rate returns extracted/total as a percentage rounded to 2 decimals,
// 0 when the schema declares no fields.
func rate(extracted, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(extracted)/float64(total)*100*100) / 100
}
