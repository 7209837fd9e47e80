package extract

import (
	"encoding/json"
	"testing"

	"declascan/internal/schema"
)

func compile(t *testing.T, s *schema.Schema) *schema.Compiled {
	t.Helper()
	c, err := s.Compile()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return c
}

func oneFieldSchema(rules ...schema.Rule) *schema.Schema {
	return &schema.Schema{
		Sections: []schema.Section{
			{
				Name: "declaration",
				Fields: []schema.FieldDef{
					{Name: "number", Label: "D.I N°", Rules: rules},
				},
			},
		},
	}
}

func TestExtractScenarioMatch(t *testing.T) {
	c := compile(t, oneFieldSchema(schema.Rule{Pattern: `NUM:\s*(\d+)`}))
	eng := NewEngine(nil)

	res, stats := eng.ExtractDocument("NUM: 4521", c)

	if v, ok := res.Get("declaration", "number"); !ok || v != "4521" {
		t.Errorf("got %q (present=%t), want \"4521\"", v, ok)
	}
	if stats.TotalFields != 1 || stats.ExtractedFields != 1 {
		t.Errorf("stats = %+v, want total=1 extracted=1", stats)
	}
	if stats.ExtractionRate != 100.0 {
		t.Errorf("rate = %v, want 100.0", stats.ExtractionRate)
	}
	if len(stats.MissingFields) != 0 {
		t.Errorf("missing = %v, want none", stats.MissingFields)
	}
}

func TestExtractScenarioNoMatch(t *testing.T) {
	c := compile(t, oneFieldSchema(schema.Rule{Pattern: `NUM:\s*(\d+)`}))
	eng := NewEngine(nil)

	res, stats := eng.ExtractDocument("nothing here", c)

	if v, ok := res.Get("declaration", "number"); !ok || v != "" {
		t.Errorf("got %q (present=%t), want absent entry with empty value", v, ok)
	}
	if stats.ExtractedFields != 0 || stats.ExtractionRate != 0.0 {
		t.Errorf("stats = %+v, want extracted=0 rate=0.0", stats)
	}
	if len(stats.MissingFields) != 1 || stats.MissingFields[0] != "declaration.number" {
		t.Errorf("missing = %v, want [declaration.number]", stats.MissingFields)
	}
}

func TestFallbackOrder(t *testing.T) {
	c := compile(t, oneFieldSchema(
		schema.Rule{Pattern: `WILL_NOT_MATCH_ANYTHING_\d{9}`},
		schema.Rule{Pattern: `REF\s+(\w+)`},
	))
	eng := NewEngine(nil)

	res, _ := eng.ExtractDocument("REF ABC123", c)
	if v, _ := res.Get("declaration", "number"); v != "ABC123" {
		t.Errorf("got %q, want fallback rule capture \"ABC123\"", v)
	}
}

func TestFirstMatchWins(t *testing.T) {
	c := compile(t, oneFieldSchema(
		schema.Rule{Pattern: `NUM:\s*(\d+)`},
		schema.Rule{Pattern: `(\d+)\s*END`},
	))
	eng := NewEngine(nil)

	res, _ := eng.ExtractDocument("NUM: 111 222 END", c)
	if v, _ := res.Get("declaration", "number"); v != "111" {
		t.Errorf("got %q, want first rule's capture \"111\"", v)
	}
}

func TestEmptyNormalizationRejected(t *testing.T) {
	// First rule matches but captures only asterisks, which normalize away.
	c := compile(t, oneFieldSchema(
		schema.Rule{Pattern: `VAL(\*+)`},
		schema.Rule{Pattern: `VAL\*+\s*(\d+)`},
	))
	eng := NewEngine(nil)

	res, _ := eng.ExtractDocument("VAL** 42", c)
	if v, _ := res.Get("declaration", "number"); v != "42" {
		t.Errorf("got %q, want next rule's \"42\" after empty normalization", v)
	}
}

func TestMalformedRuleSkipped(t *testing.T) {
	c := compile(t, oneFieldSchema(
		schema.Rule{Pattern: `(?<=lookbehind)(\d+)`}, // not supported, must not abort
		schema.Rule{Pattern: `NUM:\s*(\d+)`},
	))
	eng := NewEngine(nil)

	res, stats := eng.ExtractDocument("NUM: 7", c)
	if v, _ := res.Get("declaration", "number"); v != "7" {
		t.Errorf("got %q, want \"7\" via the rule after the malformed one", v)
	}
	if stats.ExtractedFields != 1 {
		t.Errorf("extracted = %d, want 1", stats.ExtractedFields)
	}
}

func TestWholeMatchRule(t *testing.T) {
	c := compile(t, oneFieldSchema(schema.Rule{Pattern: `MARITIME`}))
	eng := NewEngine(nil)

	res, _ := eng.ExtractDocument("mode maritime total", c)
	if v, _ := res.Get("declaration", "number"); v != "maritime" {
		t.Errorf("got %q, want whole-match capture \"maritime\"", v)
	}
}

func TestMultilineCaseInsensitiveMatching(t *testing.T) {
	c := compile(t, oneFieldSchema(schema.Rule{Pattern: `Du\s*/\s*Dated\s*:?\s*(\d{2}/\d{2}/\d{4})`}))
	eng := NewEngine(nil)

	res, _ := eng.ExtractDocument("du / dated :\n 12/06/2025", c)
	if v, _ := res.Get("declaration", "number"); v != "12/06/2025" {
		t.Errorf("got %q, want capture across the newline", v)
	}
}

func TestTotalCoverageAndConsistency(t *testing.T) {
	c := schema.MustDefault()
	eng := NewEngine(nil)

	res, stats := eng.ExtractDocument("no declaration content at all", c)

	var entries int
	for _, s := range res.Sections {
		entries += len(s.Fields)
	}
	if entries != c.TotalFields() {
		t.Errorf("result has %d entries, schema declares %d", entries, c.TotalFields())
	}
	if stats.ExtractedFields+len(stats.MissingFields) != stats.TotalFields {
		t.Errorf("extracted(%d) + missing(%d) != total(%d)",
			stats.ExtractedFields, len(stats.MissingFields), stats.TotalFields)
	}
}

func TestDeterminism(t *testing.T) {
	c := schema.MustDefault()
	eng := NewEngine(nil)
	text := "D.I N° : ABC-123-456\nDevise / Currency\nEUR\nTransport mode\nMARITIME\n"

	res1, stats1 := eng.ExtractDocument(text, c)
	res2, stats2 := eng.ExtractDocument(text, c)

	b1, err := json.Marshal(res1)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b2, _ := json.Marshal(res2)
	if string(b1) != string(b2) {
		t.Error("two extractions of the same text produced different results")
	}
	if stats1.ExtractionRate != stats2.ExtractionRate || stats1.ExtractedFields != stats2.ExtractedFields {
		t.Errorf("statistics differ between runs: %+v vs %+v", stats1, stats2)
	}
}

func TestRateRounding(t *testing.T) {
	cases := []struct {
		extracted, total int
		want             float64
	}{
		{0, 0, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 1, 100},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := rate(tc.extracted, tc.total); got != tc.want {
			t.Errorf("rate(%d, %d) = %v, want %v", tc.extracted, tc.total, got, tc.want)
		}
	}
}

func TestResultJSONOrder(t *testing.T) {
	res := &Result{Sections: []SectionValues{
		{Name: "zeta", Fields: []FieldValue{{Name: "b", Value: "1"}, {Name: "a", Value: "2"}}},
		{Name: "alpha", Fields: []FieldValue{{Name: "x", Value: ""}}},
	}}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":{"b":"1","a":"2"},"alpha":{"x":""}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
