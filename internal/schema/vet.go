package schema

import "fmt"

// FindingKind classifies a Vet finding.
type FindingKind string

const (
	FindingOverfit      FindingKind = "OVERFIT_RULE"  // rule matches one known historical value
	FindingBadPattern   FindingKind = "BAD_PATTERN"   // rule failed to compile; treated as non-match
	FindingMultiCapture FindingKind = "MULTI_CAPTURE" // more than one capture group; only group 1 is used
)

// Finding is one advisory result from vetting a compiled schema.
type Finding struct {
	Kind    FindingKind
	Field   string // fully-qualified section.field
	RuleIdx int
	Pattern string
	Detail  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s rule[%d] %q: %s", f.Kind, f.Field, f.RuleIdx, f.Pattern, f.Detail)
}

// Vet inspects a compiled schema and reports rules that need operator
// review. Findings are advisory: the schema stays usable, and flagged rules
// keep their place in the fallback order.
func Vet(c *Compiled) []Finding {
	var out []Finding
	for _, sec := range c.Sections {
		for _, f := range sec.Fields {
			for i, r := range f.Rules {
				switch {
				case r.Err != nil:
					out = append(out, Finding{
						Kind:    FindingBadPattern,
						Field:   f.Qualified(),
						RuleIdx: i,
						Pattern: r.Pattern,
						Detail:  r.Err.Error(),
					})
				case r.Overfit:
					out = append(out, Finding{
						Kind:    FindingOverfit,
						Field:   f.Qualified(),
						RuleIdx: i,
						Pattern: r.Pattern,
						Detail:  "matches a single historical value; review before relying on it",
					})
				case r.Re.NumSubexp() > 1:
					out = append(out, Finding{
						Kind:    FindingMultiCapture,
						Field:   f.Qualified(),
						RuleIdx: i,
						Pattern: r.Pattern,
						Detail:  fmt.Sprintf("%d capture groups declared, only the first is used", r.Re.NumSubexp()),
					})
				}
			}
		}
	}
	return out
}
