package schema

import (
	"fmt"
	"regexp"

	"declascan/internal/common"
)

// Rule is one ordered pattern-matching strategy for a field. A rule with a
// capture group yields group 1; a rule without one yields the whole match.
// Rules tagged Overfit only match one known historical value and are
// surfaced by Vet for review.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Overfit bool   `yaml:"overfit,omitempty"`
}

// FieldDef is a named slot in the schema with its ordered rule list.
type FieldDef struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Rules []Rule `yaml:"rules"`
}

// Section groups related fields. Section order and field order are part of
// the schema contract: they drive result traversal and flattened key order.
type Section struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// Schema is the full declarative rule table: ordered sections of ordered fields.
type Schema struct {
	Version  string    `yaml:"version"`
	Sections []Section `yaml:"sections"`
}

// Validate checks structural invariants: non-empty names, unique section
// names, unique field names within a section, at least one rule per field.
func (s *Schema) Validate() error {
	if len(s.Sections) == 0 {
		return common.NewAppError("SCHEMA_EMPTY", "schema declares no sections", common.ErrValidation)
	}
	seenSections := make(map[string]struct{}, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.Name == "" {
			return common.NewAppError("SCHEMA_SECTION_NAME", "section with empty name", common.ErrValidation)
		}
		if _, dup := seenSections[sec.Name]; dup {
			return common.NewAppError("SCHEMA_SECTION_DUP", fmt.Sprintf("duplicate section %q", sec.Name), common.ErrValidation)
		}
		seenSections[sec.Name] = struct{}{}

		if len(sec.Fields) == 0 {
			return common.NewAppError("SCHEMA_SECTION_EMPTY", fmt.Sprintf("section %q declares no fields", sec.Name), common.ErrValidation)
		}
		seenFields := make(map[string]struct{}, len(sec.Fields))
		for _, f := range sec.Fields {
			if f.Name == "" {
				return common.NewAppError("SCHEMA_FIELD_NAME", fmt.Sprintf("section %q has a field with empty name", sec.Name), common.ErrValidation)
			}
			if _, dup := seenFields[f.Name]; dup {
				return common.NewAppError("SCHEMA_FIELD_DUP", fmt.Sprintf("duplicate field %q in section %q", f.Name, sec.Name), common.ErrValidation)
			}
			seenFields[f.Name] = struct{}{}
			if len(f.Rules) == 0 {
				return common.NewAppError("SCHEMA_FIELD_NO_RULES", fmt.Sprintf("field %s.%s declares no rules", sec.Name, f.Name), common.ErrValidation)
			}
		}
	}
	return nil
}

// CompiledRule carries the source rule plus its compiled pattern. A rule
// whose pattern does not compile keeps Err set and is treated as a
// non-match by the extractor; it never aborts extraction.
type CompiledRule struct {
	Rule
	Re  *regexp.Regexp
	Err error
}

// CompiledField is a FieldDef with its rules compiled.
type CompiledField struct {
	Section string
	Name    string
	Label   string
	Rules   []CompiledRule
}

// Qualified returns the fully-qualified "section.field" name.
func (f *CompiledField) Qualified() string {
	return f.Section + "." + f.Name
}

// CompiledSection is a Section with its fields compiled.
type CompiledSection struct {
	Name   string
	Fields []CompiledField
}

// Compiled is a Schema ready for extraction. It is immutable after Compile
// and safe for concurrent use.
type Compiled struct {
	Version  string
	Sections []CompiledSection
}

// matchFlags makes every rule case-insensitive with '.' spanning newlines
// and '^'/'$' matching line boundaries. Declaration text arrives as one
// blob with embedded newlines; field values regularly straddle them.
const matchFlags = "(?ims)"

// Compile validates the schema and compiles every rule. Individual rule
// compile failures are recorded on the rule, not returned: a single bad
// pattern in a large schema must not take the whole table down.
func (s *Schema) Compile() (*Compiled, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := &Compiled{Version: s.Version, Sections: make([]CompiledSection, 0, len(s.Sections))}
	for _, sec := range s.Sections {
		cs := CompiledSection{Name: sec.Name, Fields: make([]CompiledField, 0, len(sec.Fields))}
		for _, f := range sec.Fields {
			cf := CompiledField{
				Section: sec.Name,
				Name:    f.Name,
				Label:   f.Label,
				Rules:   make([]CompiledRule, 0, len(f.Rules)),
			}
			for _, r := range f.Rules {
				cr := CompiledRule{Rule: r}
				cr.Re, cr.Err = regexp.Compile(matchFlags + r.Pattern)
				cf.Rules = append(cf.Rules, cr)
			}
			cs.Fields = append(cs.Fields, cf)
		}
		c.Sections = append(c.Sections, cs)
	}
	return c, nil
}

// TotalFields returns the number of fields declared across all sections.
func (c *Compiled) TotalFields() int {
	n := 0
	for _, sec := range c.Sections {
		n += len(sec.Fields)
	}
	return n
}
