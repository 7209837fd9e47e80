package extract

import (
	"bytes"
	"encoding/json"

	"declascan/internal/flatten"
)

// FieldValue is one extracted field. An absent field carries "".
type FieldValue struct {
	Name  string
	Value string
}

// SectionValues holds one section's fields in schema order.
type SectionValues struct {
	Name   string
	Fields []FieldValue
}

// Result is the nested section→field→value output of one extraction pass.
// It carries exactly one entry per field declared in the schema at
// extraction time and preserves schema declaration order.
type Result struct {
	Sections []SectionValues
}

// Get returns the value recorded for section.field.
func (r *Result) Get(section, field string) (string, bool) {
	for _, s := range r.Sections {
		if s.Name != section {
			continue
		}
		for _, f := range s.Fields {
			if f.Name == field {
				return f.Value, true
			}
		}
	}
	return "", false
}

// Nested projects the result as an ordered nested node for flattening.
func (r *Result) Nested() flatten.Node {
	out := make(flatten.Node, 0, len(r.Sections))
	for _, s := range r.Sections {
		sec := make(flatten.Node, 0, len(s.Fields))
		for _, f := range s.Fields {
			sec = append(sec, flatten.Pair{Key: f.Name, Value: f.Value})
		}
		out = append(out, flatten.Pair{Key: s.Name, Value: sec})
	}
	return out
}

// MarshalJSON renders the nested mapping with sections and fields in schema
// order. encoding/json sorts map keys, which would scramble the layout
// consumers see, so the object is built by hand.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range r.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, f := range s.Fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, f.Name); err != nil {
				return nil, err
			}
			v, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
