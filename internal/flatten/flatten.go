// Package flatten projects nested section/field mappings onto single-level
// records for tabular storage. Key order follows the traversal order of the
// source, so flattened columns track schema declaration order.
package flatten

import "fmt"

// Sep joins nesting levels in flattened keys. Changing it is a breaking
// change for every existing tabular store.
const Sep = "_"

// Pair is one key with either a string leaf or a nested Node.
type Pair struct {
	Key   string
	Value any
}

// Node is an ordered nested mapping. Go maps do not preserve insertion
// order, so nested results are represented as pair slices.
type Node []Pair

// Record is an ordered flat key→value mapping.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Put sets a key. A key keeps its original position when overwritten.
func (r *Record) Put(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (r *Record) Keys() []string {
	return r.keys
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Values returns the values for the given keys, blank for keys the record
// does not carry. Used to project a record onto a frozen column set.
func (r *Record) Values(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = r.values[k]
	}
	return out
}

// Flatten converts a nested Node into a Record whose keys join every
// nesting level with Sep. Depth is unbounded: adding a nested sub-group to
// the schema needs no flattener change.
func Flatten(n Node) *Record {
	rec := NewRecord()
	flattenInto("", n, rec)
	return rec
}

func flattenInto(prefix string, n Node, rec *Record) {
	for _, p := range n {
		key := p.Key
		if prefix != "" {
			key = prefix + Sep + p.Key
		}
		switch v := p.Value.(type) {
		case Node:
			flattenInto(key, v, rec)
		case string:
			rec.Put(key, v)
		default:
			rec.Put(key, fmt.Sprint(v))
		}
	}
}
