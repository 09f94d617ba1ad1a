package field

import (
	"iter"
	"maps"
	"slices"
)

// Schema is a compiled schema fragment: a mapping of JSON Schema
// constraint keywords to their values.
type Schema map[string]any

// Definitions is the shared table of named document schemas accumulated
// during a single top-level compilation, keyed by definition id.
type Definitions map[string]Schema

func (d Definitions) clone() Definitions {
	res := make(Definitions, len(d)+1)
	maps.Copy(res, d)
	return res
}

func (d Definitions) merge(o Definitions) {
	maps.Copy(d, o)
}

// Visited is the set of documents already entered during a traversal.
// It is copied, never mutated in place, so sibling branches descend
// independently.
type Visited map[Document]bool

func (v Visited) with(doc Document) Visited {
	res := make(Visited, len(v)+1)
	maps.Copy(res, v)
	res[doc] = true
	return res
}

// Field is one node in a declarative schema-definition tree.
//
// Compile turns the node into a schema fragment plus a delta of newly
// discovered named definitions. It reads defs to decide whether a
// referenced definition is already satisfied but never mutates it; the
// caller merges the returned delta into its accumulated set before
// compiling siblings, so duplicate document references compile once.
//
// Walk yields the node itself first, then its descendants depth-first in
// declaration order. Each call produces an independent sequence and the
// tree is never mutated. The error element is non-nil only when a
// document reference fails to resolve mid-walk, after which the sequence
// ends.
type Field interface {
	Compile(defs Definitions) (Definitions, Schema, error)
	Walk(throughDocuments bool, visited Visited) iter.Seq2[Field, error]
	IsRequired() bool
}

// Prop pairs a property name (or a key pattern) with its field.
type Prop struct {
	Name  string
	Field Field
}

// Base carries the attributes shared by every field variant.
//
// Default and Choices may hold either a literal value ([]any for
// Choices) or a zero-argument producer (func() any, func() []any)
// evaluated anew on every read. Producers may be side-effecting; the
// engine does not memoize them.
type Base struct {
	Required    bool
	Title       string
	Description string
	Default     any
	Choices     any
}

func (b *Base) IsRequired() bool { return b.Required }

// DefaultValue resolves the configured default, invoking a producer if
// one was supplied.
func (b *Base) DefaultValue() any {
	if fn, ok := b.Default.(func() any); ok {
		return fn()
	}
	return b.Default
}

// ChoiceValues resolves the configured choices, invoking a producer if
// one was supplied.
func (b *Base) ChoiceValues() []any {
	switch c := b.Choices.(type) {
	case []any:
		return c
	case func() []any:
		return c()
	}
	return nil
}

// mergeCommon adds the keywords shared by every variant into s. The
// enum keyword is omitted for empty choices, and default is gated on the
// configured attribute, not the produced value, so a producer returning
// nil still emits.
func (b *Base) mergeCommon(s Schema) {
	if b.Title != "" {
		s["title"] = b.Title
	}
	if b.Description != "" {
		s["description"] = b.Description
	}
	if enum := b.ChoiceValues(); len(enum) > 0 {
		// copied, so later mutation of the caller's slice cannot reach
		// an already-emitted schema
		s["enum"] = slices.Clone(enum)
	}
	if b.Default != nil {
		s["default"] = b.DefaultValue()
	}
}

// SchemaOf compiles a field tree into a standalone schema document,
// attaching any accumulated definitions under the definitions key.
func SchemaOf(f Field) (Schema, error) {
	defs, schema, err := f.Compile(nil)
	if err != nil {
		return nil, err
	}
	if len(defs) > 0 {
		schema["definitions"] = defs
	}
	return schema, nil
}

// leafSeq yields just the field itself.
func leafSeq(f Field) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		yield(f, nil)
	}
}

// walkSeq yields self, then every child subtree in order.
func walkSeq(self Field, through bool, visited Visited, children ...Field) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		if !yield(self, nil) {
			return
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			for f, err := range c.Walk(through, visited) {
				if !yield(f, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}
}

// compileChild compiles one child against the accumulated view and
// threads its delta into both the accumulator and the caller's delta.
func compileChild(acc, delta Definitions, f Field) (Schema, error) {
	d, s, err := f.Compile(acc)
	if err != nil {
		return nil, err
	}
	acc.merge(d)
	delta.merge(d)
	return s, nil
}
