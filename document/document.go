// Package document provides a concrete document type: an ordered set of
// named fields compiled to an object schema and registered as a shared
// definition, usable as the target of document references.
package document

import (
	"fmt"
	"iter"

	"github.com/chhabrakadabra/jsl/field"
)

// Config describes a document. Fields are ordered; declaration order is
// the property, required-list, and traversal order. Module is the
// namespace used to disambiguate name lookups.
type Config struct {
	Name                 string
	Module               string
	Title                string
	Description          string
	AdditionalProperties any
	Fields               []field.Prop
}

// Document implements field.Document. It is built once by New and is
// immutable afterwards.
type Document struct {
	name                 string
	module               string
	title                string
	description          string
	additionalProperties any
	fields               []field.Prop
}

// New builds a document and performs the owner-binding pass: every
// unowned document reference in the field trees gets this document as
// its owner, so self references and namespace-qualified lookups resolve.
func New(cfg Config) (*Document, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("document must have a name")
	}
	if err := checkPolicy(cfg.AdditionalProperties); err != nil {
		return nil, fmt.Errorf("document %q additionalProperties: %w", cfg.Name, err)
	}
	d := &Document{
		name:                 cfg.Name,
		module:               cfg.Module,
		title:                cfg.Title,
		description:          cfg.Description,
		additionalProperties: cfg.AdditionalProperties,
		fields:               cfg.Fields,
	}
	trees := make([]field.Field, 0, len(d.fields)+1)
	for _, p := range d.fields {
		trees = append(trees, p.Field)
	}
	if ap, ok := d.additionalProperties.(field.Field); ok {
		trees = append(trees, ap)
	}
	for _, tree := range trees {
		// Not through references: each document binds only its own tree.
		for f := range tree.Walk(false, nil) {
			if ref, ok := f.(*field.DocumentField); ok {
				ref.SetOwner(d)
			}
		}
	}
	return d, nil
}

func checkPolicy(v any) error {
	switch v.(type) {
	case nil, bool, field.Field:
		return nil
	}
	return fmt.Errorf("must be a bool or a Field, got %T", v)
}

func (d *Document) Name() string   { return d.name }
func (d *Document) Module() string { return d.module }

// Fields returns the document's fields in declaration order.
func (d *Document) Fields() []field.Prop { return d.fields }

// DefinitionID is the key the document's schema is stored under in the
// definitions mapping.
func (d *Document) DefinitionID() string {
	if d.module == "" {
		return d.name
	}
	return d.module + "." + d.name
}

// Namespace implements field.Document.
func (d *Document) Namespace() string { return d.module }

// Compile builds the document's object schema, registers it in the
// returned delta under DefinitionID, and returns a pointer fragment.
// The id is marked in flight in a cloned accumulated view before any
// field compiles, so a reference back to this document resolves to a
// pointer instead of recursing.
func (d *Document) Compile(defs field.Definitions) (field.Definitions, field.Schema, error) {
	id := d.DefinitionID()
	if _, ok := defs[id]; ok {
		return field.Definitions{}, field.Ref(id), nil
	}

	acc := cloneDefs(defs)
	acc[id] = nil // in flight; references only test key presence
	delta := field.Definitions{}

	props := field.Schema{}
	var required []string
	for _, p := range d.fields {
		fd, fs, err := p.Field.Compile(acc)
		if err != nil {
			return nil, nil, err
		}
		mergeDefs(acc, fd)
		mergeDefs(delta, fd)
		props[p.Name] = fs
		if p.Field.IsRequired() {
			required = append(required, p.Name)
		}
	}

	schema := field.Schema{
		"type":       "object",
		"properties": props,
	}
	if d.title != "" {
		schema["title"] = d.title
	}
	if d.description != "" {
		schema["description"] = d.description
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	switch ap := d.additionalProperties.(type) {
	case nil:
	case bool:
		schema["additionalProperties"] = ap
	case field.Field:
		apd, aps, err := ap.Compile(acc)
		if err != nil {
			return nil, nil, err
		}
		mergeDefs(delta, apd)
		schema["additionalProperties"] = aps
	}

	delta[id] = schema
	return delta, field.Ref(id), nil
}

// Walk yields the document's fields depth-first in declaration order.
// The document itself is not a field and is not yielded.
func (d *Document) Walk(through bool, visited field.Visited) iter.Seq2[field.Field, error] {
	return func(yield func(field.Field, error) bool) {
		for _, p := range d.fields {
			for f, err := range p.Field.Walk(through, visited) {
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

// Schema compiles the document into a standalone schema document with
// its definitions attached.
func (d *Document) Schema() (field.Schema, error) {
	defs, schema, err := d.Compile(nil)
	if err != nil {
		return nil, err
	}
	if len(defs) > 0 {
		schema["definitions"] = defs
	}
	return schema, nil
}

func cloneDefs(defs field.Definitions) field.Definitions {
	res := make(field.Definitions, len(defs)+1)
	for k, v := range defs {
		res[k] = v
	}
	return res
}

func mergeDefs(dst, src field.Definitions) {
	for k, v := range src {
		dst[k] = v
	}
}
