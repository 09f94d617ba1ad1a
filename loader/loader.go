// Package loader decodes declarative schema-definition files (YAML or
// JSON) into documents, registering each one so that by-name and self
// references resolve when the documents compile.
package loader

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/chhabrakadabra/jsl/debug"
	"github.com/chhabrakadabra/jsl/document"
	"github.com/chhabrakadabra/jsl/field"
	"github.com/chhabrakadabra/jsl/registry"
)

// Loader builds documents out of definition files. Env is the
// environment exposed to defaultExpr/choicesExpr expressions.
type Loader struct {
	Registry *registry.Registry
	Env      map[string]any
}

func New(reg *registry.Registry) *Loader {
	return &Loader{Registry: reg}
}

type fileSpec struct {
	Module    string     `yaml:"module"`
	Documents []*docSpec `yaml:"documents"`
}

type docSpec struct {
	Name                 string       `yaml:"name"`
	Title                string       `yaml:"title"`
	Description          string       `yaml:"description"`
	AdditionalProperties any          `yaml:"additionalProperties"`
	Fields               []*fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Default     any    `yaml:"default"`
	DefaultExpr string `yaml:"defaultExpr"`
	Choices     []any  `yaml:"choices"`
	ChoicesExpr string `yaml:"choicesExpr"`

	Pattern   string `yaml:"pattern"`
	MinLength *int   `yaml:"minLength"`
	MaxLength *int   `yaml:"maxLength"`

	MultipleOf       *float64 `yaml:"multipleOf"`
	Minimum          *float64 `yaml:"minimum"`
	Maximum          *float64 `yaml:"maximum"`
	ExclusiveMinimum bool     `yaml:"exclusiveMinimum"`
	ExclusiveMaximum bool     `yaml:"exclusiveMaximum"`

	Items           *fieldSpec   `yaml:"items"`
	Tuple           []*fieldSpec `yaml:"tuple"`
	MinItems        *int         `yaml:"minItems"`
	MaxItems        *int         `yaml:"maxItems"`
	UniqueItems     bool         `yaml:"uniqueItems"`
	AdditionalItems any          `yaml:"additionalItems"`

	Properties           []*fieldSpec `yaml:"properties"`
	PatternProperties    []*fieldSpec `yaml:"patternProperties"`
	AdditionalProperties any          `yaml:"additionalProperties"`
	MinProperties        *int         `yaml:"minProperties"`
	MaxProperties        *int         `yaml:"maxProperties"`

	Fields   []*fieldSpec `yaml:"fields"`
	Field    *fieldSpec   `yaml:"field"`
	Document string       `yaml:"document"`
}

// LoadFile reads and loads one definition file.
func (l *Loader) LoadFile(path string) ([]*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Load decodes data and returns the declared documents in order, each
// registered in the loader's registry.
func (l *Loader) Load(data []byte) ([]*document.Document, error) {
	var file fileSpec
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	docs := make([]*document.Document, 0, len(file.Documents))
	for _, ds := range file.Documents {
		doc, err := l.buildDocument(file.Module, ds)
		if err != nil {
			return nil, err
		}
		if err := l.Registry.Register(doc.Name(), doc.Module(), doc); err != nil {
			return nil, err
		}
		if debug.Loader() {
			debug.Logf("loader: registered document %s\n", doc.DefinitionID())
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (l *Loader) buildDocument(module string, ds *docSpec) (*document.Document, error) {
	props, err := l.buildProps(ds.Fields)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", ds.Name, err)
	}
	ap, err := l.buildPolicy(ds.AdditionalProperties)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", ds.Name, err)
	}
	return document.New(document.Config{
		Name:                 ds.Name,
		Module:               module,
		Title:                ds.Title,
		Description:          ds.Description,
		AdditionalProperties: ap,
		Fields:               props,
	})
}

func (l *Loader) buildProps(specs []*fieldSpec) ([]field.Prop, error) {
	props := make([]field.Prop, 0, len(specs))
	for _, fs := range specs {
		f, err := l.buildField(fs)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fs.Name, err)
		}
		props = append(props, field.Prop{Name: fs.Name, Field: f})
	}
	return props, nil
}

func (l *Loader) buildField(fs *fieldSpec) (field.Field, error) {
	base, err := l.buildBase(fs)
	if err != nil {
		return nil, err
	}
	switch fs.Type {
	case "string":
		return field.NewString(l.stringConfig(base, fs))
	case "email":
		return field.NewEmail(l.stringConfig(base, fs))
	case "uri":
		return field.NewURI(l.stringConfig(base, fs))
	case "date-time":
		return field.NewDateTime(l.stringConfig(base, fs))
	case "ipv4":
		return field.NewIPv4(l.stringConfig(base, fs))
	case "boolean":
		return &field.Boolean{Base: base}, nil
	case "number":
		return &field.Number{
			Base:             base,
			MultipleOf:       fs.MultipleOf,
			Minimum:          fs.Minimum,
			Maximum:          fs.Maximum,
			ExclusiveMinimum: fs.ExclusiveMinimum,
			ExclusiveMaximum: fs.ExclusiveMaximum,
		}, nil
	case "integer":
		return &field.Integer{Number: field.Number{
			Base:             base,
			MultipleOf:       fs.MultipleOf,
			Minimum:          fs.Minimum,
			Maximum:          fs.Maximum,
			ExclusiveMinimum: fs.ExclusiveMinimum,
			ExclusiveMaximum: fs.ExclusiveMaximum,
		}}, nil
	case "array":
		return l.buildArray(base, fs)
	case "object":
		return l.buildObject(base, fs)
	case "oneOf":
		children, err := l.buildFields(fs.Fields)
		if err != nil {
			return nil, err
		}
		return &field.OneOf{Base: base, Fields: children}, nil
	case "anyOf":
		children, err := l.buildFields(fs.Fields)
		if err != nil {
			return nil, err
		}
		return &field.AnyOf{Base: base, Fields: children}, nil
	case "allOf":
		children, err := l.buildFields(fs.Fields)
		if err != nil {
			return nil, err
		}
		return &field.AllOf{Base: base, Fields: children}, nil
	case "not":
		if fs.Field == nil {
			return nil, fmt.Errorf("not requires a field")
		}
		child, err := l.buildField(fs.Field)
		if err != nil {
			return nil, err
		}
		return &field.Not{Base: base, Field: child}, nil
	case "document":
		if fs.Document == "" {
			return nil, fmt.Errorf("document reference requires a document name")
		}
		return &field.DocumentField{Base: base, Name: fs.Document, Resolver: l.Registry}, nil
	}
	return nil, fmt.Errorf("unknown field type %q", fs.Type)
}

func (l *Loader) stringConfig(base field.Base, fs *fieldSpec) field.String {
	return field.String{
		Base:      base,
		Pattern:   fs.Pattern,
		MinLength: fs.MinLength,
		MaxLength: fs.MaxLength,
	}
}

func (l *Loader) buildArray(base field.Base, fs *fieldSpec) (field.Field, error) {
	cfg := field.Array{
		Base:        base,
		MinItems:    fs.MinItems,
		MaxItems:    fs.MaxItems,
		UniqueItems: fs.UniqueItems,
	}
	if fs.Items != nil {
		items, err := l.buildField(fs.Items)
		if err != nil {
			return nil, err
		}
		cfg.Items = items
	}
	if len(fs.Tuple) > 0 {
		tuple, err := l.buildFields(fs.Tuple)
		if err != nil {
			return nil, err
		}
		cfg.Tuple = tuple
	}
	ai, err := l.buildPolicy(fs.AdditionalItems)
	if err != nil {
		return nil, err
	}
	cfg.AdditionalItems = ai
	return field.NewArray(cfg)
}

func (l *Loader) buildObject(base field.Base, fs *fieldSpec) (field.Field, error) {
	cfg := field.Object{
		Base:          base,
		MinProperties: fs.MinProperties,
		MaxProperties: fs.MaxProperties,
	}
	var err error
	if cfg.Properties, err = l.buildProps(fs.Properties); err != nil {
		return nil, err
	}
	if cfg.PatternProperties, err = l.buildProps(fs.PatternProperties); err != nil {
		return nil, err
	}
	if cfg.AdditionalProperties, err = l.buildPolicy(fs.AdditionalProperties); err != nil {
		return nil, err
	}
	return field.NewObject(cfg)
}

func (l *Loader) buildFields(specs []*fieldSpec) ([]field.Field, error) {
	out := make([]field.Field, 0, len(specs))
	for _, fs := range specs {
		f, err := l.buildField(fs)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// buildPolicy interprets an additional-items/properties value: absent,
// a bool emitted verbatim, or a nested field spec.
func (l *Loader) buildPolicy(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case map[string]any:
		sub, err := respec(x)
		if err != nil {
			return nil, err
		}
		return l.buildField(sub)
	}
	return nil, fmt.Errorf("additional schema policy must be a bool or a field, got %T", v)
}

// respec re-decodes a generic mapping into a field spec.
func respec(m map[string]any) (*fieldSpec, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	var fs fieldSpec
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, err
	}
	return &fs, nil
}
