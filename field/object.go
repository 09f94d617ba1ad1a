package field

import (
	"fmt"
	"iter"
)

// Object describes an object value with named properties, pattern-keyed
// properties, and an additional-properties policy with the same shape as
// Array.AdditionalItems. Properties and PatternProperties are ordered;
// declaration order is the traversal order.
type Object struct {
	Base
	Properties           []Prop
	PatternProperties    []Prop
	AdditionalProperties any
	MinProperties        *int
	MaxProperties        *int
}

// NewObject validates every pattern-property key and the
// additional-properties policy.
func NewObject(cfg Object) (*Object, error) {
	for _, p := range cfg.PatternProperties {
		if err := ValidatePattern(p.Name); err != nil {
			return nil, fmt.Errorf("pattern property %q: %w", p.Name, err)
		}
	}
	if err := checkPolicy(cfg.AdditionalProperties); err != nil {
		return nil, fmt.Errorf("object additionalProperties: %w", err)
	}
	return &cfg, nil
}

func (f *Object) Compile(defs Definitions) (Definitions, Schema, error) {
	acc := defs.clone()
	delta := Definitions{}

	s := Schema{"type": "object"}
	f.mergeCommon(s)

	if len(f.Properties) > 0 {
		props, err := compileProps(acc, delta, f.Properties)
		if err != nil {
			return nil, nil, err
		}
		s["properties"] = props
	}
	if len(f.PatternProperties) > 0 {
		props, err := compileProps(acc, delta, f.PatternProperties)
		if err != nil {
			return nil, nil, err
		}
		s["patternProperties"] = props
	}
	switch ap := f.AdditionalProperties.(type) {
	case nil:
	case bool:
		s["additionalProperties"] = ap
	case Field:
		as, err := compileChild(acc, delta, ap)
		if err != nil {
			return nil, nil, err
		}
		s["additionalProperties"] = as
	default:
		return nil, nil, fmt.Errorf("object additionalProperties: %w", checkPolicy(ap))
	}
	if f.MinProperties != nil {
		s["minProperties"] = *f.MinProperties
	}
	if f.MaxProperties != nil {
		s["maxProperties"] = *f.MaxProperties
	}
	return delta, s, nil
}

func compileProps(acc, delta Definitions, props []Prop) (Schema, error) {
	out := Schema{}
	for _, p := range props {
		s, err := compileChild(acc, delta, p.Field)
		if err != nil {
			return nil, err
		}
		out[p.Name] = s
	}
	return out, nil
}

func (f *Object) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	children := make([]Field, 0, len(f.Properties)+len(f.PatternProperties)+1)
	for _, p := range f.Properties {
		children = append(children, p.Field)
	}
	for _, p := range f.PatternProperties {
		children = append(children, p.Field)
	}
	if ap, ok := f.AdditionalProperties.(Field); ok {
		children = append(children, ap)
	}
	return walkSeq(f, through, visited, children...)
}
