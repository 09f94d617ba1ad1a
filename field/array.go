package field

import (
	"errors"
	"fmt"
	"iter"
)

// Array describes an array value. Exactly one of Items (one schema for
// every element) or Tuple (per-position schemas) should be set.
// AdditionalItems holds nil, a bool emitted verbatim, or a Field
// compiled as the schema for positions beyond the tuple.
type Array struct {
	Base
	Items           Field
	Tuple           []Field
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool
	AdditionalItems any
}

// NewArray rejects configurations with both item forms or an
// additional-items policy that is neither bool nor Field.
func NewArray(cfg Array) (*Array, error) {
	if cfg.Items != nil && len(cfg.Tuple) > 0 {
		return nil, errors.New("array: Items and Tuple are mutually exclusive")
	}
	if err := checkPolicy(cfg.AdditionalItems); err != nil {
		return nil, fmt.Errorf("array additionalItems: %w", err)
	}
	return &cfg, nil
}

func checkPolicy(v any) error {
	switch v.(type) {
	case nil, bool, Field:
		return nil
	}
	return fmt.Errorf("must be a bool or a Field, got %T", v)
}

func (f *Array) Compile(defs Definitions) (Definitions, Schema, error) {
	acc := defs.clone()
	delta := Definitions{}

	var items any
	switch {
	case len(f.Tuple) > 0:
		list := make([]any, 0, len(f.Tuple))
		for _, item := range f.Tuple {
			s, err := compileChild(acc, delta, item)
			if err != nil {
				return nil, nil, err
			}
			list = append(list, s)
		}
		items = list
	case f.Items != nil:
		s, err := compileChild(acc, delta, f.Items)
		if err != nil {
			return nil, nil, err
		}
		items = s
	}

	s := Schema{"type": "array"}
	if items != nil {
		s["items"] = items
	}
	f.mergeCommon(s)
	if f.MinItems != nil {
		s["minItems"] = *f.MinItems
	}
	if f.MaxItems != nil {
		s["maxItems"] = *f.MaxItems
	}
	if f.UniqueItems {
		s["uniqueItems"] = true
	}
	switch ai := f.AdditionalItems.(type) {
	case nil:
	case bool:
		s["additionalItems"] = ai
	case Field:
		as, err := compileChild(acc, delta, ai)
		if err != nil {
			return nil, nil, err
		}
		s["additionalItems"] = as
	default:
		return nil, nil, fmt.Errorf("array additionalItems: %w", checkPolicy(ai))
	}
	return delta, s, nil
}

func (f *Array) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	children := make([]Field, 0, len(f.Tuple)+2)
	if len(f.Tuple) > 0 {
		children = append(children, f.Tuple...)
	} else if f.Items != nil {
		children = append(children, f.Items)
	}
	if ai, ok := f.AdditionalItems.(Field); ok {
		children = append(children, ai)
	}
	return walkSeq(f, through, visited, children...)
}
