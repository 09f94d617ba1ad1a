package field

import (
	"errors"
	"iter"
)

// OneOf matches values accepted by exactly one of its children. Child
// order is preserved in the compiled output; consumers may treat option
// order as significant for diagnostics.
type OneOf struct {
	Base
	Fields []Field
}

func (f *OneOf) Compile(defs Definitions) (Definitions, Schema, error) {
	return compileCombinator(&f.Base, "oneOf", f.Fields, defs)
}

func (f *OneOf) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return walkSeq(f, through, visited, f.Fields...)
}

// AnyOf matches values accepted by at least one of its children.
type AnyOf struct {
	Base
	Fields []Field
}

func (f *AnyOf) Compile(defs Definitions) (Definitions, Schema, error) {
	return compileCombinator(&f.Base, "anyOf", f.Fields, defs)
}

func (f *AnyOf) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return walkSeq(f, through, visited, f.Fields...)
}

// AllOf matches values accepted by every one of its children.
type AllOf struct {
	Base
	Fields []Field
}

func (f *AllOf) Compile(defs Definitions) (Definitions, Schema, error) {
	return compileCombinator(&f.Base, "allOf", f.Fields, defs)
}

func (f *AllOf) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return walkSeq(f, through, visited, f.Fields...)
}

func compileCombinator(b *Base, keyword string, children []Field, defs Definitions) (Definitions, Schema, error) {
	acc := defs.clone()
	delta := Definitions{}
	list := make([]any, 0, len(children))
	for _, c := range children {
		s, err := compileChild(acc, delta, c)
		if err != nil {
			return nil, nil, err
		}
		list = append(list, s)
	}
	s := Schema{keyword: list}
	b.mergeCommon(s)
	return delta, s, nil
}

// Not matches values rejected by its single child. Unlike the other
// combinators the keyword is singular, not an array.
type Not struct {
	Base
	Field Field
}

func (f *Not) Compile(defs Definitions) (Definitions, Schema, error) {
	if f.Field == nil {
		return nil, nil, errors.New("not: missing child field")
	}
	d, cs, err := f.Field.Compile(defs)
	if err != nil {
		return nil, nil, err
	}
	s := Schema{"not": cs}
	f.mergeCommon(s)
	return d, s, nil
}

func (f *Not) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return walkSeq(f, through, visited, f.Field)
}
