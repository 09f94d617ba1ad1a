package field

import "iter"

// Boolean describes a boolean value; it has no constraints beyond the
// common keywords.
type Boolean struct {
	Base
}

func (f *Boolean) Compile(defs Definitions) (Definitions, Schema, error) {
	s := Schema{"type": "boolean"}
	f.mergeCommon(s)
	return Definitions{}, s, nil
}

func (f *Boolean) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// Number describes a numeric value. The exclusive flags turn the
// corresponding bound exclusive; they are emitted only when set.
type Number struct {
	Base
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
}

func (f *Number) Compile(defs Definitions) (Definitions, Schema, error) {
	return f.compileAs("number")
}

func (f *Number) compileAs(typeName string) (Definitions, Schema, error) {
	s := Schema{"type": typeName}
	f.mergeCommon(s)
	if f.MultipleOf != nil {
		s["multipleOf"] = *f.MultipleOf
	}
	if f.Minimum != nil {
		s["minimum"] = *f.Minimum
	}
	if f.ExclusiveMinimum {
		s["exclusiveMinimum"] = true
	}
	if f.Maximum != nil {
		s["maximum"] = *f.Maximum
	}
	if f.ExclusiveMaximum {
		s["exclusiveMaximum"] = true
	}
	return Definitions{}, s, nil
}

func (f *Number) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// Integer is a Number compiled with the integer type keyword.
type Integer struct{ Number }

func (f *Integer) Compile(defs Definitions) (Definitions, Schema, error) {
	return f.compileAs("integer")
}

func (f *Integer) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}
