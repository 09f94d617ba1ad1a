package field

import (
	"fmt"
	"iter"
	"regexp"
)

// ValidatePattern checks that pattern is a syntactically valid regular
// expression. Field construction calls it once; compilation never
// re-validates.
func ValidatePattern(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return nil
}

// String describes a string value. An empty Pattern means no pattern
// keyword at all, not an empty pattern.
type String struct {
	Base
	Pattern   string
	MinLength *int
	MaxLength *int
}

// NewString validates the pattern and returns the field.
func NewString(cfg String) (*String, error) {
	if cfg.Pattern != "" {
		if err := ValidatePattern(cfg.Pattern); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (f *String) Compile(defs Definitions) (Definitions, Schema, error) {
	s := Schema{"type": "string"}
	f.mergeCommon(s)
	if f.Pattern != "" {
		s["pattern"] = f.Pattern
	}
	if f.MinLength != nil {
		s["minLength"] = *f.MinLength
	}
	if f.MaxLength != nil {
		s["maxLength"] = *f.MaxLength
	}
	return Definitions{}, s, nil
}

func (f *String) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// Email is a string with the email format annotation.
type Email struct{ String }

func NewEmail(cfg String) (*Email, error) {
	s, err := NewString(cfg)
	if err != nil {
		return nil, err
	}
	return &Email{String: *s}, nil
}

func (f *Email) Compile(defs Definitions) (Definitions, Schema, error) {
	return formatCompile(&f.String, "email", defs)
}

func (f *Email) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// URI is a string with the uri format annotation.
type URI struct{ String }

func NewURI(cfg String) (*URI, error) {
	s, err := NewString(cfg)
	if err != nil {
		return nil, err
	}
	return &URI{String: *s}, nil
}

func (f *URI) Compile(defs Definitions) (Definitions, Schema, error) {
	return formatCompile(&f.String, "uri", defs)
}

func (f *URI) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// DateTime is a string with the date-time format annotation.
type DateTime struct{ String }

func NewDateTime(cfg String) (*DateTime, error) {
	s, err := NewString(cfg)
	if err != nil {
		return nil, err
	}
	return &DateTime{String: *s}, nil
}

func (f *DateTime) Compile(defs Definitions) (Definitions, Schema, error) {
	return formatCompile(&f.String, "date-time", defs)
}

func (f *DateTime) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

// IPv4 is a string with the ipv4 format annotation.
type IPv4 struct{ String }

func NewIPv4(cfg String) (*IPv4, error) {
	s, err := NewString(cfg)
	if err != nil {
		return nil, err
	}
	return &IPv4{String: *s}, nil
}

func (f *IPv4) Compile(defs Definitions) (Definitions, Schema, error) {
	return formatCompile(&f.String, "ipv4", defs)
}

func (f *IPv4) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return leafSeq(f)
}

func formatCompile(s *String, format string, defs Definitions) (Definitions, Schema, error) {
	d, schema, err := s.Compile(defs)
	if err != nil {
		return nil, nil, err
	}
	schema["format"] = format
	return d, schema, nil
}
