// Package encode renders compiled schemas as JSON or YAML. JSON output
// is written with sorted keys so diffs and golden files are stable, and
// can be colorized for terminals.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/chhabrakadabra/jsl/field"
)

type Options struct {
	// Indent is the number of spaces per level; 0 means 2.
	Indent int
	// Color enables ANSI colors in JSON output.
	Color bool
}

func (o *Options) indent() int {
	if o == nil || o.Indent == 0 {
		return 2
	}
	return o.Indent
}

func (o *Options) color() bool {
	return o != nil && o.Color
}

// IsTerminal reports whether w is a terminal, for choosing a color
// default.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// JSON writes the schema as indented JSON with deterministic key order.
func JSON(w io.Writer, s field.Schema, opts *Options) error {
	e := &jsonEncoder{w: w, indent: opts.indent()}
	if opts.color() {
		e.colors = newColors()
	}
	if err := e.value(map[string]any(s), 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// YAML writes the schema as YAML. Color applies only to JSON output.
func YAML(w io.Writer, s field.Schema, opts *Options) error {
	data, err := yaml.MarshalWithOptions(map[string]any(s), yaml.Indent(opts.indent()))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type jsonEncoder struct {
	w      io.Writer
	indent int
	colors *colors
}

func (e *jsonEncoder) value(v any, depth int) error {
	switch x := v.(type) {
	case field.Schema:
		return e.object(x, depth)
	case map[string]any:
		return e.object(x, depth)
	case field.Definitions:
		m := make(map[string]any, len(x))
		for k, s := range x {
			m[k] = s
		}
		return e.object(m, depth)
	case []any:
		return e.list(x, depth)
	case []string:
		list := make([]any, len(x))
		for i, s := range x {
			list[i] = s
		}
		return e.list(list, depth)
	default:
		return e.scalar(x)
	}
}

func (e *jsonEncoder) object(m map[string]any, depth int) error {
	if len(m) == 0 {
		_, err := io.WriteString(e.w, "{}")
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if _, err := io.WriteString(e.w, "{\n"); err != nil {
		return err
	}
	for i, k := range keys {
		if err := e.pad(depth + 1); err != nil {
			return err
		}
		if _, err := io.WriteString(e.w, e.key(k)+": "); err != nil {
			return err
		}
		if err := e.value(m[k], depth+1); err != nil {
			return err
		}
		if err := e.sep(i == len(keys)-1); err != nil {
			return err
		}
	}
	if err := e.pad(depth); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "}")
	return err
}

func (e *jsonEncoder) list(items []any, depth int) error {
	if len(items) == 0 {
		_, err := io.WriteString(e.w, "[]")
		return err
	}
	if _, err := io.WriteString(e.w, "[\n"); err != nil {
		return err
	}
	for i, item := range items {
		if err := e.pad(depth + 1); err != nil {
			return err
		}
		if err := e.value(item, depth+1); err != nil {
			return err
		}
		if err := e.sep(i == len(items)-1); err != nil {
			return err
		}
	}
	if err := e.pad(depth); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "]")
	return err
}

func (e *jsonEncoder) scalar(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s := string(data)
	if e.colors != nil {
		s = e.colors.scalar(v, s)
	}
	_, err = io.WriteString(e.w, s)
	return err
}

func (e *jsonEncoder) key(k string) string {
	data, _ := json.Marshal(k)
	if e.colors != nil {
		return e.colors.key("%s", string(data))
	}
	return string(data)
}

func (e *jsonEncoder) pad(depth int) error {
	_, err := io.WriteString(e.w, fmt.Sprintf("%*s", depth*e.indent, ""))
	return err
}

func (e *jsonEncoder) sep(last bool) error {
	s := ",\n"
	if last {
		s = "\n"
	}
	_, err := io.WriteString(e.w, s)
	return err
}
