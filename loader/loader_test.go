package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chhabrakadabra/jsl/field"
	"github.com/chhabrakadabra/jsl/registry"
)

const userDefs = `
documents:
  - name: User
    title: User
    fields:
      - name: login
        type: string
        required: true
        pattern: "^[a-z]+$"
      - name: email
        type: email
      - name: age
        type: integer
        minimum: 0
      - name: tags
        type: array
        items:
          type: string
        uniqueItems: true
`

func TestLoad(t *testing.T) {
	l := New(registry.New())
	docs, err := l.Load([]byte(userDefs))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Load() = %d documents, want 1", len(docs))
	}
	schema, err := docs[0].Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	defs := schema["definitions"].(field.Definitions)
	props := defs["User"]["properties"].(field.Schema)
	want := field.Schema{
		"login": field.Schema{"type": "string", "pattern": "^[a-z]+$"},
		"email": field.Schema{"type": "string", "format": "email"},
		"age":   field.Schema{"type": "integer", "minimum": float64(0)},
		"tags": field.Schema{
			"type":        "array",
			"items":       field.Schema{"type": "string"},
			"uniqueItems": true,
		},
	}
	if diff := cmp.Diff(want, props); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"login"}, defs["User"]["required"]); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRegisters(t *testing.T) {
	reg := registry.New()
	l := New(reg)
	if _, err := l.Load([]byte(userDefs)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := reg.LookupDocument("User", ""); err != nil {
		t.Errorf("LookupDocument() error = %v, want User registered", err)
	}
}

func TestLoadModule(t *testing.T) {
	reg := registry.New()
	l := New(reg)
	docs, err := l.Load([]byte(`
module: blog
documents:
  - name: Comment
    fields:
      - name: body
        type: string
  - name: Post
    fields:
      - name: comments
        type: array
        items:
          type: document
          document: Comment
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Load() = %d documents, want 2", len(docs))
	}
	post := docs[1]
	if got := post.DefinitionID(); got != "blog.Post" {
		t.Errorf("DefinitionID() = %q, want blog.Post", got)
	}
	defs, _, err := post.Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, id := range []string{"blog.Post", "blog.Comment"} {
		if _, ok := defs[id]; !ok {
			t.Errorf("definitions missing %q: %v", id, defs)
		}
	}
}

func TestLoadSelfReference(t *testing.T) {
	l := New(registry.New())
	docs, err := l.Load([]byte(`
documents:
  - name: Tree
    fields:
      - name: next
        type: document
        document: self
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	schema, err := docs[0].Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	defs := schema["definitions"].(field.Definitions)
	if len(defs) != 1 {
		t.Fatalf("definitions has %d entries, want 1: %v", len(defs), defs)
	}
	props := defs["Tree"]["properties"].(field.Schema)
	if diff := cmp.Diff(field.Ref("Tree"), props["next"]); diff != "" {
		t.Errorf("self pointer mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCombinators(t *testing.T) {
	l := New(registry.New())
	docs, err := l.Load([]byte(`
documents:
  - name: Value
    fields:
      - name: v
        type: oneOf
        fields:
          - type: string
          - type: integer
      - name: never
        type: not
        field:
          type: boolean
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defs, _, err := docs[0].Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	props := defs["Value"]["properties"].(field.Schema)
	wantOneOf := field.Schema{"oneOf": []any{
		field.Schema{"type": "string"},
		field.Schema{"type": "integer"},
	}}
	if diff := cmp.Diff(wantOneOf, props["v"]); diff != "" {
		t.Errorf("oneOf mismatch (-want +got):\n%s", diff)
	}
	wantNot := field.Schema{"not": field.Schema{"type": "boolean"}}
	if diff := cmp.Diff(wantNot, props["never"]); diff != "" {
		t.Errorf("not mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAdditionalPolicies(t *testing.T) {
	l := New(registry.New())
	docs, err := l.Load([]byte(`
documents:
  - name: Rec
    additionalProperties: false
    fields:
      - name: pair
        type: array
        tuple:
          - type: string
          - type: integer
        additionalItems:
          type: number
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defs, _, err := docs[0].Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	rec := defs["Rec"]
	if rec["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", rec["additionalProperties"])
	}
	pair := rec["properties"].(field.Schema)["pair"].(field.Schema)
	if diff := cmp.Diff(field.Schema{"type": "number"}, pair["additionalItems"]); diff != "" {
		t.Errorf("additionalItems mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultExpr(t *testing.T) {
	l := New(registry.New())
	l.Env = map[string]any{"base": 40}
	docs, err := l.Load([]byte(`
documents:
  - name: Conf
    fields:
      - name: answer
        type: integer
        defaultExpr: "base + 2"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defs, _, err := docs[0].Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	props := defs["Conf"]["properties"].(field.Schema)
	got := props["answer"].(field.Schema)["default"]
	if got != 42 {
		t.Errorf("default = %v (%T), want 42", got, got)
	}
}

func TestChoicesExpr(t *testing.T) {
	l := New(registry.New())
	l.Env = map[string]any{"levels": []any{"low", "high"}}
	docs, err := l.Load([]byte(`
documents:
  - name: Conf
    fields:
      - name: level
        type: string
        choicesExpr: "levels"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defs, _, err := docs[0].Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	props := defs["Conf"]["properties"].(field.Schema)
	got := props["level"].(field.Schema)["enum"]
	if diff := cmp.Diff([]any{"low", "high"}, got); diff != "" {
		t.Errorf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "unknown type",
			src: `
documents:
  - name: D
    fields:
      - name: x
        type: wat
`,
		},
		{
			name: "bad pattern",
			src: `
documents:
  - name: D
    fields:
      - name: x
        type: string
        pattern: "["
`,
		},
		{
			name: "bad expression",
			src: `
documents:
  - name: D
    fields:
      - name: x
        type: integer
        defaultExpr: "1 +"
`,
		},
		{
			name: "document reference without name",
			src: `
documents:
  - name: D
    fields:
      - name: x
        type: document
`,
		},
		{
			name: "duplicate document",
			src: `
documents:
  - name: D
    fields: []
  - name: D
    fields: []
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(registry.New())
			if _, err := l.Load([]byte(tt.src)); err == nil {
				t.Error("Load() accepted invalid definitions")
			}
		})
	}
}
