package field

import (
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testDoc is a minimal Document for exercising DocumentField in
// isolation from the document package.
type testDoc struct {
	id     string
	ns     string
	fields []Prop
}

func (d *testDoc) DefinitionID() string { return d.id }
func (d *testDoc) Namespace() string    { return d.ns }

func (d *testDoc) Compile(defs Definitions) (Definitions, Schema, error) {
	if _, ok := defs[d.id]; ok {
		return Definitions{}, Ref(d.id), nil
	}
	acc := defs.clone()
	acc[d.id] = nil
	delta := Definitions{}
	props := Schema{}
	for _, p := range d.fields {
		s, err := compileChild(acc, delta, p.Field)
		if err != nil {
			return nil, nil, err
		}
		props[p.Name] = s
	}
	delta[d.id] = Schema{"type": "object", "properties": props}
	return delta, Ref(d.id), nil
}

func (d *testDoc) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
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

type mapResolver map[string]Document

func (r mapResolver) LookupDocument(name, namespace string) (Document, error) {
	key := name
	if namespace != "" {
		key = namespace + "." + name
	}
	if doc, ok := r[key]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrDocumentNotFound, key)
}

func TestDocumentFieldDirect(t *testing.T) {
	doc := &testDoc{id: "User", fields: []Prop{{Name: "ok", Field: &Boolean{}}}}
	f := &DocumentField{Document: doc}
	delta, schema, err := f.Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if diff := cmp.Diff(Ref("User"), schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
	if _, ok := delta["User"]; !ok {
		t.Errorf("delta missing User definition: %v", delta)
	}
}

func TestDocumentFieldAlreadyDefined(t *testing.T) {
	doc := &testDoc{id: "User"}
	f := &DocumentField{Document: doc}
	defs := Definitions{"User": {"type": "object"}}
	delta, schema, err := f.Compile(defs)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(delta) != 0 {
		t.Errorf("delta = %v, want empty for an already-defined document", delta)
	}
	if diff := cmp.Diff(Ref("User"), schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
	// the input table is read, never written
	if len(defs) != 1 {
		t.Errorf("input definitions mutated: %v", defs)
	}
}

func TestDocumentFieldInFlight(t *testing.T) {
	// a nil entry marks a definition still being compiled; a pointer is
	// still the right answer
	doc := &testDoc{id: "Tree"}
	f := &DocumentField{Document: doc}
	delta, schema, err := f.Compile(Definitions{"Tree": nil})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(delta) != 0 {
		t.Errorf("delta = %v, want empty", delta)
	}
	if diff := cmp.Diff(Ref("Tree"), schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentFieldSelf(t *testing.T) {
	doc := &testDoc{id: "Node"}
	f := &DocumentField{Name: Self}
	if _, _, err := f.Compile(nil); !errors.Is(err, ErrOwnerUnset) {
		t.Fatalf("Compile() error = %v, want ErrOwnerUnset before binding", err)
	}
	f.SetOwner(doc)
	_, schema, err := f.Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if diff := cmp.Diff(Ref("Node"), schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSetOwnerOnce(t *testing.T) {
	first := &testDoc{id: "A"}
	second := &testDoc{id: "B"}
	f := &DocumentField{Name: Self}
	f.SetOwner(first)
	f.SetOwner(second)
	if f.Owner() != Document(first) {
		t.Errorf("Owner() = %v, want the first binding", f.Owner())
	}
}

func TestDocumentFieldLookup(t *testing.T) {
	user := &testDoc{id: "User"}
	comment := &testDoc{id: "blog.Comment", ns: "blog"}
	r := mapResolver{"User": user, "blog.Comment": comment}

	t.Run("unqualified", func(t *testing.T) {
		f := &DocumentField{Name: "User", Resolver: r}
		doc, err := f.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if doc != Document(user) {
			t.Errorf("Resolve() = %v, want User", doc)
		}
	})

	t.Run("qualified retry", func(t *testing.T) {
		owner := &testDoc{id: "blog.Post", ns: "blog"}
		f := &DocumentField{Name: "Comment", Resolver: r}
		f.SetOwner(owner)
		doc, err := f.Resolve()
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if doc != Document(comment) {
			t.Errorf("Resolve() = %v, want blog.Comment", doc)
		}
	})

	t.Run("retry needs owner", func(t *testing.T) {
		f := &DocumentField{Name: "Comment", Resolver: r}
		if _, err := f.Resolve(); !errors.Is(err, ErrOwnerUnset) {
			t.Errorf("Resolve() error = %v, want ErrOwnerUnset", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		f := &DocumentField{Name: "Missing", Resolver: r}
		f.SetOwner(user)
		if _, err := f.Resolve(); !errors.Is(err, ErrDocumentNotFound) {
			t.Errorf("Resolve() error = %v, want ErrDocumentNotFound", err)
		}
	})

	t.Run("no resolver", func(t *testing.T) {
		f := &DocumentField{Name: "User"}
		if _, err := f.Resolve(); !errors.Is(err, ErrDocumentNotFound) {
			t.Errorf("Resolve() error = %v, want ErrDocumentNotFound", err)
		}
	})
}

func TestDocumentFieldCompileErrorLeavesDefsAlone(t *testing.T) {
	f := &DocumentField{Name: "Missing", Resolver: mapResolver{}}
	f.SetOwner(&testDoc{id: "Owner"})
	defs := Definitions{"Other": {"type": "object"}}
	if _, _, err := f.Compile(defs); err == nil {
		t.Fatal("Compile() resolved a missing document")
	}
	if len(defs) != 1 {
		t.Errorf("input definitions mutated on error: %v", defs)
	}
}

func TestDocumentFieldWalk(t *testing.T) {
	inner := &Boolean{}
	doc := &testDoc{id: "User", fields: []Prop{{Name: "ok", Field: inner}}}
	f := &DocumentField{Document: doc}

	t.Run("shallow", func(t *testing.T) {
		var got []Field
		for sub, err := range f.Walk(false, nil) {
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			got = append(got, sub)
		}
		if len(got) != 1 || got[0] != Field(f) {
			t.Errorf("Walk(false) = %v nodes, want just the reference", len(got))
		}
	})

	t.Run("through", func(t *testing.T) {
		var got []Field
		for sub, err := range f.Walk(true, nil) {
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			got = append(got, sub)
		}
		want := []Field{f, inner}
		if len(got) != len(want) {
			t.Fatalf("Walk(true) yielded %d nodes, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Walk(true)[%d] = %T, want %T", i, got[i], want[i])
			}
		}
	})
}

func TestDocumentFieldWalkCycle(t *testing.T) {
	doc := &testDoc{id: "Node"}
	f := &DocumentField{Document: doc}
	doc.fields = []Prop{{Name: "next", Field: f}}

	var n int
	for _, err := range f.Walk(true, nil) {
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		n++
		if n > 10 {
			t.Fatal("Walk() did not terminate on a cyclic document graph")
		}
	}
	// the reference, then the same reference seen inside the document
	if n != 2 {
		t.Errorf("Walk() yielded %d nodes, want 2", n)
	}
}

func TestDocumentFieldWalkResolveError(t *testing.T) {
	f := &DocumentField{Name: Self}
	var sawErr error
	for _, err := range f.Walk(true, nil) {
		if err != nil {
			sawErr = err
		}
	}
	if !errors.Is(sawErr, ErrOwnerUnset) {
		t.Errorf("Walk() error = %v, want ErrOwnerUnset", sawErr)
	}
}
