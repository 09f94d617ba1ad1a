package field

import (
	"errors"
	"fmt"
	"iter"
)

// Self is the reserved name meaning "the document that owns this field",
// resolved through the owner back-reference.
const Self = "self"

const definitionsPrefix = "#/definitions/"

// Ref returns a schema fragment that is purely a pointer to a named
// definition.
func Ref(id string) Schema {
	return Schema{"$ref": definitionsPrefix + id}
}

// Document is the contract a type must satisfy to be the target of a
// DocumentField. DefinitionID must be stable and unique per document
// type; Namespace disambiguates name lookups. Compile has the same
// contract as Field.Compile and must register the document's own id into
// the returned delta, so cyclic document graphs terminate.
type Document interface {
	DefinitionID() string
	Namespace() string
	Compile(defs Definitions) (Definitions, Schema, error)
	Walk(throughDocuments bool, visited Visited) iter.Seq2[Field, error]
}

// Resolver looks documents up by name. An empty namespace means an
// unqualified lookup. Not-found errors must wrap ErrDocumentNotFound so
// the namespace-qualified retry can distinguish them.
type Resolver interface {
	LookupDocument(name, namespace string) (Document, error)
}

// DocumentField stands for a whole named document schema. It holds
// either a direct Document handle, the Self token, or a name resolved
// through Resolver. Resolution runs on every compile and walk so that
// late owner binding is respected; nothing is cached.
type DocumentField struct {
	Base
	Document Document
	Name     string
	Resolver Resolver

	owner Document
}

// SetOwner binds the owning document. The owner transitions once from
// unset to set; later calls are ignored so a field shared between trees
// keeps its first owner.
func (f *DocumentField) SetOwner(doc Document) {
	if f.owner == nil {
		f.owner = doc
	}
}

// Owner returns the owning document, or nil before binding.
func (f *DocumentField) Owner() Document { return f.owner }

// Resolve evaluates the reference: direct handle, then the Self token
// via the owner, then an unqualified registry lookup with a retry
// qualified by the owner's namespace.
func (f *DocumentField) Resolve() (Document, error) {
	if f.Document != nil {
		return f.Document, nil
	}
	if f.Name == Self {
		if f.owner == nil {
			return nil, fmt.Errorf("%w: self reference requires a bound owner", ErrOwnerUnset)
		}
		return f.owner, nil
	}
	if f.Resolver == nil {
		return nil, fmt.Errorf("%w: %q (no resolver configured)", ErrDocumentNotFound, f.Name)
	}
	doc, err := f.Resolver.LookupDocument(f.Name, "")
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		return nil, err
	}
	if f.owner == nil {
		return nil, fmt.Errorf("%w: cannot qualify lookup of %q", ErrOwnerUnset, f.Name)
	}
	return f.Resolver.LookupDocument(f.Name, f.owner.Namespace())
}

func (f *DocumentField) Compile(defs Definitions) (Definitions, Schema, error) {
	doc, err := f.Resolve()
	if err != nil {
		return nil, nil, err
	}
	// A definition id already present in defs is either finished or
	// still compiling; either way a pointer breaks the recursion.
	if _, ok := defs[doc.DefinitionID()]; ok {
		return Definitions{}, Ref(doc.DefinitionID()), nil
	}
	return doc.Compile(defs)
}

func (f *DocumentField) Walk(through bool, visited Visited) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		if !yield(f, nil) {
			return
		}
		if !through {
			return
		}
		doc, err := f.Resolve()
		if err != nil {
			yield(nil, err)
			return
		}
		if visited[doc] {
			return
		}
		for sub, err := range doc.Walk(through, visited.with(doc)) {
			if !yield(sub, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
