// Package registry maps document names to document types. A Registry is
// an explicit, injectable service: create one per process or per test,
// populate it as documents are declared, and hand it to document
// references as their Resolver.
package registry

import (
	"fmt"
	"sync"

	"github.com/chhabrakadabra/jsl/field"
)

// ErrNotFound reports a lookup for a name no document was registered
// under.
var ErrNotFound = field.ErrDocumentNotFound

// Registry holds named documents. The zero value is not usable; call
// New. Reads and writes are guarded so a lookup never observes a
// partially registered document.
type Registry struct {
	mu   sync.RWMutex
	docs map[string]field.Document
}

func New() *Registry {
	return &Registry{docs: make(map[string]field.Document)}
}

func key(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// Register stores doc under name, qualified by namespace when one is
// given. Registering the same qualified name twice is an error.
func (r *Registry) Register(name, namespace string, doc field.Document) error {
	if doc == nil {
		return fmt.Errorf("cannot register nil document")
	}
	if name == "" {
		return fmt.Errorf("document must have a name")
	}
	k := key(name, namespace)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[k]; exists {
		return fmt.Errorf("document %q already registered", k)
	}
	r.docs[k] = doc
	return nil
}

// LookupDocument implements field.Resolver. An empty namespace is an
// unqualified lookup.
func (r *Registry) LookupDocument(name, namespace string) (field.Document, error) {
	k := key(name, namespace)

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, k)
	}
	return doc, nil
}

// All returns every registered document keyed by qualified name.
func (r *Registry) All() map[string]field.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]field.Document, len(r.docs))
	for k, v := range r.docs {
		result[k] = v
	}
	return result
}
