package field

import "errors"

var (
	// ErrBadPattern reports a syntactically invalid regular expression
	// supplied at construction time.
	ErrBadPattern = errors.New("invalid regular expression")

	// ErrOwnerUnset reports a self or namespace-qualified document
	// reference resolved before an owner was bound.
	ErrOwnerUnset = errors.New("owner document not set")

	// ErrDocumentNotFound reports a named document reference that no
	// lookup could satisfy. Resolver implementations wrap it so the
	// qualified retry can tell not-found apart from other failures.
	ErrDocumentNotFound = errors.New("document not found")
)
