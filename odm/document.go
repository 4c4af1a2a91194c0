package odm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrInvalidTypeName is returned when a key base name is empty or
	// contains the key separator
	ErrInvalidTypeName = errors.New("invalid document type name")

	// ErrDuplicateType is returned when a key base name is registered twice
	ErrDuplicateType = errors.New("document type already registered")

	// ErrEmptyID is returned when a document has no identifier to derive a
	// key from
	ErrEmptyID = errors.New("document id is empty")
)

// --------------------------------------------------------------------------
// Entity Interface
// --------------------------------------------------------------------------

// Entity is implemented by every document type. The identifier is a string
// by construction; it is never part of the serialized payload (tag the
// backing field with `json:"-"`) and is re-attached from the store key on
// read.
type Entity interface {
	// DocumentID returns the document's unique identifier
	DocumentID() string
	// SetDocumentID attaches the identifier parsed from a store key
	SetDocumentID(id string)
}

// --------------------------------------------------------------------------
// Type Descriptor
// --------------------------------------------------------------------------

// registry holds all registered key base names. Key base names must be
// stable and unique per document type across the whole process.
var registry = xsync.NewMapOf[string, struct{}]()

// Type describes one document type: its key base name (the scan prefix) and
// how to construct an empty instance for decoding. The zero Type is invalid;
// repositories built from it are inert.
type Type[T Entity] struct {
	name    string
	factory func() T
	valid   bool
}

// NewType creates and registers a type descriptor. The name becomes the key
// base name and must be non-empty, must not contain ':' and must not have
// been registered before. The factory constructs an empty document for the
// decode path (typically `func() *Account { return &Account{} }`).
//
// Validation failures are hard errors at construction, never deferred to
// the first operation.
func NewType[T Entity](name string, factory func() T) (Type[T], error) {
	if name == "" || strings.Contains(name, ":") {
		return Type[T]{}, fmt.Errorf("%w: %q", ErrInvalidTypeName, name)
	}
	if factory == nil {
		return Type[T]{}, fmt.Errorf("%w: %q has no factory", ErrInvalidTypeName, name)
	}
	if _, loaded := registry.LoadOrStore(name, struct{}{}); loaded {
		return Type[T]{}, fmt.Errorf("%w: %q", ErrDuplicateType, name)
	}

	return Type[T]{name: name, factory: factory, valid: true}, nil
}

// MustType is like NewType but panics on validation failure. Intended for
// package-level type registration.
func MustType[T Entity](name string, factory func() T) Type[T] {
	t, err := NewType(name, factory)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether this descriptor was built by a successful NewType.
func (t Type[T]) Valid() bool {
	return t.valid
}

// Name returns the key base name, used as the scan prefix for this type.
func (t Type[T]) Name() string {
	return t.name
}

// New constructs an empty document instance for decoding.
func (t Type[T]) New() T {
	return t.factory()
}

// Key derives the store key for a document: "{name}:{id}".
func (t Type[T]) Key(doc T) (string, error) {
	return t.KeyOf(doc.DocumentID())
}

// KeyOf derives the store key for an identifier: "{name}:{id}".
func (t Type[T]) KeyOf(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w (type %q)", ErrEmptyID, t.name)
	}
	return t.name + ":" + id, nil
}

// IDFromKey strips the key base prefix from a store key, recovering the
// document identifier.
func (t Type[T]) IDFromKey(key string) string {
	return strings.TrimPrefix(key, t.name+":")
}
