package odm

import (
	"encoding/json"
	"fmt"

	"github.com/dockv/dockv/client"
	"github.com/dockv/dockv/rpc/common"
)

var logger = common.GetLogger("odm")

// Repository is a generic CRUD facade over the connection manager for one
// document type. It handles payload serialization and key derivation; it
// never talks to the store directly, every operation funnels through the
// shared connection manager.
//
// A repository built from an invalid (zero) Type is inert: every method is
// a no-op returning an absent or empty result.
type Repository[T Entity] struct {
	client *client.Client
	typ    Type[T]
}

// NewRepository binds a repository to one document type and one connection
// manager.
func NewRepository[T Entity](c *client.Client, t Type[T]) *Repository[T] {
	if !t.Valid() {
		logger.Errorf("Repository created with invalid document type, all operations are no-ops")
	}
	return &Repository[T]{client: c, typ: t}
}

// Type returns the bound type descriptor.
func (r *Repository[T]) Type() Type[T] {
	return r.typ
}

// --------------------------------------------------------------------------
// CRUD Operations
// --------------------------------------------------------------------------

// Save serializes the document and writes it under its derived key. The
// boolean is false if the underlying write was swallowed by the connection
// manager. The error is non-nil only for validation or serialization
// failures, which always propagate.
func (r *Repository[T]) Save(doc T) (T, bool, error) {
	var zero T
	if !r.typ.Valid() {
		return zero, false, nil
	}

	key, err := r.typ.Key(doc)
	if err != nil {
		return zero, false, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return zero, false, fmt.Errorf("failed to serialize document '%s': %w", key, err)
	}

	if !r.client.Set(key, payload) {
		logger.Errorf("Failed to save document '%s'", key)
		return zero, false, nil
	}

	return doc, true, nil
}

// FindByID fetches and decodes the document stored under "{name}:{id}". The
// boolean is false if the key is missing or the read was swallowed. A
// malformed payload is a data error and propagates.
func (r *Repository[T]) FindByID(id string) (T, bool, error) {
	var zero T
	if !r.typ.Valid() {
		return zero, false, nil
	}

	key, err := r.typ.KeyOf(id)
	if err != nil {
		return zero, false, err
	}

	payload, found := r.client.Get(key)
	if !found {
		return zero, false, nil
	}

	doc := r.typ.New()
	if err := json.Unmarshal(payload, doc); err != nil {
		return zero, false, fmt.Errorf("malformed payload for key '%s': %w", key, err)
	}
	doc.SetDocumentID(id)

	return doc, true, nil
}

// FindAll collects every document of this type via the manager's type-scoped
// scan. The result is an empty slice, not nil, when nothing is stored. A
// malformed payload aborts with the documents decoded so far and an error.
func (r *Repository[T]) FindAll() ([]T, error) {
	docs := make([]T, 0)
	if !r.typ.Valid() {
		return docs, nil
	}

	for _, raw := range r.client.ScanByKeyBase(r.typ.Name()) {
		doc := r.typ.New()
		if err := json.Unmarshal(raw.Value, doc); err != nil {
			return docs, fmt.Errorf("malformed payload for key '%s': %w", raw.Key, err)
		}
		doc.SetDocumentID(r.typ.IDFromKey(raw.Key))
		docs = append(docs, doc)
	}

	return docs, nil
}

// Delete removes the document stored under the document's derived key. The
// error is non-nil only when no key can be derived (empty identifier).
func (r *Repository[T]) Delete(doc T) error {
	if !r.typ.Valid() {
		return nil
	}

	key, err := r.typ.Key(doc)
	if err != nil {
		return err
	}

	r.client.Delete(key)
	return nil
}
