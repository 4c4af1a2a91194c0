// Package odm provides the object-document mapping layer: typed documents
// persisted as JSON values under deterministic "{TypeName}:{id}" keys in the
// remote store.
//
// The package focuses on:
//   - Document identity: deriving stable, unique store keys from a type's
//     key base name and the document's string identifier
//   - A generic CRUD repository per document type, funneling every
//     operation through the shared connection manager
//
// Key Components:
//
//   - Entity: The interface every document type implements. The identifier
//     is excluded from the serialized payload (tag the field `json:"-"`)
//     and re-attached from the store key on read.
//
//   - Type: An explicit type descriptor created with NewType or MustType.
//     It carries the key base name (the scan prefix) and a constructor for
//     the decode path. Key base names are registered process-wide and must
//     be unique; invalid or duplicate registration fails at construction.
//
//   - Repository: Generic CRUD facade (Save, FindByID, FindAll, Delete)
//     bound to exactly one Type and one connection manager.
//
// Usage Example:
//
//	type Account struct {
//		ID      string  `json:"-"`
//		Holder  string  `json:"holder"`
//		Balance float64 `json:"balance"`
//	}
//
//	func (a *Account) DocumentID() string      { return a.ID }
//	func (a *Account) SetDocumentID(id string) { a.ID = id }
//
//	var accountType = odm.MustType("Account", func() *Account { return &Account{} })
//
//	repo := odm.NewRepository(storeClient, accountType)
//	repo.Save(&Account{ID: "acc_001", Holder: "John Smith", Balance: 1000.00})
//	acc, found, err := repo.FindByID("acc_001")
//
// Error Handling:
//
//	Infrastructure failures are swallowed by the connection manager and
//	appear here as absent/empty results. Validation failures (invalid type
//	names, empty identifiers) and data failures (malformed payloads) are
//	programmer or data errors and always propagate.
package odm
