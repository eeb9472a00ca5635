package store

import (
	"context"
	"encoding/json"
)

const (
	CollectionOrders    = "orders"
	CollectionCustomers = "customers"
)

// InitialCounter is the counter value before any order was issued.
const InitialCounter = "0000"

// Collection is a whole keyed collection as it sits in the backing store.
// Values stay raw so each repository decodes its own record type.
type Collection map[string]json.RawMessage

// Store loads and saves whole collections. Save overwrites everything; a
// crash mid-write can leave a corrupt collection behind, which the next Load
// reports as empty.
type Store interface {
	Load(ctx context.Context, collection string) (Collection, error)
	Save(ctx context.Context, collection string, data Collection) error
}

// CounterStore persists the last issued order identifier.
type CounterStore interface {
	ReadCounter(ctx context.Context) (string, error)
	WriteCounter(ctx context.Context, value string) error
}
