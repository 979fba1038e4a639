// Package gateway is the persistence boundary of the storefront: named
// collections of JSON documents with create/read/update/delete, ordered
// queries and change subscriptions.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned (wrapped in a PersistenceError) when a document
// does not exist.
var ErrNotFound = errors.New("document not found")

// Document is one stored record. Data never contains the id.
type Document struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Decode unmarshals the document body into v
func (d Document) Decode(v interface{}) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// Query narrows and orders a List or Subscribe call. Where matches fields by
// equality. OrderBy compares numbers numerically, RFC3339 strings
// chronologically and anything else as text.
type Query struct {
	Where   map[string]interface{}
	OrderBy string
	Desc    bool
	Limit   int
}

// Gateway is implemented by MemoryGateway and PostgresGateway
type Gateway interface {
	Create(ctx context.Context, collection string, record interface{}) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string, q Query) ([]Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, collection, id string) error
	// Subscribe delivers the matching documents right away and again after
	// every change to the collection until unsubscribe is called.
	Subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (unsubscribe func(), err error)
	Close() error
}

// PersistenceError wraps any failure of a gateway operation
type PersistenceError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("gateway %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("gateway %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the document does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func persistenceError(op, collection, id string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Collection: collection, ID: id, Err: err}
}
