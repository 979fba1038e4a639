// Package stores is the typed access layer over the persistence gateway.
// Gateway documents are decoded into models at this boundary.
package stores

import (
	"context"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/utils"
)

// collection is a typed view over one gateway collection
type collection[T any] struct {
	gw           gateway.Gateway
	name         string
	setID        func(*T, string)
	defaultQuery gateway.Query
}

func newCollection[T any](gw gateway.Gateway, name string, setID func(*T, string), defaultQuery gateway.Query) collection[T] {
	return collection[T]{gw: gw, name: name, setID: setID, defaultQuery: defaultQuery}
}

func (c collection[T]) decode(doc gateway.Document) (T, error) {
	var v T
	if err := doc.Decode(&v); err != nil {
		return v, err
	}
	c.setID(&v, doc.ID)
	return v, nil
}

// decodeAll skips documents that do not match the schema rather than
// failing the whole read.
func (c collection[T]) decodeAll(docs []gateway.Document) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := c.decode(d)
		if err != nil {
			utils.LogWarn("skipping malformed %s document %s: %v", c.name, d.ID, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c collection[T]) Create(ctx context.Context, v T) (string, error) {
	return c.gw.Create(ctx, c.name, v)
}

func (c collection[T]) Get(ctx context.Context, id string) (T, error) {
	doc, err := c.gw.Get(ctx, c.name, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decode(doc)
}

func (c collection[T]) List(ctx context.Context, q gateway.Query) ([]T, error) {
	if q.OrderBy == "" && len(q.Where) == 0 && q.Limit == 0 {
		q = c.defaultQuery
	}
	docs, err := c.gw.List(ctx, c.name, q)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(docs), nil
}

func (c collection[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return c.gw.Update(ctx, c.name, id, fields)
}

func (c collection[T]) Delete(ctx context.Context, id string) error {
	return c.gw.DeleteByID(ctx, c.name, id)
}

func (c collection[T]) Subscribe(ctx context.Context, q gateway.Query, onChange func([]T)) (func(), error) {
	if q.OrderBy == "" && len(q.Where) == 0 && q.Limit == 0 {
		q = c.defaultQuery
	}
	return c.gw.Subscribe(ctx, c.name, q, func(docs []gateway.Document) {
		onChange(c.decodeAll(docs))
	})
}
