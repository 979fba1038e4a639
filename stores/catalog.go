package stores

import (
	"context"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
)

// ProductStore manages the products collection
type ProductStore struct {
	products collection[models.Product]
}

func NewProductStore(gw gateway.Gateway) *ProductStore {
	return &ProductStore{
		products: newCollection(gw, models.ProductsCollection,
			func(p *models.Product, id string) { p.ID = id },
			gateway.Query{OrderBy: "createdAt", Desc: true}),
	}
}

func (s *ProductStore) Create(ctx context.Context, p models.Product) (string, error) {
	now := time.Now()
	p.ID = ""
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Colors == nil {
		p.Colors = []models.Color{}
	}
	return s.products.Create(ctx, p)
}

// List returns products, optionally restricted to one category
func (s *ProductStore) List(ctx context.Context, category string) ([]models.Product, error) {
	q := gateway.Query{OrderBy: "createdAt", Desc: true}
	if category != "" {
		q.Where = map[string]interface{}{"category": category}
	}
	return s.products.List(ctx, q)
}

func (s *ProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	return s.products.Update(ctx, id, fields)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// Subscribe pushes the whole catalog on every change
func (s *ProductStore) Subscribe(ctx context.Context, onChange func([]models.Product)) (func(), error) {
	return s.products.Subscribe(ctx, gateway.Query{}, onChange)
}

// CategoryStore manages the categories collection
type CategoryStore struct {
	categories collection[models.Category]
}

func NewCategoryStore(gw gateway.Gateway) *CategoryStore {
	return &CategoryStore{
		categories: newCollection(gw, models.CategoriesCollection,
			func(c *models.Category, id string) { c.ID = id },
			gateway.Query{OrderBy: "name"}),
	}
}

func (s *CategoryStore) Create(ctx context.Context, c models.Category) (string, error) {
	c.ID = ""
	c.Normalize()
	return s.categories.Create(ctx, c)
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx, gateway.Query{})
}

func (s *CategoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.categories.Update(ctx, id, fields)
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
