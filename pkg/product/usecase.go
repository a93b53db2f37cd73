package product

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/qkart/backend/pkg/apperr"
)

// Catalog exposes the public read operations over products.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
}

type catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) Catalog { return &catalog{repo: repo} }

func (c *catalog) List(ctx context.Context) ([]Product, error) {
	products, err := c.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list products", err)
	}
	return products, nil
}

func (c *catalog) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	p, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, apperr.NotFound("product not found")
		}
		return Product{}, apperr.Internal("failed to fetch product", err)
	}
	return p, nil
}
