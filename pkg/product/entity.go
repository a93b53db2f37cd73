package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

// Product is a catalog item. The cart only ever reads it; Cost is the
// single field the settlement math depends on.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Cost     int64     `json:"cost"`
	Rating   int       `json:"rating"`
	Image    string    `json:"image"`
}

// Repository is the read-only port onto the product catalog.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context) ([]Product, error)
}
