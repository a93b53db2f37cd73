package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/qkart/backend/pkg/product"
)

var ErrNotFound = errors.New("cart not found")

// CartItem pairs a product snapshot with a positive quantity. A cart holds
// at most one item per product id.
type CartItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is owned by exactly one user and keyed by the owner's email.
type Cart struct {
	Email     string     `json:"email"`
	Items     []CartItem `json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Repository persists carts as whole documents: every Save replaces the
// stored item sequence with the one passed in.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (Cart, error)
	Create(ctx context.Context, c Cart) (Cart, error)
	Save(ctx context.Context, c Cart) (Cart, error)
	// Settle clears the cart and debits the owner's wallet in a single
	// transaction, so a failure leaves both untouched.
	Settle(ctx context.Context, userID uuid.UUID, email string, total int64) error
}
