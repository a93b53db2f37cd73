package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/product"
	"github.com/qkart/backend/pkg/user"
)

// Engine drives the cart lifecycle for a user: item mutation and checkout
// settlement against the wallet balance.
type Engine interface {
	Get(ctx context.Context, u user.User) (Cart, error)
	AddItem(ctx context.Context, u user.User, productID uuid.UUID, quantity int) (Cart, error)
	UpdateItem(ctx context.Context, u user.User, productID uuid.UUID, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, u user.User, productID uuid.UUID) (Cart, error)
	Checkout(ctx context.Context, u user.User) error
}

type engine struct {
	carts    Repository
	products product.Repository
	users    user.Directory
}

// NewEngine returns the default Engine implementation.
func NewEngine(carts Repository, products product.Repository, users user.Directory) Engine {
	return &engine{carts: carts, products: products, users: users}
}

func (e *engine) Get(ctx context.Context, u user.User) (Cart, error) {
	c, err := e.carts.GetByEmail(ctx, u.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cart{}, apperr.NotFound("user does not have a cart")
		}
		return Cart{}, apperr.Internal("failed to fetch cart", err)
	}
	return c, nil
}

func (e *engine) AddItem(ctx context.Context, u user.User, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, apperr.InvalidArgument("quantity must be at least 1")
	}

	c, err := e.carts.GetByEmail(ctx, u.Email)
	fresh := false
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Cart{}, apperr.Internal("failed to fetch cart", err)
		}
		// Build the new cart in memory only; nothing is persisted until
		// the add itself succeeds, so a rejected add leaves no cart behind.
		now := time.Now().UTC()
		c = Cart{Email: u.Email, Items: []CartItem{}, CreatedAt: now, UpdatedAt: now}
		fresh = true
	}

	p, err := e.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Cart{}, apperr.InvalidArgument("product doesn't exist in database")
		}
		return Cart{}, apperr.Internal("failed to fetch product", err)
	}

	if _, found := findItem(c.Items, productID); found {
		return Cart{}, apperr.Conflict("product already in cart, use the cart sidebar to update or remove product from cart")
	}

	c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})

	if fresh {
		created, err := e.carts.Create(ctx, c)
		if err != nil {
			return Cart{}, apperr.Internal("failed to create cart", err)
		}
		return created, nil
	}
	saved, err := e.carts.Save(ctx, c)
	if err != nil {
		return Cart{}, apperr.Internal("failed to save cart", err)
	}
	return saved, nil
}

func (e *engine) UpdateItem(ctx context.Context, u user.User, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, apperr.InvalidArgument("quantity must be at least 1")
	}

	c, err := e.carts.GetByEmail(ctx, u.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cart{}, apperr.InvalidArgument("user does not have a cart, use POST to create cart and add a product")
		}
		return Cart{}, apperr.Internal("failed to fetch cart", err)
	}

	if _, err := e.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Cart{}, apperr.InvalidArgument("product doesn't exist in database")
		}
		return Cart{}, apperr.Internal("failed to fetch product", err)
	}

	idx, found := findItem(c.Items, productID)
	if !found {
		return Cart{}, apperr.InvalidArgument("product not in cart")
	}

	// Rebuild rather than mutate in place: the stored document is replaced
	// wholesale on Save.
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	items[idx].Quantity = quantity
	c.Items = items

	saved, err := e.carts.Save(ctx, c)
	if err != nil {
		return Cart{}, apperr.Internal("failed to save cart", err)
	}
	return saved, nil
}

func (e *engine) RemoveItem(ctx context.Context, u user.User, productID uuid.UUID) (Cart, error) {
	c, err := e.carts.GetByEmail(ctx, u.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cart{}, apperr.InvalidArgument("user does not have a cart")
		}
		return Cart{}, apperr.Internal("failed to fetch cart", err)
	}

	idx, found := findItem(c.Items, productID)
	if !found {
		return Cart{}, apperr.InvalidArgument("product not in cart")
	}

	// Remove exactly the first matching item.
	items := make([]CartItem, 0, len(c.Items)-1)
	items = append(items, c.Items[:idx]...)
	items = append(items, c.Items[idx+1:]...)
	c.Items = items

	saved, err := e.carts.Save(ctx, c)
	if err != nil {
		return Cart{}, apperr.Internal("failed to save cart", err)
	}
	return saved, nil
}

func (e *engine) Checkout(ctx context.Context, u user.User) error {
	c, err := e.carts.GetByEmail(ctx, u.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("user does not have a cart")
		}
		return apperr.Internal("failed to fetch cart", err)
	}

	if len(c.Items) == 0 {
		return apperr.InvalidArgument("cart is empty")
	}
	if !e.users.HasNonDefaultAddress(u) {
		return apperr.InvalidArgument("user has not set address")
	}

	var total int64
	for _, item := range c.Items {
		total += item.Product.Cost * int64(item.Quantity)
	}
	if total > u.WalletMoney {
		return apperr.InvalidArgument("insufficient wallet money")
	}

	if err := e.carts.Settle(ctx, u.ID, u.Email, total); err != nil {
		return apperr.Internal("failed to settle checkout", err)
	}
	return nil
}

// findItem returns the index of the first item matching productID.
func findItem(items []CartItem, productID uuid.UUID) (int, bool) {
	for i, item := range items {
		if item.Product.ID == productID {
			return i, true
		}
	}
	return -1, false
}
