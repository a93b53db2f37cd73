// Package inmem provides map-backed repository implementations used by
// tests and local development.
package inmem

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qkart/backend/pkg/cart"
	"github.com/qkart/backend/pkg/product"
	"github.com/qkart/backend/pkg/user"
)

// UserRepository implements user.Repository in memory.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == strings.ToLower(u.Email) {
			return user.ErrEmailTaken
		}
	}
	u.Email = strings.ToLower(u.Email)
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) UpdateAddress(_ context.Context, id uuid.UUID, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Address = address
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// ProductRepository implements product.Repository in memory.
type ProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]product.Product
}

func NewProductRepository(seed ...product.Product) *ProductRepository {
	r := &ProductRepository{products: make(map[uuid.UUID]product.Product)}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	return r
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

// CartRepository implements cart.Repository in memory. Settle needs the
// user repository to debit wallets the way the transactional store does.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]cart.Cart
	users *UserRepository

	// SettleErr, when set, makes Settle fail without touching state.
	SettleErr error
}

func NewCartRepository(users *UserRepository) *CartRepository {
	return &CartRepository{carts: make(map[string]cart.Cart), users: users}
}

func (r *CartRepository) GetByEmail(_ context.Context, email string) (cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[email]
	if !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *CartRepository) Create(_ context.Context, c cart.Cart) (cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.Email]; ok {
		return cart.Cart{}, errors.New("cart already exists")
	}
	r.carts[c.Email] = cloneCart(c)
	return c, nil
}

func (r *CartRepository) Save(_ context.Context, c cart.Cart) (cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.Email]; !ok {
		return cart.Cart{}, cart.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	r.carts[c.Email] = cloneCart(c)
	return c, nil
}

func (r *CartRepository) Settle(_ context.Context, userID uuid.UUID, email string, total int64) error {
	if r.SettleErr != nil {
		return r.SettleErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[email]
	if !ok {
		return cart.ErrNotFound
	}

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	u, ok := r.users.users[userID]
	if !ok {
		return user.ErrNotFound
	}

	c.Items = []cart.CartItem{}
	c.UpdatedAt = time.Now().UTC()
	r.carts[email] = c
	u.WalletMoney -= total
	u.UpdatedAt = c.UpdatedAt
	r.users.users[userID] = u
	return nil
}

func cloneCart(c cart.Cart) cart.Cart {
	items := make([]cart.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
