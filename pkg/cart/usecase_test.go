package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/cart"
	"github.com/qkart/backend/pkg/product"
	"github.com/qkart/backend/pkg/repository/inmem"
	"github.com/qkart/backend/pkg/user"
)

type fixture struct {
	engine cart.Engine
	users  user.Directory
	carts  *inmem.CartRepository
	p1     product.Product
	p2     product.Product
	owner  user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userRepo := inmem.NewUserRepository()
	users := user.NewDirectory(userRepo, "ADDRESS_NOT_SET", 500)
	owner, err := users.Create(ctx, user.CreateInput{Name: "a", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	p1 := product.Product{ID: uuid.New(), Name: "OnePlus 6", Category: "Phones", Cost: 200}
	p2 := product.Product{ID: uuid.New(), Name: "UNIFACTOR Tshirt", Category: "Clothing", Cost: 50}
	products := inmem.NewProductRepository(p1, p2)

	carts := inmem.NewCartRepository(userRepo)
	return &fixture{
		engine: cart.NewEngine(carts, products, users),
		users:  users,
		carts:  carts,
		p1:     p1,
		p2:     p2,
		owner:  owner,
	}
}

// refresh re-reads the owner so wallet/address mutations are visible.
func (f *fixture) refresh(t *testing.T) user.User {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), f.owner.ID)
	require.NoError(t, err)
	return u
}

func TestEngine_Get_NoCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Get(context.Background(), f.owner)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEngine_AddItem_CreatesCartLazily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 2)
	require.NoError(t, err)
	require.Equal(t, f.owner.Email, c.Email)
	require.Len(t, c.Items, 1)
	require.Equal(t, f.p1.ID, c.Items[0].Product.ID)
	require.Equal(t, 2, c.Items[0].Quantity)

	got, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
}

func TestEngine_AddItem_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, uuid.New(), 1)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	// The rejected add must not leave an empty cart behind.
	_, err = f.engine.Get(ctx, f.owner)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEngine_AddItem_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)

	_, err = f.engine.AddItem(ctx, f.owner, f.p1.ID, 3)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// The rejected call must not change the cart.
	c, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 1, c.Items[0].Quantity)
}

func TestEngine_UpdateItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.engine.AddItem(ctx, f.owner, f.p2.ID, 1)
	require.NoError(t, err)

	c, err := f.engine.UpdateItem(ctx, f.owner, f.p1.ID, 5)
	require.NoError(t, err)
	require.Len(t, c.Items, 2, "update must never change item count")

	for _, item := range c.Items {
		switch item.Product.ID {
		case f.p1.ID:
			require.Equal(t, 5, item.Quantity)
		case f.p2.ID:
			require.Equal(t, 1, item.Quantity, "other items must stay untouched")
		}
	}
}

func TestEngine_UpdateItem_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No cart yet.
	_, err := f.engine.UpdateItem(ctx, f.owner, f.p1.ID, 1)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)

	// Unknown product.
	_, err = f.engine.UpdateItem(ctx, f.owner, uuid.New(), 1)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	// Known product, not in cart.
	_, err = f.engine.UpdateItem(ctx, f.owner, f.p2.ID, 1)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestEngine_RemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.RemoveItem(ctx, f.owner, f.p1.ID)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err), "no cart")

	_, err = f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.engine.AddItem(ctx, f.owner, f.p2.ID, 1)
	require.NoError(t, err)

	_, err = f.engine.RemoveItem(ctx, f.owner, uuid.New())
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err), "not in cart")

	c, err := f.engine.RemoveItem(ctx, f.owner, f.p1.ID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, f.p2.ID, c.Items[0].Product.ID)
}

func TestEngine_Checkout_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// wallet 500, product cost 200, qty 2 → remaining 100
	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 2)
	require.NoError(t, err)
	_, err = f.users.SetAddress(ctx, f.owner, "123 Main Street, Springfield")
	require.NoError(t, err)

	require.NoError(t, f.engine.Checkout(ctx, f.refresh(t)))

	c, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Empty(t, c.Items, "cart must be cleared by checkout")
	require.Equal(t, int64(100), f.refresh(t).WalletMoney)
}

func TestEngine_Checkout_NoCart(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Checkout(context.Background(), f.owner)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEngine_Checkout_EmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.engine.RemoveItem(ctx, f.owner, f.p1.ID)
	require.NoError(t, err)

	err = f.engine.Checkout(ctx, f.owner)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestEngine_Checkout_DefaultAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 2)
	require.NoError(t, err)

	err = f.engine.Checkout(ctx, f.owner)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	// Nothing settled.
	require.Equal(t, int64(500), f.refresh(t).WalletMoney)
	c, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestEngine_Checkout_InsufficientWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 200 × 3 = 600 > 500
	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 3)
	require.NoError(t, err)
	_, err = f.users.SetAddress(ctx, f.owner, "123 Main Street, Springfield")
	require.NoError(t, err)

	err = f.engine.Checkout(ctx, f.refresh(t))
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	require.Equal(t, int64(500), f.refresh(t).WalletMoney)
	c, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestEngine_Checkout_SettleFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddItem(ctx, f.owner, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.users.SetAddress(ctx, f.owner, "123 Main Street, Springfield")
	require.NoError(t, err)

	f.carts.SettleErr = errors.New("store down")
	err = f.engine.Checkout(ctx, f.refresh(t))
	require.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	require.Equal(t, int64(500), f.refresh(t).WalletMoney)
	c, err := f.engine.Get(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestEngine_AddItem_InvalidQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.AddItem(context.Background(), f.owner, f.p1.ID, 0)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
