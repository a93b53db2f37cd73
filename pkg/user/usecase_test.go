package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/repository/inmem"
	"github.com/qkart/backend/pkg/user"
)

const (
	defaultAddress = "ADDRESS_NOT_SET"
	defaultWallet  = int64(500)
)

func newDirectory() user.Directory {
	return user.NewDirectory(inmem.NewUserRepository(), defaultAddress, defaultWallet)
}

func TestDirectory_Create(t *testing.T) {
	d := newDirectory()

	u, err := d.Create(context.Background(), user.CreateInput{
		Name:     "crio user",
		Email:    "Crio-User@gmail.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, u.ID)
	require.Equal(t, "crio-user@gmail.com", u.Email, "email must be lowercased")
	require.Equal(t, defaultWallet, u.WalletMoney)
	require.Equal(t, defaultAddress, u.Address)
	require.NotEqual(t, "pass1234", u.PasswordHash, "password must never be stored in clear")
	require.NotEmpty(t, u.PasswordHash)
}

func TestDirectory_Create_DuplicateEmail(t *testing.T) {
	d := newDirectory()
	ctx := context.Background()

	_, err := d.Create(ctx, user.CreateInput{Name: "a", Email: "dup@example.com", Password: "pass1234"})
	require.NoError(t, err)

	_, err = d.Create(ctx, user.CreateInput{Name: "b", Email: "dup@example.com", Password: "pass1234"})
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDirectory_Create_Invalid(t *testing.T) {
	d := newDirectory()
	ctx := context.Background()

	tests := []struct {
		name  string
		input user.CreateInput
	}{
		{"missing name", user.CreateInput{Email: "a@b.com", Password: "pass1234"}},
		{"missing email", user.CreateInput{Name: "a", Password: "pass1234"}},
		{"missing password", user.CreateInput{Name: "a", Email: "a@b.com"}},
		{"malformed email", user.CreateInput{Name: "a", Email: "not-an-email", Password: "pass1234"}},
		{"password without digit", user.CreateInput{Name: "a", Email: "a@b.com", Password: "justletters"}},
		{"password without letter", user.CreateInput{Name: "a", Email: "a@b.com", Password: "12345678"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Create(ctx, tt.input)
			require.Error(t, err)
			require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}
}

func TestDirectory_Lookups(t *testing.T) {
	d := newDirectory()
	ctx := context.Background()

	created, err := d.Create(ctx, user.CreateInput{Name: "a", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	byID, err := d.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)

	byEmail, err := d.GetByEmail(ctx, "A@B.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = d.GetByID(ctx, uuid.New())
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDirectory_Address(t *testing.T) {
	d := newDirectory()
	ctx := context.Background()

	u, err := d.Create(ctx, user.CreateInput{Name: "a", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)
	require.False(t, d.HasNonDefaultAddress(u))

	addr, err := d.SetAddress(ctx, u, "123 Main Street, Springfield")
	require.NoError(t, err)
	require.Equal(t, "123 Main Street, Springfield", addr)

	updated, err := d.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, d.HasNonDefaultAddress(updated))

	view, err := d.AddressByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, view.ID)
	require.Equal(t, u.Email, view.Email)
	require.Equal(t, "123 Main Street, Springfield", view.Address)
}
