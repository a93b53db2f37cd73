package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

// User is a domain entity representing a registered customer.
// PasswordHash holds the bcrypt digest; the raw password is never stored.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	WalletMoney  int64     `json:"walletMoney"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AddressView is the minimized projection returned for address lookups.
type AddressView struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
}

// Repository abstracts persistence concerns from the domain layer.
type Repository interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, address string) error
}
