package user

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qkart/backend/pkg/apperr"
)

// Directory describes lookup and lifecycle operations on user records.
type Directory interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, input CreateInput) (User, error)
	AddressByID(ctx context.Context, id uuid.UUID) (AddressView, error)
	SetAddress(ctx context.Context, u User, address string) (string, error)
	HasNonDefaultAddress(u User) bool
}

// CreateInput carries the fields accepted at registration time.
type CreateInput struct {
	Name     string
	Email    string
	Password string
}

type directory struct {
	repo           Repository
	defaultAddress string
	defaultWallet  int64
}

var emailCheck = validator.New()

// NewDirectory returns the default Directory implementation. defaultAddress
// is the sentinel meaning "no address set"; defaultWallet seeds new wallets.
func NewDirectory(repo Repository, defaultAddress string, defaultWallet int64) Directory {
	return &directory{repo: repo, defaultAddress: defaultAddress, defaultWallet: defaultWallet}
}

func (d *directory) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, apperr.Internal("failed to fetch user", err)
	}
	return u, nil
}

func (d *directory) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := d.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, apperr.Internal("failed to fetch user", err)
	}
	return u, nil
}

func (d *directory) Create(ctx context.Context, input CreateInput) (User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return User{}, apperr.InvalidArgument("name, email and password are required")
	}
	if err := emailCheck.Var(input.Email, "email"); err != nil {
		return User{}, apperr.InvalidArgument("email is invalid")
	}
	if !passwordWellFormed(input.Password) {
		return User{}, apperr.InvalidArgument("password must contain at least one letter and one number")
	}

	taken, err := d.isEmailTaken(ctx, input.Email)
	if err != nil {
		return User{}, apperr.Internal("failed to check email uniqueness", err)
	}
	if taken {
		return User{}, apperr.Conflict("email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Internal("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		WalletMoney:  d.defaultWallet,
		Address:      d.defaultAddress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := d.repo.Create(ctx, u); err != nil {
		// The uniqueness pre-check races with concurrent registrations;
		// the store's unique index is authoritative.
		if errors.Is(err, ErrEmailTaken) {
			return User{}, apperr.Conflict("email already taken")
		}
		return User{}, apperr.Internal("failed to create user", err)
	}
	return u, nil
}

func (d *directory) AddressByID(ctx context.Context, id uuid.UUID) (AddressView, error) {
	u, err := d.GetByID(ctx, id)
	if err != nil {
		return AddressView{}, err
	}
	return AddressView{ID: u.ID, Email: u.Email, Address: u.Address}, nil
}

func (d *directory) SetAddress(ctx context.Context, u User, address string) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", apperr.InvalidArgument("address is required")
	}
	if err := d.repo.UpdateAddress(ctx, u.ID, address); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Internal("failed to update address", err)
	}
	return address, nil
}

func (d *directory) HasNonDefaultAddress(u User) bool {
	return u.Address != d.defaultAddress
}

func (d *directory) isEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := d.repo.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// passwordWellFormed reports whether pw has at least one letter and one
// digit.
func passwordWellFormed(pw string) bool {
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
