package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/qkart/backend/pkg/apperr"
	"github.com/qkart/backend/pkg/security/token"
	"github.com/qkart/backend/pkg/user"
)

// UseCase describes authentication/registration behavior.
type UseCase interface {
	Register(ctx context.Context, input user.CreateInput) (Result, error)
	Login(ctx context.Context, email, password string) (Result, error)
}

// Result bundles the authenticated user with a fresh access token.
type Result struct {
	User   user.User
	Access token.AccessToken
}

type authService struct {
	users  user.Directory
	tokens *token.Service
}

// NewService returns the default implementation of UseCase.
func NewService(users user.Directory, tokens *token.Service) UseCase {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, input user.CreateInput) (Result, error) {
	u, err := s.users.Create(ctx, input)
	if err != nil {
		return Result{}, err
	}
	access, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return Result{}, apperr.Internal("failed to issue token", err)
	}
	return Result{User: u, Access: access}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (Result, error) {
	if email == "" || password == "" {
		return Result{}, apperr.InvalidArgument("email and password are required")
	}

	// The same message covers both the missing-user and wrong-password
	// paths so responses cannot be used to enumerate accounts.
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return Result{}, apperr.Unauthenticated("incorrect email or password")
		}
		return Result{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Result{}, apperr.Unauthenticated("incorrect email or password")
	}

	access, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return Result{}, apperr.Internal("failed to issue token", err)
	}
	return Result{User: u, Access: access}, nil
}
