package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TypeAccess is the only token kind this service issues.
const TypeAccess = "access"

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims carries the subject and token kind alongside the registered set.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

// AccessToken is an issued token together with its expiry instant.
type AccessToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires"`
}

// Service issues and verifies HS256-signed tokens with a process-wide
// secret. Tokens are stateless; nothing is stored server-side.
type Service struct {
	secret    []byte
	accessTTL time.Duration
}

func NewService(secret string, accessTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), accessTTL: accessTTL}
}

// Issue signs a token for subject with the given kind and expiry.
func (s *Service) Issue(subject string, expiresAt time.Time, kind string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Type: kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueAccess issues an access token for userID expiring after the
// configured window.
func (s *Service) IssueAccess(userID uuid.UUID) (AccessToken, error) {
	expiresAt := time.Now().UTC().Add(s.accessTTL)
	signed, err := s.Issue(userID.String(), expiresAt, TypeAccess)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. It returns ErrExpired past expiry and ErrInvalid on any other
// mismatch or tampering.
func (s *Service) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalid
	}
	return *claims, nil
}
