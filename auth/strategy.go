package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

// ErrInvalidCredentials is returned by a CredentialVerifier when the
// username is unknown or the password does not match. The two cases are
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a username/password pair. Used only at login.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// LocalStrategy verifies credentials against the user store.
type LocalStrategy struct {
	users store.UserStore
}

// NewLocalStrategy creates a LocalStrategy.
func NewLocalStrategy(users store.UserStore) *LocalStrategy {
	return &LocalStrategy{users: users}
}

// VerifyCredentials looks the user up and compares the bcrypt hash.
func (s *LocalStrategy) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// JWTStrategy verifies a bearer token and loads its subject from the store,
// so a token for a deleted account stops working immediately.
type JWTStrategy struct {
	tokens *TokenService
	users  store.UserStore
}

// NewJWTStrategy creates a JWTStrategy.
func NewJWTStrategy(tokens *TokenService, users store.UserStore) *JWTStrategy {
	return &JWTStrategy{tokens: tokens, users: users}
}

// VerifyToken parses the token and returns the user named by its subject.
func (s *JWTStrategy) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

var (
	_ CredentialVerifier = (*LocalStrategy)(nil)
	_ TokenVerifier      = (*JWTStrategy)(nil)
)
