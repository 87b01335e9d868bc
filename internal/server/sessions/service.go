package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// Claims are the JWT claims of a session token: the registered set plus the
// authenticated username.
type Claims struct {
	jwt.RegisteredClaims
	Username string
}

type Service struct {
	accounts         *accounts.Service
	repo             Repository
	jwtSecret        []byte
	validityDuration time.Duration
}

func NewService(accounts *accounts.Service, repo Repository, secretKey string, validity time.Duration) *Service {
	return &Service{
		accounts:         accounts,
		repo:             repo,
		jwtSecret:        []byte(secretKey),
		validityDuration: validity,
	}
}

// Login verifies the credentials and issues a new token, invalidating any
// prior token for the username. Unknown user and wrong password both come
// back as common.ErrInvalidCredentials so callers cannot probe for existing
// usernames.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	ok, err := s.accounts.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		Username:  username,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.validityDuration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		Username: username,
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("token signing: %w", err)
	}

	// Put replaces the previous session atomically, which is what revokes
	// the older token.
	if err := s.repo.Put(ctx, session); err != nil {
		return "", common.ErrInternal
	}

	return signed, nil
}

// Authenticate resolves a token to a username. Tokens past their validity
// window fail with common.ErrSessionExpired; tokens that were never issued,
// were revoked, or were superseded by a newer login fail with
// common.ErrSessionInvalid.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrSessionExpired
		}
		return "", common.ErrSessionInvalid
	}

	session, err := s.repo.Get(ctx, claims.Username)
	if err != nil {
		return "", common.ErrSessionInvalid
	}
	if session.TokenID != claims.ID {
		return "", common.ErrSessionInvalid
	}
	if time.Now().After(session.ExpiresAt) {
		return "", common.ErrSessionExpired
	}

	return claims.Username, nil
}

// Logout revokes the token. Idempotent: logging out an unknown, expired or
// already revoked token is not an error. A stale token never revokes a newer
// session of the same user.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.repo.Delete(ctx, claims.Username, claims.ID)
}

func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, common.ErrSessionInvalid
	}

	return claims, nil
}
