// Package sessions issues and validates session tokens. Tokens are HS256
// JWTs carrying the username and a token ID (jti); the repository tracks the
// single active token ID per user, so a fresh login atomically invalidates
// the previous session.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// Repository stores the active session per username. Put replaces any prior
// session for the same user in one step; Get returns common.ErrNotFound when
// the user has no live session; Delete removes the session only if the given
// token ID is still the active one.
type Repository interface {
	Put(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, username string) (*models.Session, error)
	Delete(ctx context.Context, username, tokenID string) error
}
