// Package accounts implements the registered-user store: registration with
// salted password hashing, credential verification, and profile updates.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// Repository persists user records. Implementations must treat usernames as
// case-sensitive unique keys and must return common.ErrUsernameTaken from
// Create on a duplicate and common.ErrNotFound from Get/Update on a missing
// user.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
