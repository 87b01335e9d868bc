package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/cryptox"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

const saltSize = 32

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateFields selects which mutable fields Update touches. Nil pointers are
// left unchanged.
type UpdateFields struct {
	Password        *string
	ProfileImageRef *string
}

// Register creates a new account. The password is hashed with a per-user
// random salt before it reaches the repository; the returned user carries
// public fields only. Fails with common.ErrUsernameTaken if the username
// exists, leaving the existing record untouched.
func (s *Service) Register(ctx context.Context, username, password, profileImageRef string) (*models.User, error) {

	if username == "" {
		return nil, fmt.Errorf("%w: empty username", common.ErrInternal)
	}

	salt := common.GenerateRandByteArray(saltSize)

	user := &models.User{
		Username:        username,
		PasswordHash:    cryptox.HashPassword([]byte(password), salt),
		Salt:            salt,
		ProfileImageRef: profileImageRef,
		CreatedAt:       time.Now(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	public := created.Public()
	return &public, nil
}

// Verify recomputes the salted hash for the candidate password and compares
// it in constant time. Unknown usernames propagate common.ErrNotFound; the
// session layer is responsible for collapsing that into invalid-credentials.
func (s *Service) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return false, err
	}
	return cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash), nil
}

// Get returns the public fields of a user, common.ErrNotFound if unknown.
// The relay uses it for recipient existence checks.
func (s *Service) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// Update mutates password and/or profile image reference of an existing
// account. A password change re-salts and re-hashes.
func (s *Service) Update(ctx context.Context, username string, fields UpdateFields) error {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return err
	}

	if fields.Password != nil {
		salt := common.GenerateRandByteArray(saltSize)
		user.Salt = salt
		user.PasswordHash = cryptox.HashPassword([]byte(*fields.Password), salt)
	}
	if fields.ProfileImageRef != nil {
		user.ProfileImageRef = *fields.ProfileImageRef
	}

	return s.repo.Update(ctx, user)
}
