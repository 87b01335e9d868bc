package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// MemoryRepository is the in-process user store. All mutation is serialized
// behind one RWMutex; reads return copies so callers cannot alias internal
// state.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrUsernameTaken
	}

	r.users[user.Username] = *user
	u := *user
	return &u, nil
}

func (r *MemoryRepository) Get(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; !ok {
		return common.ErrNotFound
	}
	r.users[user.Username] = *user
	return nil
}
