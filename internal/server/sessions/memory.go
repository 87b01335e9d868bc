package sessions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// MemoryRepository keeps active sessions in a mutex-guarded map. Issuance
// and invalidation for the same username serialize on the lock, which is
// what upholds the single-active-session invariant under concurrent logins.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]models.Session)}
}

func (r *MemoryRepository) Put(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Username] = *session
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, username string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, username, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[username]
	if !ok || s.TokenID != tokenID {
		return nil
	}
	delete(r.sessions, username)
	return nil
}
