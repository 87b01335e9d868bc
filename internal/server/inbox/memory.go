package inbox

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// MemoryRepository keeps one inbox per user, each behind its own mutex, so
// sends to unrelated recipients never contend. The outer RWMutex only guards
// the owner map itself.
type MemoryRepository struct {
	capacity int

	mu      sync.RWMutex
	inboxes map[string]*userInbox
}

type userInbox struct {
	mu       sync.Mutex
	messages []models.Message
}

// NewMemoryRepository creates an in-process store; capacity bounds the number
// of messages held per user (0 means unbounded).
func NewMemoryRepository(capacity int) *MemoryRepository {
	return &MemoryRepository{
		capacity: capacity,
		inboxes:  make(map[string]*userInbox),
	}
}

func (r *MemoryRepository) inbox(owner string) *userInbox {
	r.mu.RLock()
	ib, ok := r.inboxes[owner]
	r.mu.RUnlock()
	if ok {
		return ib
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ib, ok = r.inboxes[owner]; !ok {
		ib = &userInbox{}
		r.inboxes[owner] = ib
	}
	return ib
}

func (r *MemoryRepository) Append(ctx context.Context, owner string, msg *models.Message) error {
	ib := r.inbox(owner)

	ib.mu.Lock()
	defer ib.mu.Unlock()

	if r.capacity > 0 && len(ib.messages) >= r.capacity {
		return common.ErrStorageFull
	}

	// The message is copied in under the inbox lock, so it is either fully
	// recorded or not recorded at all, and it is visible to any List that
	// starts after Append returns. The body is deep-copied: stored messages
	// must stay immutable even if the caller reuses its buffer.
	m := *msg
	m.Body = append([]byte(nil), msg.Body...)
	ib.messages = append(ib.messages, m)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, owner string) ([]models.Message, error) {
	ib := r.inbox(owner)

	ib.mu.Lock()
	out := make([]models.Message, len(ib.messages))
	copy(out, ib.messages)
	ib.mu.Unlock()

	// Appends happen in created_at order in practice, but the contract is
	// ascending created_at, so make it explicit.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}
