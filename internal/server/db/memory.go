package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/inbox"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

// InMemoryRepositoryManager keeps everything in process memory. State does
// not survive a restart; fine for development and for deployments that do
// not need durability.
type InMemoryRepositoryManager struct {
	accounts accounts.Repository
	sessions sessions.Repository
	inboxes  inbox.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m InMemoryRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m InMemoryRepositoryManager) Inboxes() inbox.Repository {
	return m.inboxes
}

func NewInMemoryRepositoryManager(inboxCapacity int) RepositoryManager {
	return InMemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		sessions: sessions.NewMemoryRepository(),
		inboxes:  inbox.NewMemoryRepository(inboxCapacity),
	}
}
