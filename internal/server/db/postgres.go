package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/inbox"
	"github.com/dmitrijs2005/stgmsg/internal/server/migrations"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

// PostgresRepositoryManager backs accounts and inboxes with postgres.
// Sessions stay in memory by default (they are per-process anyway) unless
// the caller swaps in the redis repository.
type PostgresRepositoryManager struct {
	db       *sql.DB
	accounts accounts.Repository
	sessions sessions.Repository
	inboxes  inbox.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *PostgresRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *PostgresRepositoryManager) Inboxes() inbox.Repository {
	return m.inboxes
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresRepositoryManager opens the database, builds the repositories
// and applies pending migrations. sessionRepo may be nil, in which case the
// in-memory session table is used.
func NewPostgresRepositoryManager(dsn string, inboxCapacity int, sessionRepo sessions.Repository) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	accountRepo, err := accounts.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("account repo creation error: %w", err)
	}

	inboxRepo, err := inbox.NewPostgresRepository(db, inboxCapacity)
	if err != nil {
		return nil, fmt.Errorf("inbox repo creation error: %w", err)
	}

	if sessionRepo == nil {
		sessionRepo = sessions.NewMemoryRepository()
	}

	m := &PostgresRepositoryManager{
		db:       db,
		accounts: accountRepo,
		sessions: sessionRepo,
		inboxes:  inboxRepo,
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
