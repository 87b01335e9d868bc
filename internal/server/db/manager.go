// Package db wires repository implementations together behind a single
// manager so the app can switch between the in-memory and postgres stores
// without touching service code.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/inbox"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
	Sessions() sessions.Repository
	Inboxes() inbox.Repository
}
