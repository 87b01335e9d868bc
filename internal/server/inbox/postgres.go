package inbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// PostgresRepository persists inboxes in the messages table. Each append is
// a single INSERT, so a dropped connection can never leave a torn write.
type PostgresRepository struct {
	db       *sql.DB
	capacity int
}

func NewPostgresRepository(db *sql.DB, capacity int) (*PostgresRepository, error) {
	return &PostgresRepository{db: db, capacity: capacity}, nil
}

func (r *PostgresRepository) Append(ctx context.Context, owner string, msg *models.Message) error {

	if r.capacity > 0 {
		var count int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM messages WHERE recipient = $1`, owner).Scan(&count)
		if err != nil {
			return fmt.Errorf("db error: %v", err)
		}
		if count >= r.capacity {
			return common.ErrStorageFull
		}
	}

	query :=
		`INSERT INTO messages (id, sender, recipient, title, body, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.From, owner, msg.Title, msg.Body, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, owner string) ([]models.Message, error) {
	query :=
		`SELECT id, sender, recipient, title, body, created_at FROM messages
		 WHERE recipient = $1
		 ORDER BY created_at ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Title, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return out, nil
}
