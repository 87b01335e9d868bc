// Package inbox implements the append-only per-user message log. An inbox
// only grows: messages are never mutated or deleted while the process runs.
package inbox

import (
	"context"

	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

// Repository stores messages under their recipient. Append is all-or-nothing
// and must be linearizable with List on the same owner: once Append returns,
// any subsequent List observes the message. Append returns
// common.ErrStorageFull when the owner's capacity is exhausted.
type Repository interface {
	Append(ctx context.Context, owner string, msg *models.Message) error
	List(ctx context.Context, owner string) ([]models.Message, error)
}
