// Package relay accepts encrypted messages from authenticated senders and
// serves inbox contents back to recipients. The relay validates envelopes
// and moves ciphertext; it has no path that could decode a message body.
package relay

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/logging"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/inbox"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

// MaxTitleLen bounds message titles, in runes.
const MaxTitleLen = 120

type Service struct {
	sessions     *sessions.Service
	accounts     *accounts.Service
	inbox        inbox.Repository
	maxBodyBytes int
	clock        *monotonicClock
	logger       logging.Logger
}

func NewService(se *sessions.Service, acc *accounts.Service, ib inbox.Repository, maxBodyBytes int, logger logging.Logger) *Service {
	return &Service{
		sessions:     se,
		accounts:     acc,
		inbox:        ib,
		maxBodyBytes: maxBodyBytes,
		clock:        newMonotonicClock(),
		logger:       logger.With("module", "relay"),
	}
}

// Send authenticates the token, validates the envelope and appends the
// message to the recipient's inbox. The sender is always the authenticated
// username; body is stored as received. Returns the server-assigned
// created_at so clients can order and deduplicate on their side.
//
// Auth errors, common.ErrUnknownRecipient and common.ErrStorageFull
// propagate unchanged.
func (s *Service) Send(ctx context.Context, token, to, title string, body []byte) (int64, error) {

	from, err := s.sessions.Authenticate(ctx, token)
	if err != nil {
		return 0, err
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return 0, common.ErrTitleTooLong
	}
	if len(body) == 0 {
		return 0, common.ErrEmptyBody
	}
	if s.maxBodyBytes > 0 && len(body) > s.maxBodyBytes {
		return 0, common.ErrBodyTooLarge
	}

	if _, err := s.accounts.Get(ctx, to); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.ErrUnknownRecipient
		}
		return 0, fmt.Errorf("recipient lookup: %w", err)
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Title:     title,
		Body:      body,
		CreatedAt: s.clock.Next(),
	}

	if err := s.inbox.Append(ctx, to, msg); err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "Message relayed", "from", from, "to", to, "created_at", msg.CreatedAt)
	return msg.CreatedAt, nil
}

// List returns the authenticated user's full inbox, ordered by created_at
// ascending. Nothing is deleted or marked read: repeated calls return a
// growing superset as new messages arrive.
func (s *Service) List(ctx context.Context, token string) ([]models.Message, error) {
	owner, err := s.sessions.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.inbox.List(ctx, owner)
}
