// Package services implements the client-side messaging logic: key
// derivation and message encryption happen here, so the relay only ever
// sees ciphertext.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stgmsg/internal/client/api"
	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/cryptox"
)

// InboxItem is a received message after decryption. Undecryptable is set
// when the ciphertext does not open with the key derived for the sender
// pair, e.g. when the parties use different shared secrets.
type InboxItem struct {
	ID            string
	From          string
	Title         string
	Text          string
	CreatedAt     int64
	Undecryptable bool
}

type Messenger struct {
	api      *api.Client
	deriver  cryptox.KeyDeriver
	username string
}

func NewMessenger(client *api.Client, deriver cryptox.KeyDeriver) *Messenger {
	return &Messenger{api: client, deriver: deriver}
}

func (m *Messenger) Register(ctx context.Context, username, password string) error {
	return m.api.Register(ctx, username, password)
}

// Login authenticates against the relay and remembers the username: it is
// one of the two participants every message key is derived from.
func (m *Messenger) Login(ctx context.Context, username, password string) error {
	if err := m.api.Login(ctx, username, password); err != nil {
		return err
	}
	m.username = username
	return nil
}

func (m *Messenger) Logout(ctx context.Context) error {
	m.username = ""
	return m.api.Logout(ctx)
}

func (m *Messenger) Username() string {
	return m.username
}

func (m *Messenger) IsLoggedIn() bool {
	return m.username != ""
}

// Send encrypts the plaintext with the key derived for the sender/recipient
// pair and relays the resulting ciphertext. The title travels in the clear.
func (m *Messenger) Send(ctx context.Context, to, title, plaintext string) (int64, error) {
	if !m.IsLoggedIn() {
		return 0, common.ErrSessionInvalid
	}

	key, err := m.deriver.DeriveKey(m.username, to)
	if err != nil {
		return 0, fmt.Errorf("key derivation: %w", err)
	}

	ciphertext, err := cryptox.Encrypt(key, []byte(plaintext))
	if err != nil {
		return 0, fmt.Errorf("encryption: %w", err)
	}

	return m.api.Send(ctx, to, title, ciphertext)
}

// Inbox fetches the inbox and decrypts each message with the key derived for
// its sender pair. A message that does not decrypt is returned with
// Undecryptable set rather than failing the whole listing.
func (m *Messenger) Inbox(ctx context.Context) ([]InboxItem, error) {
	if !m.IsLoggedIn() {
		return nil, common.ErrSessionInvalid
	}

	messages, err := m.api.Inbox(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]InboxItem, 0, len(messages))
	for _, msg := range messages {
		item := InboxItem{
			ID:        msg.ID,
			From:      msg.From,
			Title:     msg.Title,
			CreatedAt: msg.CreatedAt,
		}

		key, err := m.deriver.DeriveKey(msg.From, m.username)
		if err != nil {
			return nil, fmt.Errorf("key derivation: %w", err)
		}

		plaintext, err := cryptox.Decrypt(key, msg.Body)
		if err != nil {
			if !errors.Is(err, common.ErrBadCiphertext) {
				return nil, err
			}
			item.Undecryptable = true
		} else {
			item.Text = string(plaintext)
		}

		items = append(items, item)
	}

	return items, nil
}

// SetProfileImage uploads the image bytes to object storage via a presigned
// URL and points the account's profile_image_ref at the new key.
func (m *Messenger) SetProfileImage(ctx context.Context, data []byte) error {
	key, url, err := m.api.UploadURL(ctx)
	if err != nil {
		return err
	}
	if err := m.api.UploadImage(ctx, url, data); err != nil {
		return err
	}
	return m.api.UpdateProfile(ctx, nil, &key)
}

// ChangePassword re-hashes the account password server side. The session
// stays valid.
func (m *Messenger) ChangePassword(ctx context.Context, newPassword string) error {
	return m.api.UpdateProfile(ctx, &newPassword, nil)
}

// Profile returns the authenticated account view, including a presigned
// download URL for the profile image when one is set.
func (m *Messenger) Profile(ctx context.Context) (*api.Profile, error) {
	return m.api.Profile(ctx)
}
