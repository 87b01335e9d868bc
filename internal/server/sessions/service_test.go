package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
)

func newTestService(t *testing.T, validity time.Duration) *Service {
	t.Helper()

	acc := accounts.NewService(accounts.NewMemoryRepository())
	_, err := acc.Register(context.Background(), "alice", "pw1", "")
	require.NoError(t, err)
	_, err = acc.Register(context.Background(), "bob", "pw2", "")
	require.NoError(t, err)

	return NewService(acc, NewMemoryRepository(), "test-secret", validity)
}

func TestLogin_Authenticate_RoundTrip(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	// Unknown user yields the identical error: no username enumeration.
	_, err = s.Login(ctx, "nobody", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_InvalidatesPriorToken(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	first, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	second, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, first)
	require.ErrorIs(t, err, common.ErrSessionInvalid)

	username, err := s.Authenticate(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestLogout_Idempotent(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, token))

	_, err = s.Authenticate(ctx, token)
	require.ErrorIs(t, err, common.ErrSessionInvalid)

	// Second logout and garbage logouts are no-ops.
	require.NoError(t, s.Logout(ctx, token))
	require.NoError(t, s.Logout(ctx, "garbage-token"))
}

func TestLogout_StaleTokenDoesNotRevokeNewSession(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	old, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	fresh, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, old))

	username, err := s.Authenticate(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestAuthenticate_Expired(t *testing.T) {
	s := newTestService(t, -time.Minute) // already past the window when issued
	ctx := context.Background()

	token, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, token)
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestAuthenticate_Garbage(t *testing.T) {
	s := newTestService(t, time.Hour)

	_, err := s.Authenticate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, common.ErrSessionInvalid)
}

func TestAuthenticate_ForgedSignature(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	forged := NewService(accounts.NewService(accounts.NewMemoryRepository()), NewMemoryRepository(), "other-secret", time.Hour)
	_, err = forged.Authenticate(ctx, token)
	require.ErrorIs(t, err, common.ErrSessionInvalid)
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	aliceToken, err := s.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	bobToken, err := s.Login(ctx, "bob", "pw2")
	require.NoError(t, err)

	// Bob's login must not disturb Alice's session.
	username, err := s.Authenticate(ctx, aliceToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	username, err = s.Authenticate(ctx, bobToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
}
