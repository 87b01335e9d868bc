package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stgmsg/internal/logging"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/images"
	"github.com/dmitrijs2005/stgmsg/internal/server/inbox"
	"github.com/dmitrijs2005/stgmsg/internal/server/relay"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (n nopLogger) With(args ...any) logging.Logger                  { return n }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	acc := accounts.NewService(accounts.NewMemoryRepository())
	se := sessions.NewService(acc, sessions.NewMemoryRepository(), "test-secret", time.Hour)
	rl := relay.NewService(se, acc, inbox.NewMemoryRepository(10), 4096, nopLogger{})
	img := images.NewService(images.Settings{
		RootUser:     "admin",
		RootPassword: "secretpassword",
		Bucket:       "avatars",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	})

	srv := NewServer(":0", acc, se, rl, img, nopLogger{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func register(t *testing.T, ts *httptest.Server, username, password string) {
	t.Helper()
	resp, _ := doJSON(t, ts, http.MethodPost, "/api/register", "", registerRequest{Username: username, Password: password})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	resp, body := doJSON(t, ts, http.MethodPost, "/api/login", "", loginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr loginResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	require.NotEmpty(t, lr.Token)
	return lr.Token
}

func errCode(t *testing.T, body []byte) string {
	t.Helper()
	var er errorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := doJSON(t, ts, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw1")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/register", "", registerRequest{Username: "alice", Password: "pw2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "username_taken", errCode(t, body))
}

func TestRegister_MissingFields(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := doJSON(t, ts, http.MethodPost, "/api/register", "", registerRequest{Username: "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "correct")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/login", "", loginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", errCode(t, body))
}

func TestLogin_UnknownUserSameCodeAsWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, http.MethodPost, "/api/login", "", loginRequest{Username: "ghost", Password: "pw"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", errCode(t, body))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/logout"},
		{http.MethodPost, "/api/messages"},
		{http.MethodGet, "/api/messages"},
		{http.MethodPost, "/api/profile/upload-url"},
		{http.MethodPut, "/api/profile"},
		{http.MethodGet, "/api/profile"},
	} {
		resp, body := doJSON(t, ts, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "session_invalid", errCode(t, body))
	}
}

func TestSendAndList_RoundTrip(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	register(t, ts, "bob", "pw")
	aliceToken := login(t, ts, "alice", "pw")
	bobToken := login(t, ts, "bob", "pw")

	ciphertext := []byte{0x01, 0x02, 0xfe, 0xff, 0x00, 0x7f}
	resp, body := doJSON(t, ts, http.MethodPost, "/api/messages", aliceToken,
		sendRequest{To: "bob", Title: "greeting", Body: ciphertext})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sr sendResponse
	require.NoError(t, json.Unmarshal(body, &sr))
	assert.Positive(t, sr.CreatedAt)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/messages", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr listResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	require.Len(t, lr.Messages, 1)
	assert.Equal(t, "alice", lr.Messages[0].From)
	assert.Equal(t, "greeting", lr.Messages[0].Title)
	assert.Equal(t, ciphertext, lr.Messages[0].Body)
	assert.Equal(t, sr.CreatedAt, lr.Messages[0].CreatedAt)

	// Sender's own inbox stays empty.
	resp, body = doJSON(t, ts, http.MethodGet, "/api/messages", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.Empty(t, lr.Messages)
}

func TestSend_UnknownRecipient(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/messages", token,
		sendRequest{To: "ghost", Title: "x", Body: []byte("y")})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "unknown_recipient", errCode(t, body))
}

func TestSend_BodyTooLarge(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	register(t, ts, "bob", "pw")
	token := login(t, ts, "alice", "pw")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/messages", token,
		sendRequest{To: "bob", Title: "x", Body: make([]byte, 4097)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "body_too_large", errCode(t, body))
}

func TestSend_EmptyBody(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	register(t, ts, "bob", "pw")
	token := login(t, ts, "alice", "pw")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/messages", token,
		sendRequest{To: "bob", Title: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "empty_body", errCode(t, body))
}

func TestLogout_RevokesToken(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/messages", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "session_invalid", errCode(t, body))
}

func TestLogout_Idempotent(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "old")
	token := login(t, ts, "alice", "old")

	newPassword := "new"
	resp, _ := doJSON(t, ts, http.MethodPut, "/api/profile", token,
		updateProfileRequest{Password: &newPassword})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/login", "", loginRequest{Username: "alice", Password: "new"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/login", "", loginRequest{Username: "alice", Password: "old"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile_EmptyRequest(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, _ := doJSON(t, ts, http.MethodPut, "/api/profile", token, updateProfileRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadURL_ReturnsKeyAndPresignedURL(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/profile/upload-url", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ur uploadURLResponse
	require.NoError(t, json.Unmarshal(body, &ur))
	assert.Contains(t, ur.Key, "avatars/")
	assert.Contains(t, ur.URL, "avatars/")
}

func TestGetProfile(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "pw")
	token := login(t, ts, "alice", "pw")

	resp, body := doJSON(t, ts, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pr profileResponse
	require.NoError(t, json.Unmarshal(body, &pr))
	assert.Equal(t, "alice", pr.Username)
	assert.Empty(t, pr.ProfileImageURL)
}
