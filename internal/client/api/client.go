// Package api is the HTTP client for the relay's JSON API. It carries the
// session token across calls and translates the server's error codes back
// into the sentinel errors of internal/common.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

const requestTimeout = 10 * time.Second

// Message is a relayed message as the server returns it. Body is ciphertext:
// decryption happens in the messaging service, never here.
type Message struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Title     string `json:"title"`
	Body      []byte `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// Profile is the account view the server returns for the authenticated user.
type Profile struct {
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
	CreatedAt       int64  `json:"created_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient builds a client for the relay at addr (host:port or a full URL).
func NewClient(addr string) *Client {
	baseURL := addr
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Token returns the current session token, empty if not logged in.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("request encoding: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("response decoding: %w", err)
		}
	}
	return nil
}

// Register creates an account. The session remains unauthenticated: callers
// log in separately.
func (c *Client) Register(ctx context.Context, username, password string) error {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	return c.do(ctx, http.MethodPost, "/api/register", in, nil)
}

// Login authenticates and stores the session token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", in, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Logout revokes the session on the server and drops the local token. The
// local token is dropped even if the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.token = ""
	return err
}

// Send relays a prepared ciphertext to the recipient's inbox and returns the
// server-assigned created_at.
func (c *Client) Send(ctx context.Context, to, title string, body []byte) (int64, error) {
	in := struct {
		To    string `json:"to"`
		Title string `json:"title"`
		Body  []byte `json:"body"`
	}{to, title, body}
	var out struct {
		CreatedAt int64 `json:"created_at"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/messages", in, &out); err != nil {
		return 0, err
	}
	return out.CreatedAt, nil
}

// Inbox fetches the full inbox, ordered by created_at ascending.
func (c *Client) Inbox(ctx context.Context) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// UploadURL asks the server for a fresh object key and a presigned PUT URL
// for a profile image upload.
func (c *Client) UploadURL(ctx context.Context) (key, url string, err error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profile/upload-url", nil, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

// UploadImage PUTs the image bytes straight to the presigned URL, bypassing
// the relay.
func (c *Client) UploadImage(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("image upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("image upload: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// UpdateProfile changes the password and/or the profile image reference.
// Nil pointers leave the corresponding field unchanged.
func (c *Client) UpdateProfile(ctx context.Context, password, profileImageRef *string) error {
	in := struct {
		Password        *string `json:"password,omitempty"`
		ProfileImageRef *string `json:"profile_image_ref,omitempty"`
	}{password, profileImageRef}
	return c.do(ctx, http.MethodPut, "/api/profile", in, nil)
}

// Profile fetches the authenticated user's account view.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the server without authentication.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
