package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type sendRequest struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  []byte `json:"body"` // base64 over the wire, opaque ciphertext
}

type sendResponse struct {
	CreatedAt int64 `json:"created_at"`
}

type messageDTO struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Title     string `json:"title"`
	Body      []byte `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

type listResponse struct {
	Messages []messageDTO `json:"messages"`
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type updateProfileRequest struct {
	Password        *string `json:"password,omitempty"`
	ProfileImageRef *string `json:"profile_image_ref,omitempty"`
}

type profileResponse struct {
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorCode maps a service error to the stable machine-readable code and the
// HTTP status the API contract promises for it.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrUsernameTaken):
		return http.StatusConflict, "username_taken"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, common.ErrSessionExpired):
		return http.StatusUnauthorized, "session_expired"
	case errors.Is(err, common.ErrSessionInvalid):
		return http.StatusUnauthorized, "session_invalid"
	case errors.Is(err, common.ErrUnknownRecipient):
		return http.StatusNotFound, "unknown_recipient"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, common.ErrTitleTooLong):
		return http.StatusBadRequest, "title_too_long"
	case errors.Is(err, common.ErrEmptyBody):
		return http.StatusBadRequest, "empty_body"
	case errors.Is(err, common.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, common.ErrStorageFull):
		return http.StatusInsufficientStorage, "storage_full"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
