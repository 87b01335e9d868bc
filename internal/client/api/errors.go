package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// sentinelByCode maps the server's stable error codes back to the sentinel
// errors the rest of the client matches with errors.Is.
var sentinelByCode = map[string]error{
	"username_taken":      common.ErrUsernameTaken,
	"invalid_credentials": common.ErrInvalidCredentials,
	"session_expired":     common.ErrSessionExpired,
	"session_invalid":     common.ErrSessionInvalid,
	"unknown_recipient":   common.ErrUnknownRecipient,
	"not_found":           common.ErrNotFound,
	"title_too_long":      common.ErrTitleTooLong,
	"empty_body":          common.ErrEmptyBody,
	"body_too_large":      common.ErrBodyTooLarge,
	"storage_full":        common.ErrStorageFull,
	"internal":            common.ErrInternal,
}

func decodeError(resp *http.Response) error {
	var er struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
		if sentinel, ok := sentinelByCode[er.Error]; ok {
			return sentinel
		}
		if er.Error != "" {
			return fmt.Errorf("server error: %s (status %d)", er.Error, resp.StatusCode)
		}
	}
	return fmt.Errorf("server error: status %d", resp.StatusCode)
}
