package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
)

func (s *Server) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("request decoding: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Username, req.Password, "")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, registerResponse{
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Unix(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}

	token, err := s.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := s.decode(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}

	createdAt, err := s.relay.Send(r.Context(), tokenFromContext(r.Context()), req.To, req.Title, req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, sendResponse{CreatedAt: createdAt})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	messages, err := s.relay.List(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := listResponse{Messages: make([]messageDTO, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, messageDTO{
			ID:        m.ID,
			From:      m.From,
			Title:     m.Title,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.Authenticate(r.Context(), tokenFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}

	key, url, err := s.images.UploadURL(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	username, err := s.sessions.Authenticate(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateProfileRequest
	if err := s.decode(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}
	if req.Password == nil && req.ProfileImageRef == nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}

	err = s.accounts.Update(r.Context(), username, accounts.UpdateFields{
		Password:        req.Password,
		ProfileImageRef: req.ProfileImageRef,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username, err := s.sessions.Authenticate(r.Context(), tokenFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.accounts.Get(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := profileResponse{
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Unix(),
	}
	if user.ProfileImageRef != "" {
		url, err := s.images.DownloadURL(r.Context(), user.ProfileImageRef)
		if err != nil {
			s.logger.Error(r.Context(), "Profile image presign failed", "error", err)
		} else {
			resp.ProfileImageURL = url
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
