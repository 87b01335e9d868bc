// Package httpapi exposes the relay over a JSON HTTP API. Handlers are thin:
// they decode requests, call the services and translate service errors to
// the stable error codes the client maps back to sentinel errors.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/stgmsg/internal/logging"
	"github.com/dmitrijs2005/stgmsg/internal/server/accounts"
	"github.com/dmitrijs2005/stgmsg/internal/server/images"
	"github.com/dmitrijs2005/stgmsg/internal/server/relay"
	"github.com/dmitrijs2005/stgmsg/internal/server/sessions"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	accounts *accounts.Service
	sessions *sessions.Service
	relay    *relay.Service
	images   *images.Service
	logger   logging.Logger
	srv      *http.Server
}

func NewServer(addr string, acc *accounts.Service, se *sessions.Service, rl *relay.Service, img *images.Service, logger logging.Logger) *Server {
	s := &Server{
		accounts: acc,
		sessions: se,
		relay:    rl,
		images:   img,
		logger:   logger.With("module", "httpapi"),
	}
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/messages", s.handleSend).Methods(http.MethodPost)
	authed.HandleFunc("/messages", s.handleList).Methods(http.MethodGet)
	authed.HandleFunc("/profile/upload-url", s.handleUploadURL).Methods(http.MethodPost)
	authed.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)

	return r
}

// Handler exposes the configured router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ListenAndServe returns. http.ErrServerClosed (normal
// shutdown) is not reported as an error.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "HTTP endpoint listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, bounded by shutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Error(context.Background(), "Response encoding failed", "error", err)
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorCode(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: code})
}
