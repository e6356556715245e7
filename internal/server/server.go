// Package server exposes the read-only share surface over HTTP: resolving
// share links and issuing or revoking them for stored documents. Editing
// never happens over this surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cmerrors "github.com/jverdier/coursemap/pkg/errors"
	"github.com/jverdier/coursemap/pkg/share"
	"github.com/jverdier/coursemap/pkg/store"
)

// Server handles share-link HTTP traffic.
type Server struct {
	store  store.Store
	shares *share.Manager
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a share server over the given document store and share manager.
func New(st store.Store, shares *share.Manager, opts ...Option) *Server {
	s := &Server{
		store:  st,
		shares: shares,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/shares/{token}", s.handleResolveShare)
	r.Post("/api/documents/{id}/shares", s.handleIssueShare)
	r.Delete("/api/documents/{id}/shares", s.handleRevokeShare)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResolveShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	snapshot, err := s.shares.Resolve(r.Context(), token)
	switch {
	case errors.Is(err, share.ErrNotFound):
		writeError(w, http.StatusNotFound, cmerrors.ErrCodeShareNotFound, "share link not found")
	case errors.Is(err, share.ErrExpired):
		writeError(w, http.StatusGone, cmerrors.ErrCodeShareExpired, "share link has expired")
	case err != nil:
		s.logger.Error("resolve share", "err", err)
		writeError(w, http.StatusInternalServerError, cmerrors.ErrCodeInternal, "internal error")
	default:
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func (s *Server) handleIssueShare(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")

	doc, err := s.store.Load(r.Context(), docID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, cmerrors.ErrCodeDocumentNotFound, "document not found")
		return
	case errors.Is(err, store.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, cmerrors.ErrCodePermissionDenied, "access denied")
		return
	case err != nil:
		s.logger.Error("load document", "doc", docID, "err", err)
		writeError(w, http.StatusInternalServerError, cmerrors.ErrCodeInternal, "internal error")
		return
	}

	link, err := s.shares.Issue(r.Context(), docID, doc)
	if err != nil {
		s.logger.Error("issue share", "doc", docID, "err", err)
		writeError(w, http.StatusInternalServerError, cmerrors.ErrCodeInternal, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleRevokeShare(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")

	if err := s.shares.Revoke(r.Context(), docID); err != nil {
		s.logger.Error("revoke share", "doc", docID, "err", err)
		writeError(w, http.StatusInternalServerError, cmerrors.ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logRequests logs one line per request with status and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
		)
	})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    cmerrors.Code `json:"code"`
		Message string        `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code cmerrors.Code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
