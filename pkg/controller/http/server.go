package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/slack-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/slack-inviter/pkg/utils/metrics"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server hosting the invitation endpoint at the
// root path. m may be nil, in which case /metrics is not served.
func NewServer(ctx context.Context, addr string, invitationUC interfaces.Invitation, m *metrics.Metrics) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx, m))
	router.Use(middleware.Recoverer)

	invitationHandler := NewInvitationHandler(invitationUC)

	router.Get("/health", handleHealth)
	if m != nil {
		router.Handle("/metrics", m.Handler())
	}
	router.Post("/", invitationHandler.HandleInvite)

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "slack-inviter",
	})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
