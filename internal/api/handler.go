// Package api exposes the admin HTTP surface over the authorization guard.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pnoren1/Course-App-sub003/internal/service/security"
)

// Handler holds the services the admin API routes dispatch to.
type Handler struct {
	guard      *security.Guard
	recipients *security.RecipientService
	profiles   *security.ProfileService
	logger     *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(guard *security.Guard, recipients *security.RecipientService, profiles *security.ProfileService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		guard:      guard,
		recipients: recipients,
		profiles:   profiles,
		logger:     logger,
	}
}

// Routes mounts all API routes on a new router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/me", h.Me)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/recipients/count", h.RecipientCount)
			r.Get("/profiles/{userID}", h.GetProfile)
			r.Post("/bootstrap", h.Bootstrap)
		})
	})

	return r
}

// Health is the public liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps a domain error to its HTTP status and writes the
// standard error body. Denial messages are stable and deliberately free of
// anything that would confirm whether a user id or email exists.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Genuinely unexpected: log with context, hide details from the client.
		h.logger.ErrorContext(r.Context(), "unexpected error", "path", r.URL.Path, "error", err)
		message = "internal server error"
	}
	if status == http.StatusUnauthorized {
		message = "authentication required"
	}
	writeJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
