package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/projectpad/internal/domain"
)

// respondDomainError maps the domain error taxonomy onto the HTTP surface:
// unauthenticated callers are sent to the sign-in page, authenticated
// callers without rights are sent back to the dashboard, validation failures
// come back as 422 with per-field messages, and anything unexpected is a
// logged 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Redirect(w, r, "/users/sign_in", http.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		if ve, ok := domain.AsValidationError(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": ve.Fields})
			return
		}
		slog.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
