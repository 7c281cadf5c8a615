package handler

import (
	"errors"
	"net/http"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireIdentity extracts the caller identity set by the auth middleware.
// Responds 401 and returns false when the request is unauthenticated.
func requireIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := httputil.GetIdentity(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return models.Identity{}, false
	}
	return identity, true
}
