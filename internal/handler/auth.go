package handler

import (
	"log/slog"
	"net/http"

	"promptvault/internal/domain/services"
	"promptvault/internal/httputil"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account and establishes a session
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Already authenticated: idempotent no-op, report the current identity
	if identity, ok := httputil.GetIdentity(r); ok {
		httputil.RespondJSON(w, http.StatusOK, identity)
		return
	}

	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// Login verifies credentials and establishes a session
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if identity, ok := httputil.GetIdentity(r); ok {
		httputil.RespondJSON(w, http.StatusOK, identity)
		return
	}

	var req services.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Logout ends a session. Tokens are stateless, so the server has nothing to
// forget; the endpoint exists so clients have a uniform logout call.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
