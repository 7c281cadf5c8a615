package middleware

import (
	"errors"
	"net/http"
	"strings"

	"promptvault/internal/auth"
	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
	"promptvault/internal/httputil"
)

// publicPaths are reachable without a token
var publicPaths = map[string]bool{
	"/health":            true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// Auth resolves the bearer token into a caller identity and stores it in the
// request context. The user record is loaded on every request so a revoked
// account or changed admin flag takes effect immediately, not at token expiry.
func Auth(verifier auth.TokenVerifier, userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				// Login/register still see the identity when a valid
				// token is presented (idempotent no-op on re-auth)
				if identity, ok := resolveIdentity(r, verifier, userRepo); ok {
					r = httputil.WithIdentity(r, identity)
				}
				next.ServeHTTP(w, r)
				return
			}

			identity, ok := resolveIdentity(r, verifier, userRepo)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}

func resolveIdentity(r *http.Request, verifier auth.TokenVerifier, userRepo repositories.UserRepository) (models.Identity, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.Identity{}, false
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	userID, err := verifier.VerifyToken(tokenString)
	if err != nil {
		return models.Identity{}, false
	}

	user, err := userRepo.GetByID(r.Context(), userID)
	if err != nil {
		// A valid token for a deleted user is just unauthenticated
		if errors.Is(err, domain.ErrNotFound) {
			return models.Identity{}, false
		}
		return models.Identity{}, false
	}

	return models.Identity{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, true
}
