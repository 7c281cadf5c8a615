package httputil

import (
	"context"
	"net/http"

	"promptvault/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity adds the resolved caller identity to the request context
func WithIdentity(r *http.Request, identity models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, identity)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the caller identity from context. The second return
// is false for unauthenticated requests.
func GetIdentity(r *http.Request) (models.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(models.Identity)
	return identity, ok
}
