package auth

// TokenVerifier validates a bearer token and returns the subject user ID.
// This abstraction keeps the middleware agnostic to whether tokens were
// issued locally or by an external identity provider.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the user ID it was
	// issued for. Returns an error if the token is invalid or expired.
	VerifyToken(tokenString string) (string, error)

	// Close releases any resources held by the verifier.
	Close() error
}
