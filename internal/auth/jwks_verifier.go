package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"promptvault/internal/domain"
)

// JWKSVerifier validates RS256/ES256 tokens issued by an external identity
// provider, fetching public keys from its JWKS endpoint. The keys are cached
// and refreshed automatically based on HTTP cache headers.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier backed by the given JWKS URL
func NewJWKSVerifier(jwksURL string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("JWKS verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates an externally issued token and returns its subject
func (v *JWKSVerifier) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
		// allowed
	default:
		v.logger.Warn("token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}

	return claims.Subject, nil
}

// Close releases resources held by the verifier. keyfunc manages its own
// refresh lifecycle, so this is a no-op kept for interface compatibility.
func (v *JWKSVerifier) Close() error {
	return nil
}

// ChainVerifier tries each verifier in order and accepts the first success.
// Used to accept both locally issued and externally issued tokens.
type ChainVerifier struct {
	verifiers []TokenVerifier
}

// NewChainVerifier creates a verifier chain
func NewChainVerifier(verifiers ...TokenVerifier) *ChainVerifier {
	return &ChainVerifier{verifiers: verifiers}
}

// VerifyToken tries each verifier in order
func (c *ChainVerifier) VerifyToken(tokenString string) (string, error) {
	for _, v := range c.verifiers {
		if userID, err := v.VerifyToken(tokenString); err == nil {
			return userID, nil
		}
	}
	return "", domain.ErrUnauthorized
}

// Close closes all verifiers in the chain
func (c *ChainVerifier) Close() error {
	var firstErr error
	for _, v := range c.verifiers {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
