package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"promptvault/internal/domain"
)

const tokenIssuer = "promptvault"

// TokenIssuer mints and verifies locally issued HS256 session tokens.
type TokenIssuer struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewTokenIssuer creates a token issuer. The remember TTL is used for
// "remember me" logins and is expected to be much longer than the default.
func NewTokenIssuer(secret string, ttl, rememberTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:      []byte(secret),
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Issue signs a session token for the given user ID
func (i *TokenIssuer) Issue(userID string, remember bool) (string, error) {
	ttl := i.ttl
	if remember {
		ttl = i.rememberTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a locally issued token and returns its subject
func (i *TokenIssuer) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - local tokens are HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}

	return claims.Subject, nil
}

// Close implements TokenVerifier; locally issued tokens hold no resources.
func (i *TokenIssuer) Close() error {
	return nil
}
