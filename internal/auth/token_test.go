package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"promptvault/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, 30*24*time.Hour)

	token, err := issuer.Issue("user-123", false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := issuer.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if subject != "user-123" {
		t.Errorf("subject = %q, want %q", subject, "user-123")
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, 30*24*time.Hour)

	t.Run("garbage", func(t *testing.T) {
		if _, err := issuer.VerifyToken("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", time.Hour, time.Hour)
		token, err := other.Issue("user-123", false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, err := issuer.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := issuer.Issue("user-123", false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		parts := strings.Split(token, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"
		if _, err := issuer.VerifyToken(strings.Join(parts, ".")); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		short := NewTokenIssuer("test-secret", -time.Minute, time.Hour)
		token, err := short.Issue("user-123", false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, err := issuer.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}
		if _, err := issuer.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		empty := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := empty.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}
		if _, err := issuer.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("VerifyToken() error = %v, want ErrUnauthorized", err)
		}
	})
}

func TestRememberExtendsExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, 30*24*time.Hour)

	expiry := func(tokenString string) time.Time {
		t.Helper()
		claims := &jwt.RegisteredClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		}); err != nil {
			t.Fatalf("ParseWithClaims() error = %v", err)
		}
		return claims.ExpiresAt.Time
	}

	plain, err := issuer.Issue("user-123", false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	remembered, err := issuer.Issue("user-123", true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if !expiry(remembered).After(expiry(plain).Add(24 * time.Hour)) {
		t.Errorf("remember expiry %v is not well past the default %v", expiry(remembered), expiry(plain))
	}
}
