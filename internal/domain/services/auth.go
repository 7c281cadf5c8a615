package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Session is an established authenticated session: the user plus a signed
// bearer token the client presents on subsequent requests.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService defines authentication operations
type AuthService interface {
	// Register validates and creates a new account, then immediately
	// establishes an authenticated session for it
	Register(ctx context.Context, req *RegisterRequest) (*Session, error)

	// Login verifies credentials and establishes a session. Unknown
	// username and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, req *LoginRequest) (*Session, error)
}
