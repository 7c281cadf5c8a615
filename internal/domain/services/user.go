package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// CreateUserRequest represents an admin request to create a user
type CreateUserRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	IsAdmin         bool   `json:"is_admin"`
}

// UpdateUserRequest represents a request to update a user's profile.
// IsAdmin is a pointer so "not provided" and "set to false" are distinct;
// only admins may set it.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
}

// ChangePasswordRequest represents a password change. CurrentPassword is
// verified unless the actor is an admin changing someone else's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserService defines user administration and profile operations
type UserService interface {
	// ListUsers retrieves all users (admin only)
	ListUsers(ctx context.Context, who models.Identity) ([]models.User, error)

	// GetUser retrieves a user: admins may read anyone, others only themselves
	GetUser(ctx context.Context, who models.Identity, id string) (*models.User, error)

	// CreateUser creates a user with an explicit admin flag (admin only)
	CreateUser(ctx context.Context, who models.Identity, req *CreateUserRequest) (*models.User, error)

	// UpdateUser updates username/email (self or admin) and the admin
	// flag (admin only). Uniqueness excludes the record being updated.
	UpdateUser(ctx context.Context, who models.Identity, id string, req *UpdateUserRequest) (*models.User, error)

	// ChangePassword replaces a user's password
	ChangePassword(ctx context.Context, who models.Identity, id string, req *ChangePasswordRequest) error

	// DeleteUser deletes a user and cascades their projects (admin only).
	// Self-deletion is rejected.
	DeleteUser(ctx context.Context, who models.Identity, id string) error
}
