package repositories

import (
	"context"

	"promptvault/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user. Returns a ConflictError when the username
	// or email is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves all users, ordered by created_at ASC
	List(ctx context.Context) ([]models.User, error)

	// Update updates username, email, is_admin and updated_at.
	// Uniqueness conflicts exclude the record itself.
	Update(ctx context.Context, user *models.User) error

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Delete removes a user; owned projects cascade
	Delete(ctx context.Context, id string) error
}
