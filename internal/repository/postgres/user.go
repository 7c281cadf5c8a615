package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflictError(err)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	return r.scanOne(ctx, query, id)
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM %s
		WHERE username = $1
	`, r.tables.Users)

	return r.scanOne(ctx, query, username)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	return r.scanOne(ctx, query, email)
}

// List retrieves all users, ordered by created_at ASC
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, is_admin, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

// Update updates username, email, is_admin and updated_at
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET username = $1, email = $2, is_admin = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		user.Username,
		user.Email,
		user.IsAdmin,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflictError(err)
		}
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a user; owned projects cascade via foreign keys
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresUserRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// conflictError maps a unique violation to a field-specific ConflictError
// so callers can tell the user which field is taken.
func (r *PostgresUserRepository) conflictError(err error) error {
	constraint := DuplicateConstraint(err)
	if strings.Contains(constraint, "email") {
		return &domain.ConflictError{
			Message:      "email already registered",
			ResourceType: "user",
			Field:        "email",
		}
	}
	return &domain.ConflictError{
		Message:      "username already exists",
		ResourceType: "user",
		Field:        "username",
	}
}
