package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// PostgresPromptRepository implements the PromptRepository interface
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(config *RepositoryConfig) repositories.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new prompt
func (r *PostgresPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		prompt.ID,
		prompt.ProjectID,
		prompt.Title,
		prompt.Content,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create prompt: %w", err)
	}

	return nil
}

// GetByID retrieves a prompt, validating the full ownership chain
// (prompt -> project -> user) in one joined query
func (r *PostgresPromptRepository) GetByID(ctx context.Context, id, projectID, userID string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.project_id, p.title, p.content, p.created_at, p.updated_at
		FROM %s p
		JOIN %s pr ON p.project_id = pr.id
		WHERE p.id = $1 AND p.project_id = $2 AND pr.user_id = $3
	`, r.tables.Prompts, r.tables.Projects)

	var prompt models.Prompt
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID, userID).Scan(
		&prompt.ID,
		&prompt.ProjectID,
		&prompt.Title,
		&prompt.Content,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get prompt: %w", err)
	}

	return &prompt, nil
}

// ListByProject retrieves all prompts in a project owned by userID,
// ordered by created_at DESC
func (r *PostgresPromptRepository) ListByProject(ctx context.Context, projectID, userID string) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.project_id, p.title, p.content, p.created_at, p.updated_at
		FROM %s p
		JOIN %s pr ON p.project_id = pr.id
		WHERE p.project_id = $1 AND pr.user_id = $2
		ORDER BY p.created_at DESC
	`, r.tables.Prompts, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	return scanPrompts(rows)
}

// Update updates a prompt's title, content and updated_at
func (r *PostgresPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND project_id = $5
	`, r.tables.Prompts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		prompt.Title,
		prompt.Content,
		prompt.UpdatedAt,
		prompt.ID,
		prompt.ProjectID,
	)

	if err != nil {
		return fmt.Errorf("update prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", prompt.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a prompt; responses and attachments cascade
func (r *PostgresPromptRepository) Delete(ctx context.Context, id, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s p
		USING %s pr
		WHERE p.id = $1 AND p.project_id = $2
		  AND p.project_id = pr.id AND pr.user_id = $3
	`, r.tables.Prompts, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID, userID)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Search finds prompts across all of a user's projects whose title or
// content contains term, case-insensitively, ordered by created_at DESC
func (r *PostgresPromptRepository) Search(ctx context.Context, userID, term string) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.project_id, p.title, p.content, p.created_at, p.updated_at
		FROM %s p
		JOIN %s pr ON p.project_id = pr.id
		WHERE pr.user_id = $1
		  AND (p.title ILIKE '%%' || $2 || '%%' OR p.content ILIKE '%%' || $2 || '%%')
		ORDER BY p.created_at DESC
	`, r.tables.Prompts, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, term)
	if err != nil {
		return nil, fmt.Errorf("search prompts: %w", err)
	}
	defer rows.Close()

	return scanPrompts(rows)
}

func scanPrompts(rows pgx.Rows) ([]models.Prompt, error) {
	var prompts []models.Prompt
	for rows.Next() {
		var prompt models.Prompt
		err := rows.Scan(
			&prompt.ID,
			&prompt.ProjectID,
			&prompt.Title,
			&prompt.Content,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}

	if prompts == nil {
		prompts = []models.Prompt{}
	}

	return prompts, nil
}
