package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project owned by userID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all projects for a user, ordered by created_at DESC
func (r *PostgresProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, description, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	// Return empty slice instead of nil if no projects
	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// Update updates a project's name, description and updated_at
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Name,
		project.Description,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)

	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project; prompts, responses and attachments cascade
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountPrompts returns the total number of prompts across all of a user's
// projects (dashboard aggregate)
func (r *PostgresProjectRepository) CountPrompts(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s p
		JOIN %s pr ON p.project_id = pr.id
		WHERE pr.user_id = $1
	`, r.tables.Prompts, r.tables.Projects)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}

	return count, nil
}
