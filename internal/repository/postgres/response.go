package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
)

// PostgresResponseRepository implements the ResponseRepository interface
type PostgresResponseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(config *RepositoryConfig) repositories.ResponseRepository {
	return &PostgresResponseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends a response to a prompt's conversation
func (r *PostgresResponseRepository) Create(ctx context.Context, response *models.PromptResponse) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, prompt_id, role, content, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Responses)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		response.ID,
		response.PromptID,
		string(response.Role),
		response.Content,
		response.Metadata,
		response.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("create response: %w", err)
	}

	return nil
}

// ListByPrompt retrieves a prompt's conversation in creation order
func (r *PostgresResponseRepository) ListByPrompt(ctx context.Context, promptID string) ([]models.PromptResponse, error) {
	query := fmt.Sprintf(`
		SELECT id, prompt_id, role, content, metadata, created_at
		FROM %s
		WHERE prompt_id = $1
		ORDER BY created_at ASC
	`, r.tables.Responses)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, promptID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var responses []models.PromptResponse
	for rows.Next() {
		var response models.PromptResponse
		var role string
		err := rows.Scan(
			&response.ID,
			&response.PromptID,
			&role,
			&response.Content,
			&response.Metadata,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		response.Role = models.Role(role)
		responses = append(responses, response)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}

	if responses == nil {
		responses = []models.PromptResponse{}
	}

	return responses, nil
}
