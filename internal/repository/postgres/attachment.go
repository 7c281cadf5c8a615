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

// PostgresAttachmentRepository implements the AttachmentRepository interface
type PostgresAttachmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(config *RepositoryConfig) repositories.AttachmentRepository {
	return &PostgresAttachmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new attachment
func (r *PostgresAttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, prompt_id, filename, mime_type, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Attachments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		attachment.ID,
		attachment.PromptID,
		attachment.Filename,
		attachment.MimeType,
		attachment.Content,
		attachment.CreatedAt,
		attachment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}

	return nil
}

// GetByID retrieves an attachment belonging to promptID. Requiring the
// prompt ID here prevents reaching an attachment by guessing its ID alone.
func (r *PostgresAttachmentRepository) GetByID(ctx context.Context, id, promptID string) (*models.Attachment, error) {
	query := fmt.Sprintf(`
		SELECT id, prompt_id, filename, mime_type, content, created_at, updated_at
		FROM %s
		WHERE id = $1 AND prompt_id = $2
	`, r.tables.Attachments)

	var attachment models.Attachment
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, promptID).Scan(
		&attachment.ID,
		&attachment.PromptID,
		&attachment.Filename,
		&attachment.MimeType,
		&attachment.Content,
		&attachment.CreatedAt,
		&attachment.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}

	return &attachment, nil
}

// ListByPrompt retrieves a prompt's attachments, ordered by created_at ASC
func (r *PostgresAttachmentRepository) ListByPrompt(ctx context.Context, promptID string) ([]models.Attachment, error) {
	query := fmt.Sprintf(`
		SELECT id, prompt_id, filename, mime_type, content, created_at, updated_at
		FROM %s
		WHERE prompt_id = $1
		ORDER BY created_at ASC
	`, r.tables.Attachments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, promptID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var attachment models.Attachment
		err := rows.Scan(
			&attachment.ID,
			&attachment.PromptID,
			&attachment.Filename,
			&attachment.MimeType,
			&attachment.Content,
			&attachment.CreatedAt,
			&attachment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}

	if attachments == nil {
		attachments = []models.Attachment{}
	}

	return attachments, nil
}

// CountByPrompt returns the number of attachments on a prompt
func (r *PostgresAttachmentRepository) CountByPrompt(ctx context.Context, promptID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE prompt_id = $1
	`, r.tables.Attachments)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, promptID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attachments: %w", err)
	}

	return count, nil
}

// Update updates filename, mime_type, content and updated_at
func (r *PostgresAttachmentRepository) Update(ctx context.Context, attachment *models.Attachment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET filename = $1, mime_type = $2, content = $3, updated_at = $4
		WHERE id = $5 AND prompt_id = $6
	`, r.tables.Attachments)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		attachment.Filename,
		attachment.MimeType,
		attachment.Content,
		attachment.UpdatedAt,
		attachment.ID,
		attachment.PromptID,
	)

	if err != nil {
		return fmt.Errorf("update attachment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s: %w", attachment.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an attachment belonging to promptID
func (r *PostgresAttachmentRepository) Delete(ctx context.Context, id, promptID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND prompt_id = $2
	`, r.tables.Attachments)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, promptID)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
