package repositories

import (
	"context"

	"promptvault/internal/domain/models"
)

// AttachmentRepository defines data access operations for attachments.
// Callers must have resolved the owning prompt through the ownership chain
// before any of these operations.
type AttachmentRepository interface {
	// Create creates a new attachment and fills in its generated ID
	Create(ctx context.Context, attachment *models.Attachment) error

	// GetByID retrieves an attachment belonging to promptID
	GetByID(ctx context.Context, id, promptID string) (*models.Attachment, error)

	// ListByPrompt retrieves a prompt's attachments, ordered by created_at ASC
	ListByPrompt(ctx context.Context, promptID string) ([]models.Attachment, error)

	// CountByPrompt returns the number of attachments on a prompt
	CountByPrompt(ctx context.Context, promptID string) (int, error)

	// Update updates filename, mime_type, content and updated_at
	Update(ctx context.Context, attachment *models.Attachment) error

	// Delete removes an attachment belonging to promptID
	Delete(ctx context.Context, id, promptID string) error
}
