package repositories

import (
	"context"

	"promptvault/internal/domain/models"
)

// PromptRepository defines data access operations for prompts.
// Reads join through projects so the full ownership chain
// (user -> project -> prompt) is validated in a single query.
type PromptRepository interface {
	// Create creates a new prompt and fills in its generated ID
	Create(ctx context.Context, prompt *models.Prompt) error

	// GetByID retrieves a prompt in projectID whose project is owned by userID
	GetByID(ctx context.Context, id, projectID, userID string) (*models.Prompt, error)

	// ListByProject retrieves all prompts in a project owned by userID,
	// ordered by created_at DESC
	ListByProject(ctx context.Context, projectID, userID string) ([]models.Prompt, error)

	// Update updates a prompt's title, content and updated_at
	Update(ctx context.Context, prompt *models.Prompt) error

	// Delete removes a prompt; responses and attachments cascade
	Delete(ctx context.Context, id, projectID, userID string) error

	// Search finds prompts across all of userID's projects whose title or
	// content contains term (case-insensitive), ordered by created_at DESC
	Search(ctx context.Context, userID, term string) ([]models.Prompt, error)
}
