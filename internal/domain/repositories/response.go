package repositories

import (
	"context"

	"promptvault/internal/domain/models"
)

// ResponseRepository defines data access operations for prompt responses.
// Responses are append-only: there is no update and no single delete;
// they disappear only when their prompt does.
type ResponseRepository interface {
	// Create appends a response to a prompt's conversation
	Create(ctx context.Context, response *models.PromptResponse) error

	// ListByPrompt retrieves a prompt's conversation, ordered by
	// created_at ASC. Callers must have resolved the prompt through the
	// ownership chain first.
	ListByPrompt(ctx context.Context, promptID string) ([]models.PromptResponse, error)
}
