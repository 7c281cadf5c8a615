package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// AddResponseRequest represents a request to append a conversation entry
type AddResponseRequest struct {
	Role     models.Role            `json:"role"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ResponseService defines business logic operations for prompt responses.
// Responses are immutable: there is no update or single-delete operation.
type ResponseService interface {
	// AddResponse appends an entry to a prompt's conversation
	AddResponse(ctx context.Context, who models.Identity, projectID, promptID string, req *AddResponseRequest) (*models.PromptResponse, error)

	// ListResponses retrieves a prompt's conversation in creation order
	ListResponses(ctx context.Context, who models.Identity, projectID, promptID string) ([]models.PromptResponse, error)
}
