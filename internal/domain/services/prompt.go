package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// CreatePromptRequest represents a request to create a prompt
type CreatePromptRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePromptRequest represents a request to update a prompt
type UpdatePromptRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DuplicatePromptRequest controls prompt duplication
type DuplicatePromptRequest struct {
	// CopyResponses also clones the source prompt's conversation,
	// preserving role, content, metadata and relative order
	CopyResponses bool `json:"copy_responses"`
}

// PromptService defines business logic operations for prompts
type PromptService interface {
	// CreatePrompt creates a new prompt in one of the caller's projects
	CreatePrompt(ctx context.Context, who models.Identity, projectID string, req *CreatePromptRequest) (*models.Prompt, error)

	// GetPrompt retrieves a prompt through the ownership chain
	GetPrompt(ctx context.Context, who models.Identity, projectID, promptID string) (*models.Prompt, error)

	// ListPrompts retrieves all prompts in a project, newest first
	ListPrompts(ctx context.Context, who models.Identity, projectID string) ([]models.Prompt, error)

	// UpdatePrompt updates a prompt's title and content
	UpdatePrompt(ctx context.Context, who models.Identity, projectID, promptID string, req *UpdatePromptRequest) (*models.Prompt, error)

	// DeletePrompt deletes a prompt and its responses and attachments
	DeletePrompt(ctx context.Context, who models.Identity, projectID, promptID string) error

	// SearchPrompts finds the caller's prompts matching term in title or
	// content, case-insensitively, newest first. Term must be at least
	// two characters after trimming.
	SearchPrompts(ctx context.Context, who models.Identity, term string) ([]models.Prompt, error)

	// DuplicatePrompt clones a prompt into the same project under
	// "<title> (Copy)", optionally cloning its conversation
	DuplicatePrompt(ctx context.Context, who models.Identity, projectID, promptID string, req *DuplicatePromptRequest) (*models.Prompt, error)
}
