package repositories

import (
	"context"

	"promptvault/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
// Every query is scoped by the owning user: a project ID that exists but
// belongs to someone else behaves exactly like a missing one.
type ProjectRepository interface {
	// Create creates a new project and fills in its generated ID
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project owned by userID
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// List retrieves all projects for a user, ordered by created_at DESC
	List(ctx context.Context, userID string) ([]models.Project, error)

	// Update updates a project's name, description and updated_at
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project; prompts, responses and attachments cascade
	Delete(ctx context.Context, id, userID string) error

	// CountPrompts returns the total number of prompts across all projects
	// owned by userID
	CountPrompts(ctx context.Context, userID string) (int, error)
}
