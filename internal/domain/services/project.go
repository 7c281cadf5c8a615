package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project owned by the caller
	CreateProject(ctx context.Context, who models.Identity, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves one of the caller's projects by ID
	GetProject(ctx context.Context, who models.Identity, id string) (*models.Project, error)

	// ListProjects retrieves all of the caller's projects, newest first
	ListProjects(ctx context.Context, who models.Identity) ([]models.Project, error)

	// UpdateProject updates a project's name and description
	UpdateProject(ctx context.Context, who models.Identity, id string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject deletes a project and, transitively, all of its
	// prompts, responses and attachments
	DeleteProject(ctx context.Context, who models.Identity, id string) error

	// Dashboard aggregates the caller's project and prompt counts plus the
	// five most recently created projects
	Dashboard(ctx context.Context, who models.Identity) (*models.DashboardStats, error)
}
