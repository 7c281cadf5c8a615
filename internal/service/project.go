package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptvault/internal/config"
	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
	"promptvault/internal/domain/services"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project owned by the caller
func (s *projectService) CreateProject(ctx context.Context, who models.Identity, req *services.CreateProjectRequest) (*models.Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if err := s.validateProjectRequest(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project := &models.Project{
		UserID:      who.UserID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"user_id", who.UserID,
	)

	return project, nil
}

// GetProject retrieves one of the caller's projects by ID
func (s *projectService) GetProject(ctx context.Context, who models.Identity, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, who.UserID)
}

// ListProjects retrieves all of the caller's projects, newest first
func (s *projectService) ListProjects(ctx context.Context, who models.Identity) ([]models.Project, error) {
	return s.projectRepo.List(ctx, who.UserID)
}

// UpdateProject updates a project's name and description
func (s *projectService) UpdateProject(ctx context.Context, who models.Identity, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if err := s.validateProjectRequest(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id, who.UserID)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Description = req.Description
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
		"user_id", who.UserID,
	)

	return project, nil
}

// DeleteProject deletes a project; child prompts, responses and attachments
// go with it via cascade
func (s *projectService) DeleteProject(ctx context.Context, who models.Identity, id string) error {
	if err := s.projectRepo.Delete(ctx, id, who.UserID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", who.UserID,
	)

	return nil
}

// Dashboard aggregates project and prompt counts plus the most recently
// created projects
func (s *projectService) Dashboard(ctx context.Context, who models.Identity) (*models.DashboardStats, error) {
	projects, err := s.projectRepo.List(ctx, who.UserID)
	if err != nil {
		return nil, err
	}

	totalPrompts, err := s.projectRepo.CountPrompts(ctx, who.UserID)
	if err != nil {
		return nil, err
	}

	// List is already newest-first
	recent := projects
	if len(recent) > config.DashboardRecentProjects {
		recent = recent[:config.DashboardRecentProjects]
	}

	return &models.DashboardStats{
		TotalProjects:  len(projects),
		TotalPrompts:   totalPrompts,
		RecentProjects: recent,
	}, nil
}

// validateProjectRequest validates a trimmed project name
func (s *projectService) validateProjectRequest(name string) error {
	return validation.Validate(name,
		validation.Required.Error("project name is required"),
		validation.Length(1, config.MaxProjectNameLength).
			Error(fmt.Sprintf("project name must be less than %d characters", config.MaxProjectNameLength+1)),
	)
}
