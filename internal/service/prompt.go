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

const copySuffix = " (Copy)"

// promptService implements the PromptService interface
type promptService struct {
	promptRepo   repositories.PromptRepository
	projectRepo  repositories.ProjectRepository
	responseRepo repositories.ResponseRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(
	promptRepo repositories.PromptRepository,
	projectRepo repositories.ProjectRepository,
	responseRepo repositories.ResponseRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.PromptService {
	return &promptService{
		promptRepo:   promptRepo,
		projectRepo:  projectRepo,
		responseRepo: responseRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreatePrompt creates a new prompt in one of the caller's projects
func (s *promptService) CreatePrompt(ctx context.Context, who models.Identity, projectID string, req *services.CreatePromptRequest) (*models.Prompt, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if err := s.validatePromptRequest(req.Title, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Ownership check: the project must belong to the caller
	if _, err := s.projectRepo.GetByID(ctx, projectID, who.UserID); err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		ProjectID: projectID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created",
		"id", prompt.ID,
		"title", prompt.Title,
		"project_id", projectID,
		"user_id", who.UserID,
	)

	return prompt, nil
}

// GetPrompt retrieves a prompt through the ownership chain
func (s *promptService) GetPrompt(ctx context.Context, who models.Identity, projectID, promptID string) (*models.Prompt, error) {
	return s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
}

// ListPrompts retrieves all prompts in a project, newest first
func (s *promptService) ListPrompts(ctx context.Context, who models.Identity, projectID string) ([]models.Prompt, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, who.UserID); err != nil {
		return nil, err
	}

	return s.promptRepo.ListByProject(ctx, projectID, who.UserID)
}

// UpdatePrompt updates a prompt's title and content
func (s *promptService) UpdatePrompt(ctx context.Context, who models.Identity, projectID, promptID string, req *services.UpdatePromptRequest) (*models.Prompt, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if err := s.validatePromptRequest(req.Title, req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	prompt.Title = req.Title
	prompt.Content = req.Content
	prompt.UpdatedAt = time.Now()

	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated",
		"id", prompt.ID,
		"title", prompt.Title,
		"user_id", who.UserID,
	)

	return prompt, nil
}

// DeletePrompt deletes a prompt and its responses and attachments
func (s *promptService) DeletePrompt(ctx context.Context, who models.Identity, projectID, promptID string) error {
	if err := s.promptRepo.Delete(ctx, promptID, projectID, who.UserID); err != nil {
		return err
	}

	s.logger.Info("prompt deleted",
		"id", promptID,
		"project_id", projectID,
		"user_id", who.UserID,
	)

	return nil
}

// SearchPrompts finds the caller's prompts matching term in title or content
func (s *promptService) SearchPrompts(ctx context.Context, who models.Identity, term string) ([]models.Prompt, error) {
	term = strings.TrimSpace(term)

	if err := validation.Validate(term,
		validation.Required.Error("search term is required"),
		validation.Length(config.MinSearchTermLength, 0).
			Error(fmt.Sprintf("search term must be at least %d characters", config.MinSearchTermLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return s.promptRepo.Search(ctx, who.UserID, term)
}

// DuplicatePrompt clones a prompt into the same project, optionally cloning
// its conversation. The clone runs in one transaction so a failed response
// copy never leaves a half-duplicated prompt behind.
func (s *promptService) DuplicatePrompt(ctx context.Context, who models.Identity, projectID, promptID string, req *services.DuplicatePromptRequest) (*models.Prompt, error) {
	original, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	duplicate := &models.Prompt{
		ProjectID: projectID,
		Title:     copyTitle(original.Title),
		Content:   original.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.promptRepo.Create(txCtx, duplicate); err != nil {
			return err
		}

		if !req.CopyResponses {
			return nil
		}

		responses, err := s.responseRepo.ListByPrompt(txCtx, original.ID)
		if err != nil {
			return err
		}

		base := time.Now()
		for i, response := range responses {
			clone := &models.PromptResponse{
				PromptID: duplicate.ID,
				Role:     response.Role,
				Content:  response.Content,
				Metadata: response.Metadata,
				// Staggered timestamps keep the clone's conversation in
				// the source order under created_at ASC.
				CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
			}
			if err := s.responseRepo.Create(txCtx, clone); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("prompt duplicated",
		"source_id", original.ID,
		"duplicate_id", duplicate.ID,
		"copy_responses", req.CopyResponses,
		"user_id", who.UserID,
	)

	return duplicate, nil
}

// copyTitle appends the duplicate suffix, truncating the source title so the
// result still fits the title length bound.
func copyTitle(title string) string {
	max := config.MaxPromptTitleLength - len(copySuffix)
	runes := []rune(title)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes) + copySuffix
}

// validatePromptRequest validates trimmed title and content
func (s *promptService) validatePromptRequest(title, content string) error {
	if err := validation.Validate(title,
		validation.Required.Error("prompt title is required"),
		validation.Length(1, config.MaxPromptTitleLength).
			Error(fmt.Sprintf("prompt title must be less than %d characters", config.MaxPromptTitleLength+1)),
	); err != nil {
		return err
	}

	return validation.Validate(content,
		validation.Required.Error("prompt content is required"),
		validation.Length(1, config.MaxPromptContentLength).
			Error(fmt.Sprintf("prompt content must be less than %d characters", config.MaxPromptContentLength+1)),
	)
}
