package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
	"promptvault/internal/domain/services"
)

// responseService implements the ResponseService interface
type responseService struct {
	responseRepo repositories.ResponseRepository
	promptRepo   repositories.PromptRepository
	logger       *slog.Logger
}

// NewResponseService creates a new response service
func NewResponseService(
	responseRepo repositories.ResponseRepository,
	promptRepo repositories.PromptRepository,
	logger *slog.Logger,
) services.ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		promptRepo:   promptRepo,
		logger:       logger,
	}
}

// AddResponse appends an entry to a prompt's conversation
func (s *responseService) AddResponse(ctx context.Context, who models.Identity, projectID, promptID string, req *services.AddResponseRequest) (*models.PromptResponse, error) {
	req.Content = strings.TrimSpace(req.Content)

	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be system, user or assistant", domain.ErrValidation)
	}
	if req.Content == "" {
		return nil, fmt.Errorf("%w: response content is required", domain.ErrValidation)
	}

	// Ownership check: the prompt must resolve through the caller's chain
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	response := &models.PromptResponse{
		PromptID:  prompt.ID,
		Role:      req.Role,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, err
	}

	s.logger.Info("response added",
		"id", response.ID,
		"prompt_id", prompt.ID,
		"role", response.Role,
		"user_id", who.UserID,
	)

	return response, nil
}

// ListResponses retrieves a prompt's conversation in creation order
func (s *responseService) ListResponses(ctx context.Context, who models.Identity, projectID, promptID string) ([]models.PromptResponse, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	return s.responseRepo.ListByPrompt(ctx, prompt.ID)
}
