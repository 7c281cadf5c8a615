package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptvault/internal/config"
	"promptvault/internal/domain"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/repositories"
	"promptvault/internal/domain/services"
)

// attachmentService implements the AttachmentService interface
type attachmentService struct {
	attachmentRepo repositories.AttachmentRepository
	promptRepo     repositories.PromptRepository
	maxSize        int
	maxPerPrompt   int
	logger         *slog.Logger
}

// NewAttachmentService creates a new attachment service. The size and count
// caps come from configuration (defaults 512 KiB and 20).
func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepository,
	promptRepo repositories.PromptRepository,
	cfg *config.Config,
	logger *slog.Logger,
) services.AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		promptRepo:     promptRepo,
		maxSize:        cfg.MaxAttachmentSize,
		maxPerPrompt:   cfg.MaxAttachmentsPerPrompt,
		logger:         logger,
	}
}

// CreateAttachment validates and attaches a text file to a prompt
func (s *attachmentService) CreateAttachment(ctx context.Context, who models.Identity, projectID, promptID string, req *services.CreateAttachmentRequest) (*models.Attachment, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	filename, mime, err := s.validateAttachment(req.Filename, req.MimeType, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Count cap applies on create only, never on update
	count, err := s.attachmentRepo.CountByPrompt(ctx, prompt.ID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxPerPrompt {
		return nil, fmt.Errorf("%w: attachment limit reached for this prompt", domain.ErrValidation)
	}

	attachment := &models.Attachment{
		PromptID:  prompt.ID,
		Filename:  filename,
		MimeType:  mime,
		Content:   req.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}

	s.logger.Info("attachment created",
		"id", attachment.ID,
		"filename", attachment.Filename,
		"prompt_id", prompt.ID,
		"user_id", who.UserID,
	)

	return attachment, nil
}

// GetAttachment retrieves an attachment through the ownership chain
func (s *attachmentService) GetAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string) (*models.Attachment, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	return s.attachmentRepo.GetByID(ctx, attachmentID, prompt.ID)
}

// ListAttachments retrieves a prompt's attachments in creation order
func (s *attachmentService) ListAttachments(ctx context.Context, who models.Identity, projectID, promptID string) ([]models.Attachment, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	return s.attachmentRepo.ListByPrompt(ctx, prompt.ID)
}

// UpdateAttachment replaces an attachment's fields, re-running every
// creation check except the per-prompt count cap
func (s *attachmentService) UpdateAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string, req *services.UpdateAttachmentRequest) (*models.Attachment, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return nil, err
	}

	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID, prompt.ID)
	if err != nil {
		return nil, err
	}

	filename, mime, err := s.validateAttachment(req.Filename, req.MimeType, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	attachment.Filename = filename
	attachment.MimeType = mime
	attachment.Content = req.Content
	attachment.UpdatedAt = time.Now()

	if err := s.attachmentRepo.Update(ctx, attachment); err != nil {
		return nil, err
	}

	s.logger.Info("attachment updated",
		"id", attachment.ID,
		"filename", attachment.Filename,
		"user_id", who.UserID,
	)

	return attachment, nil
}

// DeleteAttachment removes an attachment. The repository scopes the delete
// by the chain-resolved prompt, so an attachment ID belonging to someone
// else's prompt reads as not found.
func (s *attachmentService) DeleteAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string) error {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, projectID, who.UserID)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID, prompt.ID); err != nil {
		return err
	}

	s.logger.Info("attachment deleted",
		"id", attachmentID,
		"prompt_id", prompt.ID,
		"user_id", who.UserID,
	)

	return nil
}

// validateAttachment runs the ordered attachment checks (first failure
// wins) and returns the normalized filename and MIME type.
func (s *attachmentService) validateAttachment(filename, mimeType, content string) (string, string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", "", fmt.Errorf("filename is required")
	}
	// Over-long filenames are truncated, not rejected
	if runes := []rune(filename); len(runes) > config.MaxFilenameLength {
		filename = string(runes[:config.MaxFilenameLength])
	}

	mime := strings.TrimSpace(mimeType)
	if mime == "" {
		mime = "text/plain"
	}
	if !strings.HasPrefix(mime, "text/") && mime != "application/json" {
		return "", "", fmt.Errorf("only text attachments are allowed")
	}

	if content == "" {
		return "", "", fmt.Errorf("attachment content is required")
	}

	if len(content) > s.maxSize {
		return "", "", fmt.Errorf("attachment too large")
	}

	return filename, mime, nil
}
