package services

import (
	"context"

	"promptvault/internal/domain/models"
)

// CreateAttachmentRequest represents a request to attach a file to a prompt
type CreateAttachmentRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}

// UpdateAttachmentRequest represents a request to replace an attachment's
// filename, MIME type and content
type UpdateAttachmentRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}

// AttachmentService defines business logic operations for attachments
type AttachmentService interface {
	// CreateAttachment validates and attaches a text file to a prompt.
	// Enforces, in order: filename present, text-like MIME type, content
	// present, size cap, per-prompt count cap.
	CreateAttachment(ctx context.Context, who models.Identity, projectID, promptID string, req *CreateAttachmentRequest) (*models.Attachment, error)

	// GetAttachment retrieves an attachment through the ownership chain
	GetAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string) (*models.Attachment, error)

	// ListAttachments retrieves a prompt's attachments in creation order
	ListAttachments(ctx context.Context, who models.Identity, projectID, promptID string) ([]models.Attachment, error)

	// UpdateAttachment replaces an attachment's fields. Re-runs every
	// creation check except the per-prompt count cap.
	UpdateAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string, req *UpdateAttachmentRequest) (*models.Attachment, error)

	// DeleteAttachment removes an attachment. The attachment must belong
	// to the chain-resolved prompt, not merely exist.
	DeleteAttachment(ctx context.Context, who models.Identity, projectID, promptID, attachmentID string) error
}
