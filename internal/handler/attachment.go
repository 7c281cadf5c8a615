package handler

import (
	"log/slog"
	"net/http"

	"promptvault/internal/domain/services"
	"promptvault/internal/httputil"
)

// AttachmentHandler handles attachment HTTP requests
type AttachmentHandler struct {
	attachmentService services.AttachmentService
	logger            *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService services.AttachmentService, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// ListAttachments retrieves a prompt's attachments
// GET /api/projects/{projectID}/prompts/{promptID}/attachments
func (h *AttachmentHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, attachments)
}

// CreateAttachment attaches a text file to a prompt
// POST /api/projects/{projectID}/prompts/{promptID}/attachments
func (h *AttachmentHandler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.CreateAttachmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attachment, err := h.attachmentService.CreateAttachment(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, attachment)
}

// GetAttachment retrieves a single attachment
// GET /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}
func (h *AttachmentHandler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.GetAttachment(r.Context(), identity,
		r.PathValue("projectID"), r.PathValue("promptID"), r.PathValue("attachmentID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, attachment)
}

// UpdateAttachment replaces an attachment's filename, MIME type and content
// PATCH /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}
func (h *AttachmentHandler) UpdateAttachment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.UpdateAttachmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attachment, err := h.attachmentService.UpdateAttachment(r.Context(), identity,
		r.PathValue("projectID"), r.PathValue("promptID"), r.PathValue("attachmentID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, attachment)
}

// DeleteAttachment removes an attachment
// DELETE /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}
func (h *AttachmentHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	err := h.attachmentService.DeleteAttachment(r.Context(), identity,
		r.PathValue("projectID"), r.PathValue("promptID"), r.PathValue("attachmentID"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
