package handler

import (
	"log/slog"
	"net/http"
	"time"

	"promptvault/internal/config"
	"promptvault/internal/domain/models"
	"promptvault/internal/domain/services"
	"promptvault/internal/httputil"
	"promptvault/internal/markdown"
)

// PromptHandler handles prompt HTTP requests
type PromptHandler struct {
	promptService services.PromptService
	logger        *slog.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(promptService services.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger,
	}
}

// promptSummary is the list-view shape: content is cut down to a preview so
// large prompts don't bloat listing payloads.
type promptSummary struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Title          string    `json:"title"`
	ContentPreview string    `json:"content_preview"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func summarizePrompts(prompts []models.Prompt) []promptSummary {
	summaries := make([]promptSummary, len(prompts))
	for i, p := range prompts {
		summaries[i] = promptSummary{
			ID:             p.ID,
			ProjectID:      p.ProjectID,
			Title:          p.Title,
			ContentPreview: p.ContentPreview(config.ContentPreviewLength),
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		}
	}
	return summaries
}

// ListPrompts retrieves all prompts in a project
// GET /api/projects/{projectID}/prompts
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	prompts, err := h.promptService.ListPrompts(r.Context(), identity, r.PathValue("projectID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summarizePrompts(prompts))
}

// CreatePrompt creates a new prompt in a project
// POST /api/projects/{projectID}/prompts
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.CreatePromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt, err := h.promptService.CreatePrompt(r.Context(), identity, r.PathValue("projectID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, prompt)
}

// GetPrompt retrieves a prompt
// GET /api/projects/{projectID}/prompts/{promptID}
func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPrompt(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// UpdatePrompt updates a prompt's title and content
// PATCH /api/projects/{projectID}/prompts/{promptID}
func (h *PromptHandler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.UpdatePromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt, err := h.promptService.UpdatePrompt(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prompt)
}

// DeletePrompt deletes a prompt
// DELETE /api/projects/{projectID}/prompts/{promptID}
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	err := h.promptService.DeletePrompt(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchPrompts finds the caller's prompts by title or content substring
// GET /api/prompts/search?q=term
func (h *PromptHandler) SearchPrompts(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	prompts, err := h.promptService.SearchPrompts(r.Context(), identity, r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summarizePrompts(prompts))
}

// DuplicatePrompt clones a prompt, optionally with its conversation
// POST /api/projects/{projectID}/prompts/{promptID}/duplicate
func (h *PromptHandler) DuplicatePrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.DuplicatePromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt, err := h.promptService.DuplicatePrompt(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, prompt)
}

// PreviewPrompt renders a prompt's content as sanitized HTML
// GET /api/projects/{projectID}/prompts/{promptID}/preview
func (h *PromptHandler) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	prompt, err := h.promptService.GetPrompt(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markdown.Render(prompt.Content)))
}
