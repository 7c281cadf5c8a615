package handler

import (
	"log/slog"
	"net/http"

	"promptvault/internal/domain/services"
	"promptvault/internal/httputil"
)

// ResponseHandler handles conversation HTTP requests
type ResponseHandler struct {
	responseService services.ResponseService
	logger          *slog.Logger
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseService services.ResponseService, logger *slog.Logger) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		logger:          logger,
	}
}

// ListResponses retrieves a prompt's conversation in order
// GET /api/projects/{projectID}/prompts/{promptID}/responses
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	responses, err := h.responseService.ListResponses(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, responses)
}

// AddResponse appends an entry to a prompt's conversation
// POST /api/projects/{projectID}/prompts/{promptID}/responses
func (h *ResponseHandler) AddResponse(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req services.AddResponseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.responseService.AddResponse(r.Context(), identity, r.PathValue("projectID"), r.PathValue("promptID"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, response)
}
