package handler

import (
	"net/http"
	"time"

	"promptvault/internal/httputil"
)

// HealthCheck reports service liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
