package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"name": "test"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["name"] != "test" {
		t.Errorf("body = %v, want name=test", body)
	}
}

func TestRespondJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, make(chan int))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		status int
		title  string
	}{
		{http.StatusBadRequest, "Bad Request"},
		{http.StatusUnauthorized, "Unauthorized"},
		{http.StatusForbidden, "Forbidden"},
		{http.StatusNotFound, "Not Found"},
		{http.StatusConflict, "Conflict"},
		{http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.status, "something went wrong")

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var problem ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if problem.Status != tt.status {
				t.Errorf("problem.Status = %d, want %d", problem.Status, tt.status)
			}
			if problem.Title != tt.title {
				t.Errorf("problem.Title = %q, want %q", problem.Title, tt.title)
			}
			if problem.Detail != "something went wrong" {
				t.Errorf("problem.Detail = %q", problem.Detail)
			}
			if problem.Type == "" {
				t.Error("problem.Type is empty")
			}
		})
	}
}
