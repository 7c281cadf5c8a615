package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func withBodyLimit(t *testing.T, maxPayload int64) {
	t.Helper()
	prev := bodyLimit
	SetBodyLimit(maxPayload)
	t.Cleanup(func() { bodyLimit = prev })
}

func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"hello"}`))
		w := httptest.NewRecorder()

		var dest struct {
			Name string `json:"name"`
		}
		if err := ParseJSON(w, r, &dest); err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if dest.Name != "hello" {
			t.Errorf("dest.Name = %q, want %q", dest.Name, "hello")
		}
	})

	t.Run("rejects a body above the limit", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{"content": strings.Repeat("a", 3<<20)})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		r := httptest.NewRequest("POST", "/", strings.NewReader(string(body)))
		w := httptest.NewRecorder()

		var dest map[string]string
		if err := ParseJSON(w, r, &dest); err == nil {
			t.Error("ParseJSON() error = nil, want an error")
		}
	})
}

func TestSetBodyLimitTracksAttachmentCap(t *testing.T) {
	// An attachment at a 4 MiB cap would not fit the default limit.
	withBodyLimit(t, 4<<20)

	body, err := json.Marshal(map[string]string{
		"filename": "big.txt",
		"content":  strings.Repeat("a", 4<<20),
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(string(body)))
	w := httptest.NewRecorder()

	var dest map[string]string
	if err := ParseJSON(w, r, &dest); err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(dest["content"]) != 4<<20 {
		t.Errorf("content length = %d, want %d", len(dest["content"]), 4<<20)
	}
}

func TestSetBodyLimitKeepsFloor(t *testing.T) {
	// A tiny configured cap must not shrink the limit below the default;
	// non-attachment payloads still need headroom.
	withBodyLimit(t, 1024)

	body := `{"content":"` + strings.Repeat("a", 64<<10) + `"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var dest map[string]string
	if err := ParseJSON(w, r, &dest); err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
}
