package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseJSON_Errors(t *testing.T) {
	oversize := `{"content":"` + strings.Repeat("a", maxJSONBody) + `"}`

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty", "", http.StatusBadRequest},
		{"malformed", "{", http.StatusBadRequest},
		{"unknown field", `{"content":"x","extra":1}`, http.StatusBadRequest},
		{"oversize", oversize, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/files", bytes.NewBufferString(tt.body))

			var dest struct {
				Content string `json:"content"`
			}
			err := ParseJSON(rec, req, &dest)
			if err == nil {
				t.Fatal("ParseJSON succeeded, want error")
			}
			RespondBodyError(rec, err)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestParseJSON_Valid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/files", strings.NewReader(`{"content":"hello"}`))

	var dest struct {
		Content string `json:"content"`
	}
	if err := ParseJSON(rec, req, &dest); err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if dest.Content != "hello" {
		t.Errorf("content = %q", dest.Content)
	}
}
