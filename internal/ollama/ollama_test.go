package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
)

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Format != "json" {
			t.Errorf("Expected json format, got %q", req.Format)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": `{"themes":"budget"}`})
	}))
	defer server.Close()

	out, err := New(server.URL).ExtractText(context.Background(), providers.Config{
		Model:  "mistral-small3.2:24b",
		Prompt: "themes",
		JSON:   true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `{"themes":"budget"}` {
		t.Errorf("Unexpected response: %s", out)
	}
}

func TestExtractTextNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := New(server.URL).ExtractText(context.Background(), providers.Config{Model: "x"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}
