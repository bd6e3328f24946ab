package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
)

func TestExtractText(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"summary\":\"ok\"}"}}]
		}`))
	}))
	defer server.Close()

	p := New("test-key", server.URL+"/")
	out, err := p.ExtractText(context.Background(), providers.Config{
		Model:       "gpt-4o",
		Temperature: 0.2,
		Prompt:      "summarize",
		JSON:        true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `{"summary":"ok"}` {
		t.Errorf("Unexpected content: %s", out)
	}
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %v", gotBody["model"])
	}
	if _, ok := gotBody["response_format"]; !ok {
		t.Error("Expected response_format in JSON mode")
	}
}

func TestExtractTextServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	p := New("test-key", server.URL+"/")
	if _, err := p.ExtractText(context.Background(), providers.Config{Model: "gpt-4o", Prompt: "x"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("Expected exactly one request, got %d", calls)
	}
}
