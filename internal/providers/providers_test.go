package providers

import (
	"context"
	"testing"
)

type stubProvider struct{}

func (stubProvider) ExtractText(ctx context.Context, config Config) (string, error) {
	return config.Prompt, nil
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry("ollama")
	r.Register("ollama", stubProvider{}, "mistral-small3.2:24b")
	r.Register("openai", stubProvider{}, "gpt-4o")

	tests := []struct {
		name      string
		provider  string
		model     string
		wantModel string
		wantErr   bool
	}{
		{name: "falls back to default provider", wantModel: "mistral-small3.2:24b"},
		{name: "uses provider default model", provider: "openai", wantModel: "gpt-4o"},
		{name: "explicit model wins", provider: "openai", model: "gpt-4o-mini", wantModel: "gpt-4o-mini"},
		{name: "unknown provider", provider: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, model, err := r.Resolve(tt.provider, tt.model)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p == nil {
				t.Fatal("Expected provider, got nil")
			}
			if model != tt.wantModel {
				t.Errorf("Expected model %s, got %s", tt.wantModel, model)
			}
		})
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry("")
	r.Register("openai", stubProvider{}, "")
	r.Register("gemini", stubProvider{}, "")

	names := r.Names()
	if len(names) != 2 || names[0] != "gemini" || names[1] != "openai" {
		t.Errorf("Expected [gemini openai], got %v", names)
	}
}

func TestImageDataURI(t *testing.T) {
	img := &Image{MIMEType: "image/png", Data: []byte("abc")}
	if got := img.DataURI(); got != "data:image/png;base64,YWJj" {
		t.Errorf("Unexpected data URI: %s", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain object", raw: `{"summary":"ok"}`, want: "ok"},
		{name: "fenced object", raw: "```json\n{\"summary\":\"fenced\"}\n```", want: "fenced"},
		{name: "trailing comma repaired", raw: `{"summary":"repaired",}`, want: "repaired"},
		{name: "empty", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Summary string `json:"summary"`
			}
			err := DecodeJSON(tt.raw, &out)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Summary != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, out.Summary)
			}
		})
	}
}
