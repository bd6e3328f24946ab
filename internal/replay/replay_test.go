package replay

import (
	"bytes"
	"context"
	"math"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
	"gopkg.in/yaml.v3"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeProvider) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	switch {
	case strings.Contains(config.Prompt, "Summarize the conversation"):
		return `{"summary": "Hiring was discussed."}`, nil
	case strings.HasPrefix(config.Prompt, "Identify the key themes"):
		return `{"themes": ["hiring", "onboarding"]}`, nil
	default:
		return `{"insights": "Pair new hires with mentors."}`, nil
	}
}

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical after normalizing", a: "Hiring, was discussed!", b: "hiring was  discussed", want: 1},
		{name: "one empty", a: "", b: "hiring", want: 0},
		{name: "one edit", a: "abcd", b: "abce", want: 0.75},
		{name: "multibyte runes", a: "blå", b: "blæ", want: 2.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("textSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		if got := levenshteinDistance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestThemeOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"hiring, budget", "Budget, hiring", 1},
		{"hiring, budget", "hiring, onboarding", 1.0 / 3.0},
		{"", "", 1},
		{"hiring", "", 0},
	}
	for _, tt := range tests {
		if got := themeOverlap(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("themeOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	p := &fakeProvider{}
	reg := providers.NewRegistry("fake")
	reg.Register("fake", p, "fake-model")
	runner := flows.NewRunner(reg, nil, "", 0.2)

	cycles := []models.CycleRecord{
		{ID: "a", Transcription: "We talked about hiring.", Summary: "Hiring was discussed.", IdentifiedThemes: "hiring, onboarding"},
		{ID: "b"},
		{ID: "c", Transcription: "Budget.", Summary: "Budget", IdentifiedThemes: "budget"},
	}
	results := Run(context.Background(), runner, flows.Options{Provider: "fake", Model: "fake-model"}, cycles, 2)

	if len(results.Items) != 3 || results.Items[0].CycleID != "a" || results.Items[2].CycleID != "c" {
		t.Fatalf("Expected items in input order, got %+v", results.Items)
	}
	if results.Items[0].SummaryScore != 1 || results.Items[0].ThemeScore != 1 {
		t.Errorf("Expected perfect scores, got %+v", results.Items[0])
	}
	if results.Items[2].ThemeScore != 0 {
		t.Errorf("Expected no theme overlap, got %v", results.Items[2].ThemeScore)
	}

	s := results.Summary
	if s.TotalCycles != 3 || s.Replayed != 2 || s.Skipped != 1 || s.Failed != 0 {
		t.Errorf("Unexpected summary counts %+v", s)
	}
	if s.MaxSummaryScore != 1 || s.AverageThemeScore != 0.5 {
		t.Errorf("Unexpected summary scores %+v", s)
	}
	if p.calls != 6 {
		t.Errorf("Expected 3 calls per replayed cycle, got %d", p.calls)
	}

	var buf bytes.Buffer
	PrintSummary(&buf, s)
	if !strings.Contains(buf.String(), "Replayed:           2") {
		t.Errorf("Unexpected summary output:\n%s", buf.String())
	}

	path, err := SaveYAML(results, t.TempDir())
	if err != nil {
		t.Fatalf("SaveYAML: %v", err)
	}
	if !strings.Contains(path, "fake-model-") {
		t.Errorf("Unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var saved Results
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if saved.Summary.Replayed != 2 || len(saved.Items) != 3 {
		t.Errorf("Unexpected saved results %+v", saved.Summary)
	}
}
