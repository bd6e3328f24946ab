package archive

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

func sampleDocument() Document {
	return Document{
		SessionID:  "session-1",
		ExportedAt: time.Date(2025, time.July, 3, 10, 0, 0, 0, time.UTC),
		Cycles: []models.CycleRecord{
			{
				ID:                    "c1",
				Transcription:         "We need to hire.",
				Summary:               "Hiring was discussed.",
				IdentifiedThemes:      "hiring, budget",
				WhiteboardContent:     "- Hire two engineers",
				GeneratedImageDataURI: "data:image/png;base64,AAAA",
				NewInsights:           "Consider contractors.",
				CompletedAt:           time.Date(2025, time.July, 3, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:                    "c2",
				Summary:               "Budget follow-up.",
				GeneratedImageDataURI: "Sprunget over: intet whiteboard-indhold",
				CompletedAt:           time.Date(2025, time.July, 3, 9, 45, 0, 0, time.UTC),
			},
		},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "cycles.parquet", want: FormatParquet},
		{path: "cycles.JSONL", want: FormatJSONL},
		{path: "cycles.json", want: FormatJSONL},
		{path: "cycles.yml", want: FormatYAML},
		{path: "cycles.csv", wantErr: true},
		{path: "cycles", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	doc := sampleDocument()

	for _, ext := range []string{".jsonl", ".yaml", ".parquet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session"+ext)
			if err := Save(path, doc); err != nil {
				t.Fatalf("Save: %v", err)
			}
			cycles, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(cycles) != len(doc.Cycles) {
				t.Fatalf("Expected %d cycles, got %d", len(doc.Cycles), len(cycles))
			}
			for i, want := range doc.Cycles {
				got := cycles[i]
				if got.ID != want.ID || got.Summary != want.Summary || got.GeneratedImageDataURI != want.GeneratedImageDataURI {
					t.Errorf("Cycle %d mismatch: got %+v", i, got)
				}
				if !got.CompletedAt.Equal(want.CompletedAt) {
					t.Errorf("Cycle %d completed_at: got %v, want %v", i, got.CompletedAt, want.CompletedAt)
				}
			}
		})
	}
}

func TestEncodeYAMLIncludesSession(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatYAML, sampleDocument()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"session_id: session-1", "identified_themes: hiring, budget", "cycles:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected YAML to contain %q:\n%s", want, out)
		}
	}
}

func TestDecodeJSONLErrors(t *testing.T) {
	cycles, err := Decode([]byte("\n{\"id\":\"a\"}\n\n"), FormatJSONL)
	if err != nil || len(cycles) != 1 || cycles[0].ID != "a" {
		t.Fatalf("Expected one cycle, got %v (%v)", cycles, err)
	}
	if _, err := Decode([]byte("{\"id\":\"a\"}\nnot json\n"), FormatJSONL); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected line number in error, got %v", err)
	}
	if _, err := Decode(nil, "csv"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
