package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
)

func TestFlowPayload(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	if err := os.WriteFile(inputPath, []byte(`{"text": "hiring"}`), 0644); err != nil {
		t.Fatal(err)
	}
	audioPath := filepath.Join(dir, "take.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF\x00\x00\x00\x00WAVEfmt "), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		data  string
		audio string
		want  string
	}{
		{name: "inline", data: `{"transcript": "x"}`, want: `{"transcript": "x"}`},
		{name: "file", input: inputPath, want: `{"text": "hiring"}`},
		{name: "stdin", input: "-", want: `{"from": "stdin"}`},
		{name: "none", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flowPayload(strings.NewReader(`{"from": "stdin"}`), tt.input, tt.data, tt.audio)
			if err != nil {
				t.Fatalf("flowPayload: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("audio", func(t *testing.T) {
		got, err := flowPayload(nil, "", "", audioPath)
		if err != nil {
			t.Fatalf("flowPayload: %v", err)
		}
		var in flows.TranscribeInput
		if err := json.Unmarshal(got, &in); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(in.AudioDataURI, "data:audio/wave;base64,") {
			t.Errorf("Unexpected data URI %q", in.AudioDataURI)
		}
	})

	if _, err := flowPayload(nil, filepath.Join(dir, "missing.json"), "", ""); err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestWriteDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.png")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	if err := writeDataURI(path, uri); err != nil {
		t.Fatalf("writeDataURI: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "png-bytes" {
		t.Errorf("Unexpected file contents %q (%v)", got, err)
	}
	if err := writeDataURI(path, "Fejl ved billedgenerering: kvote"); err == nil {
		t.Error("Expected error for non data URI")
	}
}

func TestFlowCommandTranscribe(t *testing.T) {
	t.Setenv("WHITEBOARD_PROVIDER", "gemini")

	uri := "data:audio/webm;base64," + base64.StdEncoding.EncodeToString([]byte("recording"))
	payload, _ := json.Marshal(flows.TranscribeInput{AudioDataURI: uri})

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"flow", "transcribe", "--data", string(payload)})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var resp flows.Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out.String())
	}
	if resp.Flow != flows.FlowTranscribe || resp.Result == nil || !resp.Result.OK() {
		t.Errorf("Unexpected response %+v", resp)
	}
	if !strings.Contains(resp.Result.Text, "audio/webm") {
		t.Errorf("Expected recording description, got %q", resp.Result.Text)
	}
}

func TestFlowCommandRejectsUnknownFlow(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"flow", "dance"})
	if err := root.Execute(); err == nil {
		t.Error("Expected error for unknown flow")
	}
}
