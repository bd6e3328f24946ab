package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"
)

// testWAV builds a mono 16-bit PCM WAV file with the given number of samples.
func testWAV(sampleRate, samples int) []byte {
	dataSize := samples * 2
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello"))

	tests := []struct {
		name     string
		uri      string
		wantMIME string
		wantErr  bool
	}{
		{name: "plain", uri: "data:audio/wav;base64," + payload, wantMIME: "audio/wav"},
		{name: "codec parameter", uri: "data:audio/webm;codecs=opus;base64," + payload, wantMIME: "audio/webm"},
		{name: "missing mime", uri: "data:;base64," + payload, wantMIME: "application/octet-stream"},
		{name: "not a data uri", uri: "https://example.com/a.wav", wantErr: true},
		{name: "not base64", uri: "data:audio/wav," + payload, wantErr: true},
		{name: "no separator", uri: "data:audio/wav;base64", wantErr: true},
		{name: "empty payload", uri: "data:audio/wav;base64,", wantErr: true},
		{name: "bad payload", uri: "data:audio/wav;base64,!!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := ParseDataURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mime != tt.wantMIME {
				t.Errorf("Expected MIME %s, got %s", tt.wantMIME, mime)
			}
			if string(data) != "hello" {
				t.Errorf("Unexpected payload %q", data)
			}
		})
	}
}

func TestInspectWAV(t *testing.T) {
	info := Inspect("audio/wav", testWAV(8000, 8000))
	if info.Bytes != 44+16000 {
		t.Errorf("Expected %d bytes, got %d", 44+16000, info.Bytes)
	}
	if info.Duration < 900*time.Millisecond || info.Duration > 1100*time.Millisecond {
		t.Errorf("Expected about one second, got %v", info.Duration)
	}
}

func TestInspectNonWAV(t *testing.T) {
	info := Inspect("audio/webm", []byte("not really webm"))
	if info.Duration != 0 {
		t.Errorf("Expected zero duration, got %v", info.Duration)
	}
	if info.Describe() != "audio/webm, 15 B" {
		t.Errorf("Unexpected description %q", info.Describe())
	}
}

func TestHumanBytes(t *testing.T) {
	tests := map[int]string{
		12:              "12 B",
		2048:            "2.0 KB",
		3 * 1024 * 1024: "3.0 MB",
	}
	for n, want := range tests {
		if got := humanBytes(n); got != want {
			t.Errorf("humanBytes(%d) = %s, want %s", n, got, want)
		}
	}
}
