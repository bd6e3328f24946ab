package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// Info describes a recording received from the browser.
type Info struct {
	MIMEType string
	Bytes    int

	// Duration is zero when the container could not be inspected.
	Duration time.Duration
}

// ParseDataURI splits a base64 data URI ("data:audio/wav;base64,....") into its MIME type
// and decoded payload. Parameters such as ";codecs=opus" are dropped from the MIME type.
func ParseDataURI(uri string) (string, []byte, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	header, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("data URI has no payload separator")
	}

	params := strings.Split(header, ";")
	if params[len(params)-1] != "base64" {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}

	mime := strings.ToLower(strings.TrimSpace(params[0]))
	if mime == "" {
		mime = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("data URI payload is empty")
	}

	return mime, data, nil
}

// Inspect reports size and, for WAV recordings, duration.
func Inspect(mime string, data []byte) Info {
	info := Info{MIMEType: mime, Bytes: len(data)}

	if !isWAV(mime, data) {
		return info
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		slog.Debug("Recording is not a valid WAV file", "mime", mime, "bytes", len(data))
		return info
	}
	d, err := dec.Duration()
	if err != nil {
		slog.Debug("Unable to read WAV duration", "err", err)
		return info
	}
	info.Duration = d
	return info
}

func isWAV(mime string, data []byte) bool {
	switch mime {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return true
	}
	return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// Describe renders a short human-readable description such as "audio/wav, 31.3 KB, 1.0 s".
func (i Info) Describe() string {
	parts := []string{i.MIMEType, humanBytes(i.Bytes)}
	if i.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.1f s", i.Duration.Seconds()))
	}
	return strings.Join(parts, ", ")
}

func humanBytes(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/1024/1024)
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
