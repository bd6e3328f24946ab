package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Recordings larger than this are rejected.
const maxAudioBytes = 20 * 1024 * 1024

// readAudio returns the recording sent with a transcribe request as a data URI. The browser
// posts JSON {"audio_data_uri": "..."}; scripts may upload a multipart "audio" file instead.
func (h *Handler) readAudio(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readAudioFile(r)
	}

	var request struct {
		AudioDataURI string `json:"audio_data_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return request.AudioDataURI, nil
}

func readAudioFile(r *http.Request) (string, error) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file contents: %w", err)
	}
	if len(data) > maxAudioBytes {
		return "", fmt.Errorf("file too large (max %d MB)", maxAudioBytes/1024/1024)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	contentType, _, _ = strings.Cut(contentType, ";")

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
