package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
)

// HandleFlow runs a single flow without a session. The provider and model may be given as
// query parameters; the request body is the flow's JSON input.
func (h *Handler) HandleFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/flows/"), "/")
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload) > 0 && !json.Valid(payload) {
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opts := flows.Options{
		Provider: r.URL.Query().Get("provider"),
		Model:    r.URL.Query().Get("model"),
	}
	if opts.Provider == "" {
		opts = h.defaults
	}

	resp, err := h.runner.Dispatch(r.Context(), name, opts, payload)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, flows.ErrUnknownFlow):
			code = http.StatusNotFound
		case errors.Is(err, flows.ErrEmptyInput):
			code = http.StatusUnprocessableEntity
		case errors.As(err, &typeErr):
			code = http.StatusBadRequest
		}
		h.writeError(w, err.Error(), code)
		return
	}
	h.writeJSON(w, resp)
}
