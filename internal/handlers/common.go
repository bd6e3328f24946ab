package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
	"github.com/lehigh-university-libraries/whiteboard/internal/session"
	"github.com/lehigh-university-libraries/whiteboard/internal/storage"
)

// Request bodies carry recordings and images as data URIs.
const maxBodyBytes = 32 << 20

type Handler struct {
	sessionStore *storage.SessionStore
	runner       *flows.Runner
	registry     *providers.Registry
	defaults     flows.Options
	staticDir    string
}

func New(runner *flows.Runner, registry *providers.Registry, defaults flows.Options, staticDir string) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		runner:       runner,
		registry:     registry,
		defaults:     defaults,
		staticDir:    staticDir,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/api/flows/", h.HandleFlow)
	mux.HandleFunc("/api/providers", h.HandleProviders)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message, "code", code)
	} else {
		slog.Warn(message, "code", code)
	}
	http.Error(w, message, code)
}

// decodeJSON reads an optional JSON body into v. An empty body leaves v untouched.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*session.Session, bool) {
	sess, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (h *Handler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]any{
		"providers": h.registry.Names(),
		"default":   h.defaults,
	})
}
