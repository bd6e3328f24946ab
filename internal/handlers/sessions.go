package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/whiteboard/internal/archive"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
	"github.com/lehigh-university-libraries/whiteboard/internal/session"
)

// actionResponse is returned by every session action.
type actionResponse struct {
	Result  *flows.Result       `json:"result,omitempty"`
	Image   *flows.ImageOutput  `json:"image,omitempty"`
	Cycle   *models.CycleRecord `json:"cycle,omitempty"`
	Session models.SessionView  `json:"session"`
}

// textUpdate carries user edits; nil fields are left unchanged.
type textUpdate struct {
	Transcript  *string `json:"transcript"`
	VoicePrompt *string `json:"voice_prompt"`
	Whiteboard  *string `json:"whiteboard"`
}

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sessions := h.sessionStore.GetAll()
		views := make([]models.SessionView, 0, len(sessions))
		for _, sess := range sessions {
			views = append(views, sess.View())
		}
		h.writeJSON(w, views)
	case http.MethodPost:
		var opts flows.Options
		if !h.decodeJSON(w, r, &opts) {
			return
		}
		if opts.Provider == "" {
			opts.Provider = h.defaults.Provider
		}
		if opts.Model == "" && opts.Provider == h.defaults.Provider {
			opts.Model = h.defaults.Model
		}
		if _, _, err := h.registry.Resolve(opts.Provider, opts.Model); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		sess := session.New(h.runner, opts)
		h.sessionStore.Set(sess)
		slog.Info("Session started", "session_id", sess.ID(), "provider", opts.Provider, "model", opts.Model)
		h.writeJSONStatus(w, http.StatusCreated, sess.View())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")
	sessionID, action, _ := strings.Cut(path, "/")

	sess, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	if action == "" {
		switch r.Method {
		case http.MethodGet:
			h.writeJSON(w, sess.View())
		case http.MethodDelete:
			h.sessionStore.Delete(sessionID)
			w.WriteHeader(http.StatusNoContent)
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if action == "export" {
		if r.Method != http.MethodGet {
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleExport(w, r, sess)
		return
	}

	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.handleAction(w, r, sess, action)
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request, sess *session.Session, action string) {
	ctx := r.Context()
	var resp actionResponse
	var err error

	switch action {
	case "transcribe":
		var audio string
		audio, err = h.readAudio(w, r)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		var res flows.Result
		res, err = sess.Transcribe(ctx, audio)
		resp.Result = &res
	case "transcript":
		var update textUpdate
		if !h.decodeJSON(w, r, &update) {
			return
		}
		if update.Transcript != nil {
			sess.SetTranscript(*update.Transcript)
		}
		if update.VoicePrompt != nil {
			sess.SetVoicePrompt(*update.VoicePrompt)
		}
		if update.Whiteboard != nil {
			sess.SetWhiteboard(*update.Whiteboard)
		}
	case flows.FlowSummarize:
		var res flows.Result
		res, err = sess.Summarize(ctx)
		resp.Result = &res
	case flows.FlowThemes:
		var res flows.Result
		res, err = sess.IdentifyThemes(ctx)
		resp.Result = &res
	case flows.FlowWhiteboard:
		var res flows.Result
		res, err = sess.RefineWhiteboard(ctx)
		resp.Result = &res
	case flows.FlowImage:
		var out flows.ImageOutput
		out, err = sess.GenerateImage(ctx)
		resp.Image = &out
	case flows.FlowInsights:
		var res flows.Result
		res, err = sess.GenerateInsights(ctx)
		resp.Result = &res
	case "cycle":
		var cycle models.CycleRecord
		cycle, err = sess.CompleteCycle()
		resp.Cycle = &cycle
	case "analyze":
		var cycle models.CycleRecord
		cycle, err = sess.Analyze(ctx)
		resp.Cycle = &cycle
	case flows.FlowReport:
		var meta session.ReportMeta
		if !h.decodeJSON(w, r, &meta) {
			return
		}
		var res flows.Result
		res, err = sess.Report(ctx, meta)
		resp.Result = &res
	default:
		h.writeError(w, "Unknown action: "+action, http.StatusNotFound)
		return
	}

	if err != nil {
		h.writeError(w, err.Error(), actionErrorCode(err))
		return
	}
	resp.Session = sess.View()
	h.writeJSON(w, resp)
}

func actionErrorCode(err error) int {
	switch {
	case errors.Is(err, session.ErrEnded):
		return http.StatusGone
	case errors.Is(err, session.ErrSummaryRequired):
		return http.StatusConflict
	case errors.Is(err, session.ErrTranscriptRequired), errors.Is(err, flows.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = archive.FormatJSONL
	}

	doc := archive.Document{
		SessionID:  sess.ID(),
		ExportedAt: time.Now().UTC(),
		Cycles:     sess.Cycles(),
	}

	var buf bytes.Buffer
	if err := archive.Encode(&buf, format, doc); err != nil {
		h.writeError(w, "Export failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", archive.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "session-"+sess.ID()+"."+format))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Unable to write export", "session_id", sess.ID(), "err", err)
	}
}
