// Package session holds the state of one whiteboard session. A Session is created when a
// user starts working, is changed only when a flow call completes, and is discarded by End.
package session

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

var (
	ErrSummaryRequired    = errors.New("a summary is required before the whiteboard can be refined")
	ErrTranscriptRequired = errors.New("a transcript is required before a cycle can be analysed")
	ErrEnded              = errors.New("session has ended")
)

// Skip reason stored when there is nothing to illustrate.
const noWhiteboardContent = "intet whiteboard-indhold"

// Session is the explicit context passed to every interaction handler.
type Session struct {
	mu     sync.Mutex
	runner *flows.Runner
	opts   flows.Options

	id          string
	transcript  string
	summary     string
	themes      string
	voicePrompt string
	whiteboard  string

	// image holds a data URI or an error/skip sentinel for the current cycle.
	image     string
	insights  string
	loading   map[string]bool
	cycles    []models.CycleRecord
	notice    *models.Notification
	createdAt time.Time
	ended     bool
}

// New starts a session that calls flows through runner with the given backend options.
func New(runner *flows.Runner, opts flows.Options) *Session {
	return &Session{
		runner:    runner,
		opts:      opts,
		id:        uuid.NewString(),
		loading:   make(map[string]bool),
		createdAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View returns a snapshot of the session state.
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	loading := make(map[string]bool, len(s.loading))
	for k, v := range s.loading {
		loading[k] = v
	}
	cycles := make([]models.CycleRecord, len(s.cycles))
	copy(cycles, s.cycles)

	view := models.SessionView{
		ID:          s.id,
		Transcript:  s.transcript,
		Summary:     s.summary,
		Themes:      s.themes,
		VoicePrompt: s.voicePrompt,
		Whiteboard:  s.whiteboard,
		Insights:    s.insights,
		Loading:     loading,
		Cycles:      cycles,
		LastNotice:  s.notice,
		Provider:    s.opts.Provider,
		Model:       s.opts.Model,
		CreatedAt:   s.createdAt,
	}
	if strings.HasPrefix(s.image, flows.ImageSuccessMarker) {
		view.ImageDataURI = s.image
	}
	return view
}

// Cycles returns the completed cycles in order.
func (s *Session) Cycles() []models.CycleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	cycles := make([]models.CycleRecord, len(s.cycles))
	copy(cycles, s.cycles)
	return cycles
}

// SetTranscript replaces the transcript with user-entered text.
func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

// SetVoicePrompt replaces the voice prompt with user-entered text.
func (s *Session) SetVoicePrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voicePrompt = text
}

// SetWhiteboard replaces the whiteboard with user-edited text.
func (s *Session) SetWhiteboard(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whiteboard = text
}

// End discards the session state. Later calls fail with ErrEnded.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.transcript, s.summary, s.themes, s.voicePrompt = "", "", "", ""
	s.whiteboard, s.image, s.insights = "", "", ""
	s.cycles = nil
	s.notice = nil
	slog.Info("Session ended", "session_id", s.id)
}

// begin marks flow as loading and returns a snapshot taken under the lock.
func (s *Session) begin(flow string) (snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return snapshot{}, ErrEnded
	}
	s.loading[flow] = true
	return snapshot{
		transcript:  s.transcript,
		summary:     s.summary,
		themes:      s.themes,
		voicePrompt: s.voicePrompt,
		whiteboard:  s.whiteboard,
	}, nil
}

// finish clears the loading flag and applies the completed-flow callback.
func (s *Session) finish(flow string, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[flow] = false
	if s.ended {
		return
	}
	apply()
}

type snapshot struct {
	transcript  string
	summary     string
	themes      string
	voicePrompt string
	whiteboard  string
}

// notify records a user-visible notification. Caller holds s.mu.
func (s *Session) notify(title, description string) {
	s.notice = &models.Notification{
		Title:       title,
		Description: description,
		Destructive: true,
		CreatedAt:   time.Now(),
	}
	slog.Warn("Session notification", "session_id", s.id, "title", title, "description", description)
}

// textFlowDone stores a text flow result: the value on success, empty plus a notification otherwise.
func (s *Session) textFlowDone(title string, res flows.Result, field *string) {
	if res.OK() {
		*field = res.Text
		return
	}
	*field = ""
	s.notify(title, res.Text)
}
