package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

// Transcribe turns a recording into the (simulated) transcript.
func (s *Session) Transcribe(ctx context.Context, audioDataURI string) (flows.Result, error) {
	if _, err := s.begin(flows.FlowTranscribe); err != nil {
		return flows.Result{}, err
	}
	res := s.runner.Transcribe(ctx, flows.TranscribeInput{AudioDataURI: audioDataURI})
	s.finish(flows.FlowTranscribe, func() {
		if res.OK() {
			s.transcript = res.Text
			return
		}
		s.notify("Transskription mislykkedes", res.Text)
	})
	return res, nil
}

// Summarize summarizes the current transcript.
func (s *Session) Summarize(ctx context.Context) (flows.Result, error) {
	snap, err := s.begin(flows.FlowSummarize)
	if err != nil {
		return flows.Result{}, err
	}
	res := s.runner.Summarize(ctx, s.opts, flows.SummarizeInput{Transcript: snap.transcript})
	s.finish(flows.FlowSummarize, func() {
		s.textFlowDone("Opsummering mislykkedes", res, &s.summary)
	})
	return res, nil
}

// IdentifyThemes extracts themes from the first sentence of the summary, or from the
// transcript while no summary exists.
func (s *Session) IdentifyThemes(ctx context.Context) (flows.Result, error) {
	snap, err := s.begin(flows.FlowThemes)
	if err != nil {
		return flows.Result{}, err
	}
	text := snap.transcript
	if strings.TrimSpace(snap.summary) != "" {
		text = flows.FirstSentence(snap.summary)
	}
	res := s.runner.IdentifyThemes(ctx, s.opts, flows.ThemesInput{Text: text})
	s.finish(flows.FlowThemes, func() {
		s.textFlowDone("Temaer kunne ikke identificeres", res, &s.themes)
	})
	return res, nil
}

// RefineWhiteboard applies the voice prompt to the whiteboard. It is refused with
// ErrSummaryRequired while the summary is empty; the whiteboard is then left untouched.
func (s *Session) RefineWhiteboard(ctx context.Context) (flows.Result, error) {
	snap, err := s.begin(flows.FlowWhiteboard)
	if err != nil {
		return flows.Result{}, err
	}
	if strings.TrimSpace(snap.summary) == "" {
		s.finish(flows.FlowWhiteboard, func() {
			s.notify("Manglende opsummering", "Lav en opsummering af samtalen, før whiteboardet opdateres.")
		})
		return flows.Result{}, ErrSummaryRequired
	}

	res := s.runner.WhiteboardIdeas(ctx, s.opts, flows.WhiteboardInput{
		VoicePrompt: snap.voicePrompt,
		Themes:      snap.themes,
		Whiteboard:  snap.whiteboard,
	})
	s.finish(flows.FlowWhiteboard, func() {
		if res.OK() {
			s.whiteboard = res.Text
			return
		}
		s.notify("Whiteboardet blev ikke opdateret", res.Note)
	})
	return res, nil
}

// GenerateImage illustrates the whiteboard. On failure the image is reset to empty, a
// notification is raised and the error is returned.
func (s *Session) GenerateImage(ctx context.Context) (flows.ImageOutput, error) {
	snap, err := s.begin(flows.FlowImage)
	if err != nil {
		return flows.ImageOutput{}, err
	}
	if strings.TrimSpace(snap.whiteboard) == "" {
		s.finish(flows.FlowImage, func() {
			s.image = flows.ImageSkippedValue(noWhiteboardContent)
		})
		return flows.ImageOutput{}, flows.ErrEmptyInput
	}

	out, err := s.runner.GenerateImage(ctx, flows.ImageInput{Prompt: flows.ImagePrompt(snap.whiteboard, snap.themes)})
	s.finish(flows.FlowImage, func() {
		if err != nil {
			s.image = flows.ImageErrorValue(err)
			s.notify("Billedgenerering mislykkedes", err.Error())
			return
		}
		s.image = out.DataURI
	})
	return out, err
}

// GenerateInsights derives new insights from the current summary, themes and whiteboard.
func (s *Session) GenerateInsights(ctx context.Context) (flows.Result, error) {
	snap, err := s.begin(flows.FlowInsights)
	if err != nil {
		return flows.Result{}, err
	}
	res := s.runner.GenerateInsights(ctx, s.opts, flows.InsightsInput{
		Summary:    snap.summary,
		Themes:     snap.themes,
		Whiteboard: snap.whiteboard,
	})
	s.finish(flows.FlowInsights, func() {
		s.textFlowDone("Nye indsigter mislykkedes", res, &s.insights)
	})
	return res, nil
}

// CompleteCycle snapshots the current outputs as a new cycle.
func (s *Session) CompleteCycle() (models.CycleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return models.CycleRecord{}, ErrEnded
	}

	cycle := models.CycleRecord{
		ID:                    uuid.NewString(),
		Transcription:         s.transcript,
		Summary:               s.summary,
		IdentifiedThemes:      s.themes,
		WhiteboardContent:     s.whiteboard,
		GeneratedImageDataURI: s.image,
		NewInsights:           s.insights,
		CompletedAt:           time.Now(),
	}
	s.cycles = append(s.cycles, cycle)
	return cycle, nil
}

// Analyze runs one full cycle over the current transcript: summarize, identify themes,
// refine the whiteboard when a voice prompt is present, illustrate, derive insights and
// record the cycle. Individual flow failures are recorded in the cycle, not returned.
func (s *Session) Analyze(ctx context.Context) (models.CycleRecord, error) {
	s.mu.Lock()
	transcript, voicePrompt := s.transcript, s.voicePrompt
	s.mu.Unlock()
	if strings.TrimSpace(transcript) == "" {
		return models.CycleRecord{}, ErrTranscriptRequired
	}

	if _, err := s.Summarize(ctx); err != nil {
		return models.CycleRecord{}, err
	}
	if _, err := s.IdentifyThemes(ctx); err != nil {
		return models.CycleRecord{}, err
	}
	if strings.TrimSpace(voicePrompt) != "" {
		if _, err := s.RefineWhiteboard(ctx); err != nil && !errors.Is(err, ErrSummaryRequired) {
			return models.CycleRecord{}, err
		}
	}
	if _, err := s.GenerateImage(ctx); errors.Is(err, ErrEnded) {
		return models.CycleRecord{}, err
	}
	if _, err := s.GenerateInsights(ctx); err != nil {
		return models.CycleRecord{}, err
	}
	return s.CompleteCycle()
}

// ReportMeta is the optional metadata shown in a session report header.
type ReportMeta struct {
	Title   string `json:"title,omitempty"`
	Project string `json:"project,omitempty"`
	Contact string `json:"contact,omitempty"`
	User    string `json:"user,omitempty"`
}

// Report assembles the session report over the completed cycles.
func (s *Session) Report(ctx context.Context, meta ReportMeta) (flows.Result, error) {
	if _, err := s.begin(flows.FlowReport); err != nil {
		return flows.Result{}, err
	}
	req := models.ReportRequest{
		Cycles:   s.Cycles(),
		Title:    meta.Title,
		Project:  meta.Project,
		Contact:  meta.Contact,
		User:     meta.User,
		Provider: s.opts.Provider,
		Model:    s.opts.Model,
	}
	res := s.runner.GenerateReport(ctx, req)
	s.finish(flows.FlowReport, func() {
		if res.Status == flows.StatusBackendFailure {
			s.notify("Rapporten kunne ikke genereres", res.Text)
		}
	})
	return res, nil
}
