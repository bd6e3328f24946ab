package flows

import (
	"context"
	"strings"
)

// MaxThemes caps the identified theme list.
const MaxThemes = 5

type SummarizeInput struct {
	Transcript string `json:"transcript"`
}

// Summarize condenses a transcript.
func (r *Runner) Summarize(ctx context.Context, opts Options, in SummarizeInput) Result {
	if blank(in.Transcript) {
		return emptyInput(SummaryUnavailable)
	}

	var out summaryOutput
	if err := r.generateJSON(ctx, "summarize", opts, summarizePrompt(in.Transcript), summarySchema, &out); err != nil {
		logFailure("summarize", opts, err)
		return backendFailure(SummaryFailed)
	}
	if blank(out.Summary) {
		logFailure("summarize", opts, ErrInvalidOutput)
		return backendFailure(SummaryFailed)
	}
	return ok(strings.TrimSpace(out.Summary))
}

type ThemesInput struct {
	Text string `json:"text"`
}

// IdentifyThemes extracts a comma-separated list of at most MaxThemes theme phrases.
func (r *Runner) IdentifyThemes(ctx context.Context, opts Options, in ThemesInput) Result {
	if blank(in.Text) {
		return emptyInput(ThemesUnavailable)
	}

	var out themesOutput
	if err := r.generateJSON(ctx, "themes", opts, themesPrompt(in.Text), themesSchema, &out); err != nil {
		logFailure("themes", opts, err)
		return backendFailure(ThemesFailed)
	}
	themes := NormalizeThemes(out.Themes)
	if themes == "" {
		logFailure("themes", opts, ErrInvalidOutput)
		return backendFailure(ThemesFailed)
	}
	return ok(themes)
}

type WhiteboardInput struct {
	VoicePrompt string `json:"voice_prompt"`
	Themes      string `json:"themes"`
	Whiteboard  string `json:"whiteboard"`
}

// WhiteboardIdeas refines the whiteboard following a spoken instruction. When the call
// cannot produce new text the existing whiteboard is returned unchanged with a Note.
func (r *Runner) WhiteboardIdeas(ctx context.Context, opts Options, in WhiteboardInput) Result {
	if blank(in.VoicePrompt) {
		return Result{Text: in.Whiteboard, Status: StatusEmptyInput, Note: WhiteboardPromptMissing}
	}

	var out whiteboardOutput
	if err := r.generateJSON(ctx, "whiteboard", opts, whiteboardPrompt(in), whiteboardSchema, &out); err != nil {
		logFailure("whiteboard", opts, err)
		return Result{Text: in.Whiteboard, Status: StatusBackendFailure, Note: WhiteboardFailed}
	}
	if blank(out.Whiteboard) {
		logFailure("whiteboard", opts, ErrInvalidOutput)
		return Result{Text: in.Whiteboard, Status: StatusBackendFailure, Note: WhiteboardFailed}
	}
	return ok(strings.TrimSpace(out.Whiteboard))
}

type InsightsInput struct {
	Summary    string `json:"summary"`
	Themes     string `json:"themes"`
	Whiteboard string `json:"whiteboard"`
}

// GenerateInsights proposes new ideas building on the current cycle.
func (r *Runner) GenerateInsights(ctx context.Context, opts Options, in InsightsInput) Result {
	if blank(in.Summary) {
		return emptyInput(InsightsUnavailable)
	}

	var out insightsOutput
	if err := r.generateJSON(ctx, "insights", opts, insightsPrompt(in), insightsSchema, &out); err != nil {
		logFailure("insights", opts, err)
		return backendFailure(InsightsFailed)
	}
	if blank(out.Insights) {
		logFailure("insights", opts, ErrInvalidOutput)
		return backendFailure(InsightsFailed)
	}
	return ok(strings.TrimSpace(out.Insights))
}

// NormalizeThemes flattens, cleans and deduplicates theme phrases and joins at most
// MaxThemes of them with ", ".
func NormalizeThemes(raw []string) string {
	seen := make(map[string]bool)
	var themes []string
	for _, entry := range raw {
		for _, phrase := range strings.Split(entry, ",") {
			phrase = strings.TrimSpace(phrase)
			phrase = strings.TrimLeft(phrase, "-*• ")
			phrase = strings.Trim(phrase, `"'`)
			phrase = strings.TrimSpace(phrase)
			if phrase == "" {
				continue
			}
			key := strings.ToLower(phrase)
			if seen[key] {
				continue
			}
			seen[key] = true
			themes = append(themes, phrase)
			if len(themes) == MaxThemes {
				return strings.Join(themes, ", ")
			}
		}
	}
	return strings.Join(themes, ", ")
}

// FirstSentence returns the text up to and including the first sentence terminator
// that is followed by whitespace or the end of the text.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + 1
		if next == len(text) || text[next] == ' ' || text[next] == '\n' || text[next] == '\t' {
			return text[:next]
		}
	}
	return text
}
