// Package replay re-runs archived cycles against a backend and scores the new outputs
// against the archived ones.
package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

// Item is the replay outcome for one archived cycle.
type Item struct {
	CycleID      string        `yaml:"cycle_id"`
	Summary      string        `yaml:"summary"`
	Themes       string        `yaml:"themes"`
	Insights     string        `yaml:"insights"`
	SummaryScore float64       `yaml:"summary_score"`
	ThemeScore   float64       `yaml:"theme_score"`
	Duration     time.Duration `yaml:"duration"`
	Error        string        `yaml:"error,omitempty"`
}

type Summary struct {
	TotalCycles         int           `yaml:"total_cycles"`
	Replayed            int           `yaml:"replayed"`
	Failed              int           `yaml:"failed"`
	Skipped             int           `yaml:"skipped"`
	AverageSummaryScore float64       `yaml:"average_summary_score"`
	MedianSummaryScore  float64       `yaml:"median_summary_score"`
	MinSummaryScore     float64       `yaml:"min_summary_score"`
	MaxSummaryScore     float64       `yaml:"max_summary_score"`
	AverageThemeScore   float64       `yaml:"average_theme_score"`
	AverageDuration     time.Duration `yaml:"average_duration"`
}

type Results struct {
	Provider  string    `yaml:"provider"`
	Model     string    `yaml:"model"`
	StartedAt time.Time `yaml:"started_at"`
	Items     []Item    `yaml:"items"`
	Summary   Summary   `yaml:"summary"`
}

// Run replays cycles with at most concurrency flows in flight. Results keep the input order.
func Run(ctx context.Context, runner *flows.Runner, opts flows.Options, cycles []models.CycleRecord, concurrency int) *Results {
	if concurrency < 1 {
		concurrency = 1
	}
	results := &Results{
		Provider:  opts.Provider,
		Model:     opts.Model,
		StartedAt: time.Now(),
		Items:     make([]Item, len(cycles)),
	}

	slog.Info("Starting replay", "cycles", len(cycles), "provider", opts.Provider, "model", opts.Model, "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	for i, cycle := range cycles {
		wg.Add(1)
		go func(idx int, cycle models.CycleRecord) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Replaying cycle", "id", cycle.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(cycles)))
			results.Items[idx] = replayCycle(ctx, runner, opts, cycle)
		}(i, cycle)
	}
	wg.Wait()

	results.Summary = summarize(results.Items)
	return results
}

const skippedNoTranscript = "skipped: no transcription"

func replayCycle(ctx context.Context, runner *flows.Runner, opts flows.Options, cycle models.CycleRecord) Item {
	item := Item{CycleID: cycle.ID}
	if cycle.Transcription == "" {
		item.Error = skippedNoTranscript
		return item
	}

	start := time.Now()

	summary := runner.Summarize(ctx, opts, flows.SummarizeInput{Transcript: cycle.Transcription})
	if !summary.OK() {
		item.Error = "summarize: " + summary.Status.String()
		item.Duration = time.Since(start)
		return item
	}
	item.Summary = summary.Text
	item.SummaryScore = textSimilarity(cycle.Summary, summary.Text)

	themes := runner.IdentifyThemes(ctx, opts, flows.ThemesInput{Text: flows.FirstSentence(summary.Text)})
	if !themes.OK() {
		item.Error = "themes: " + themes.Status.String()
		item.Duration = time.Since(start)
		return item
	}
	item.Themes = themes.Text
	item.ThemeScore = themeOverlap(cycle.IdentifiedThemes, themes.Text)

	insights := runner.GenerateInsights(ctx, opts, flows.InsightsInput{
		Summary:    summary.Text,
		Themes:     themes.Text,
		Whiteboard: cycle.WhiteboardContent,
	})
	if !insights.OK() {
		item.Error = "insights: " + insights.Status.String()
	}
	item.Insights = insights.Text
	item.Duration = time.Since(start)
	return item
}

func summarize(items []Item) Summary {
	summary := Summary{TotalCycles: len(items)}

	var scores []float64
	var themeTotal float64
	var durationTotal time.Duration
	for _, item := range items {
		switch {
		case item.Error == skippedNoTranscript:
			summary.Skipped++
			continue
		case item.Error != "":
			summary.Failed++
			continue
		}
		summary.Replayed++
		scores = append(scores, item.SummaryScore)
		themeTotal += item.ThemeScore
		durationTotal += item.Duration
	}

	if len(scores) == 0 {
		return summary
	}

	var total float64
	for _, score := range scores {
		total += score
	}
	summary.AverageSummaryScore = total / float64(len(scores))

	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		summary.MedianSummaryScore = (scores[mid-1] + scores[mid]) / 2
	} else {
		summary.MedianSummaryScore = scores[mid]
	}
	summary.MinSummaryScore = scores[0]
	summary.MaxSummaryScore = scores[len(scores)-1]
	summary.AverageThemeScore = themeTotal / float64(len(scores))
	summary.AverageDuration = durationTotal / time.Duration(len(scores))
	return summary
}

// PrintSummary writes a human-readable summary to w.
func PrintSummary(w io.Writer, summary Summary) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "Replay Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Total Cycles:       %d\n", summary.TotalCycles)
	fmt.Fprintf(w, "Replayed:           %d\n", summary.Replayed)
	fmt.Fprintf(w, "Failed:             %d\n", summary.Failed)
	fmt.Fprintf(w, "Skipped:            %d\n", summary.Skipped)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary Similarity: %.2f%% avg, %.2f%% median\n", summary.AverageSummaryScore*100, summary.MedianSummaryScore*100)
	fmt.Fprintf(w, "                    %.2f%% min, %.2f%% max\n", summary.MinSummaryScore*100, summary.MaxSummaryScore*100)
	fmt.Fprintf(w, "Theme Overlap:      %.2f%% avg\n", summary.AverageThemeScore*100)
	fmt.Fprintf(w, "Average Duration:   %s\n", summary.AverageDuration.Round(time.Millisecond))
	fmt.Fprintln(w, "========================================")
}
