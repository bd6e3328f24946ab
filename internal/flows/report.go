package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

// Image status lines used in session reports.
const (
	ImageStatusSuccess = "Billede genereret og vist i sessionen."
	ImageStatusError   = "Billedgenerering mislykkedes"
	ImageStatusSkipped = "Billedgenerering sprunget over"
	ImageStatusOther   = "Billedstatus"
	ImageStatusInvalid = "Billedgenerering mislykkedes: ugyldige billeddata"
	ImageStatusNoData  = "Ingen billeddata for denne cyklus."
)

// ClassifyImageStatus turns the image field of a cycle into a human-readable status line.
// The first matching rule wins: image data, error prefix, skip prefix, invalid sentinel,
// any other text, no data.
func ClassifyImageStatus(value string) string {
	v := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(v, ImageSuccessMarker):
		return ImageStatusSuccess
	case strings.HasPrefix(v, ImageErrorPrefix):
		return withDetail(ImageStatusError, strings.TrimPrefix(v, ImageErrorPrefix))
	case strings.HasPrefix(v, ImageGenericErrorPrefix):
		return withDetail(ImageStatusError, strings.TrimPrefix(v, ImageGenericErrorPrefix))
	case strings.HasPrefix(v, ImageSkippedPrefix):
		return withDetail(ImageStatusSkipped, strings.TrimPrefix(v, ImageSkippedPrefix))
	case strings.HasPrefix(v, ImageInvalidPrefix):
		return ImageStatusInvalid + "."
	case v != "":
		return ImageStatusOther + ": " + v
	default:
		return ImageStatusNoData
	}
}

func withDetail(message, detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return message + "."
	}
	return message + ": " + detail
}

// ProcessCycles numbers cycles from 1 and derives their image status.
func ProcessCycles(cycles []models.CycleRecord) []models.ProcessedCycle {
	processed := make([]models.ProcessedCycle, 0, len(cycles))
	for i, c := range cycles {
		processed = append(processed, models.ProcessedCycle{
			CycleRecord: c,
			Index:       i + 1,
			ImageStatus: ClassifyImageStatus(c.GeneratedImageDataURI),
		})
	}
	return processed
}

// ResolvedReport is a report request with every optional field replaced by its display default.
type ResolvedReport struct {
	Title   string
	Project string
	Contact string
	User    string
	Cycles  []models.ProcessedCycle
}

func orDefault(v, def string) string {
	if blank(v) {
		return def
	}
	return strings.TrimSpace(v)
}

// ResolveReportRequest fills defaults so the prompt builder never sees an absent field.
func ResolveReportRequest(req models.ReportRequest) ResolvedReport {
	cycles := ProcessCycles(req.Cycles)
	for i := range cycles {
		c := &cycles[i]
		c.Transcription = orDefault(c.Transcription, FieldNotAvailable)
		c.Summary = orDefault(c.Summary, FieldNotAvailable)
		c.IdentifiedThemes = orDefault(c.IdentifiedThemes, FieldNotAvailable)
		c.WhiteboardContent = orDefault(c.WhiteboardContent, FieldNotAvailable)
		c.NewInsights = orDefault(c.NewInsights, FieldNotAvailable)
	}

	return ResolvedReport{
		Title:   orDefault(req.Title, DefaultReportTitle),
		Project: orDefault(req.Project, DefaultProject),
		Contact: orDefault(req.Contact, DefaultContact),
		User:    orDefault(req.User, DefaultUser),
		Cycles:  cycles,
	}
}

// BuildReportPrompt renders the report prompt. It is pure: the same input gives the same prompt.
func BuildReportPrompt(r ResolvedReport) string {
	var sb strings.Builder

	sb.WriteString("You are writing the final report of a brainstorming session that combined a shared whiteboard with recorded conversation.\n")
	sb.WriteString("Write the report in Danish as plain text with clear section headings.\n\n")

	sb.WriteString("REPORT HEADER (reproduce exactly):\n")
	sb.WriteString(fmt.Sprintf("Titel: %s\n", r.Title))
	sb.WriteString(fmt.Sprintf("Projekt: %s\n", r.Project))
	sb.WriteString(fmt.Sprintf("Kontaktperson: %s\n", r.Contact))
	sb.WriteString(fmt.Sprintf("Udarbejdet af: %s\n", r.User))
	sb.WriteString(fmt.Sprintf("Dato: %s\n\n", DatePlaceholder))

	sb.WriteString(fmt.Sprintf("The session has %d analysis cycles:\n\n", len(r.Cycles)))
	for _, c := range r.Cycles {
		sb.WriteString(fmt.Sprintf("=== Cyklus %d ===\n", c.Index))
		sb.WriteString(fmt.Sprintf("Transskription:\n%s\n\n", c.Transcription))
		sb.WriteString(fmt.Sprintf("Opsummering:\n%s\n\n", c.Summary))
		sb.WriteString(fmt.Sprintf("Temaer: %s\n\n", c.IdentifiedThemes))
		sb.WriteString(fmt.Sprintf("Whiteboard:\n%s\n\n", c.WhiteboardContent))
		sb.WriteString(fmt.Sprintf("Billede: %s\n\n", c.ImageStatus))
		sb.WriteString(fmt.Sprintf("Nye indsigter:\n%s\n\n", c.NewInsights))
	}

	sb.WriteString(`INSTRUCTIONS:
1. Start with the report header above. Keep the token ` + DatePlaceholder + ` as written; it is filled in afterwards.
2. Write a short executive summary of the whole session.
3. Write one section per cycle titled "Cyklus N" that describes the discussion, the themes, the whiteboard and the image status.
4. End with a section of consolidated insights and recommended next steps.
5. Only use information given above. Write "Ikke tilgængelig" where information is missing.`)

	return sb.String()
}

// FormatReportDate renders day.month.year without zero padding, e.g. 3.7.2025.
func FormatReportDate(t time.Time) string {
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

// SubstituteDate replaces every DatePlaceholder in text with the formatted date.
func SubstituteDate(text string, now time.Time) string {
	return strings.ReplaceAll(text, DatePlaceholder, FormatReportDate(now))
}

// GenerateReport assembles the session report over req.Cycles.
func (r *Runner) GenerateReport(ctx context.Context, req models.ReportRequest) Result {
	if len(req.Cycles) == 0 {
		return emptyInput(NoCyclesMessage)
	}

	opts := Options{Provider: req.Provider, Model: req.Model}
	prompt := BuildReportPrompt(ResolveReportRequest(req))

	raw, _, _, err := r.generate(ctx, opts, prompt, false)
	if err != nil {
		logFailure("report", opts, err)
		return backendFailure(ReportFailed)
	}
	report := strings.TrimSpace(raw)
	if report == "" {
		logFailure("report", opts, ErrInvalidOutput)
		return backendFailure(ReportFailed)
	}

	return ok(SubstituteDate(report, r.now()))
}
