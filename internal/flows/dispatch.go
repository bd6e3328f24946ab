package flows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lehigh-university-libraries/whiteboard/internal/models"
)

// Flow names accepted by Dispatch.
const (
	FlowTranscribe = "transcribe"
	FlowSummarize  = "summarize"
	FlowThemes     = "themes"
	FlowWhiteboard = "whiteboard"
	FlowInsights   = "insights"
	FlowImage      = "image"
	FlowReport     = "report"
)

// Names lists every flow in cycle order.
var Names = []string{FlowTranscribe, FlowSummarize, FlowThemes, FlowWhiteboard, FlowImage, FlowInsights, FlowReport}

// Response is the envelope returned by Dispatch.
type Response struct {
	Flow   string       `json:"flow"`
	Result *Result      `json:"result,omitempty"`
	Image  *ImageOutput `json:"image,omitempty"`
}

// Dispatch decodes a JSON payload into the named flow's input and runs it. Only malformed
// payloads, unknown flows and image failures produce an error.
func (r *Runner) Dispatch(ctx context.Context, name string, opts Options, payload []byte) (*Response, error) {
	decode := func(v any) error {
		if len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("invalid %s input: %w", name, err)
		}
		return nil
	}

	resp := &Response{Flow: name}
	var res Result

	switch name {
	case FlowTranscribe:
		var in TranscribeInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		res = r.Transcribe(ctx, in)
	case FlowSummarize:
		var in SummarizeInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		res = r.Summarize(ctx, opts, in)
	case FlowThemes:
		var in ThemesInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		res = r.IdentifyThemes(ctx, opts, in)
	case FlowWhiteboard:
		var in WhiteboardInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		res = r.WhiteboardIdeas(ctx, opts, in)
	case FlowInsights:
		var in InsightsInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		res = r.GenerateInsights(ctx, opts, in)
	case FlowImage:
		var in ImageInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		out, err := r.GenerateImage(ctx, in)
		if err != nil {
			return nil, err
		}
		resp.Image = &out
		return resp, nil
	case FlowReport:
		var in models.ReportRequest
		if err := decode(&in); err != nil {
			return nil, err
		}
		if in.Provider == "" {
			in.Provider = opts.Provider
		}
		if in.Model == "" {
			in.Model = opts.Model
		}
		res = r.GenerateReport(ctx, in)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, name)
	}

	resp.Result = &res
	return resp, nil
}
