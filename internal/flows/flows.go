// Package flows holds the request/response operations behind the whiteboard: each flow
// validates its input, renders a prompt, calls one generative backend and validates the
// reply, returning a fixed fallback text instead of an error for expected failures.
package flows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
)

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrNoImage       = providers.ErrNoImage
	ErrInvalidOutput = errors.New("backend reply does not match the output schema")
	ErrUnknownFlow   = errors.New("unknown flow")
)

// Status classifies how a flow call ended.
type Status int

const (
	StatusOK Status = iota
	// StatusEmptyInput means the backend was never called.
	StatusEmptyInput
	StatusBackendFailure
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmptyInput:
		return "empty_input"
	case StatusBackendFailure:
		return "backend_failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText lets Status render as its name in JSON and YAML.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusOK, StatusEmptyInput, StatusBackendFailure} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Result is the outcome of a text flow. Text always holds something displayable:
// the validated backend output on success, a fallback string otherwise.
type Result struct {
	Text   string `json:"text"`
	Status Status `json:"status"`

	// Note carries a user-facing explanation when Text had to be preserved rather than replaced.
	Note string `json:"note,omitempty"`
}

// OK reports whether the backend produced the text.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

func ok(text string) Result {
	return Result{Text: text, Status: StatusOK}
}

func emptyInput(fallback string) Result {
	return Result{Text: fallback, Status: StatusEmptyInput}
}

func backendFailure(fallback string) Result {
	return Result{Text: fallback, Status: StatusBackendFailure}
}

// Options selects the text backend for a single call. Empty values use the runner defaults.
type Options struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Runner executes flows against the configured backends.
type Runner struct {
	registry    *providers.Registry
	images      providers.ImageProvider
	imageModel  string
	temperature float64
	now         func() time.Time
}

// NewRunner returns a Runner. images may be nil, in which case image generation fails.
func NewRunner(registry *providers.Registry, images providers.ImageProvider, imageModel string, temperature float64) *Runner {
	return &Runner{
		registry:    registry,
		images:      images,
		imageModel:  imageModel,
		temperature: temperature,
		now:         time.Now,
	}
}

// blank reports whether s has no visible content.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// generateJSON runs prompt against the resolved backend and decodes a schema-checked
// JSON object into out.
func (r *Runner) generateJSON(ctx context.Context, flow string, opts Options, prompt string, schema *jsonschema.Resolved, out any) error {
	raw, provider, model, err := r.generate(ctx, opts, prompt, true)
	if err != nil {
		return err
	}

	var instance map[string]any
	if err := providers.DecodeJSON(raw, &instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	// Round-trip through JSON so out only sees validated fields.
	data, err := json.Marshal(instance)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	slog.Debug("Flow completed", "flow", flow, "provider", provider, "model", model, "length", len(raw))
	return nil
}

// generate resolves the backend and returns the raw reply.
func (r *Runner) generate(ctx context.Context, opts Options, prompt string, asJSON bool) (string, string, string, error) {
	p, model, err := r.registry.Resolve(opts.Provider, opts.Model)
	if err != nil {
		return "", "", "", err
	}

	raw, err := p.ExtractText(ctx, providers.Config{
		Model:       model,
		Temperature: r.temperature,
		Prompt:      prompt,
		JSON:        asJSON,
	})
	if err != nil {
		return "", opts.Provider, model, err
	}
	return raw, opts.Provider, model, nil
}

func logFailure(flow string, opts Options, err error) {
	slog.Error("Flow backend call failed", "flow", flow, "provider", opts.Provider, "model", opts.Model, "err", err)
}
