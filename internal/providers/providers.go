package providers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string

	// JSON asks the backend for a single JSON object instead of free text.
	JSON bool
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// ImageRequest is a single text-to-image call.
type ImageRequest struct {
	Model  string
	Prompt string
}

// Image is an image returned by a backend together with any text it produced alongside.
type Image struct {
	MIMEType string
	Data     []byte
	Text     string
}

// DataURI renders the image as an embeddable data URI.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ErrNoImage is returned by an ImageProvider whose backend answered without an image.
var ErrNoImage = errors.New("backend returned no image")

// ImageProvider generates images from a text prompt.
type ImageProvider interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)
}

// Registry resolves provider names to text providers and their default models.
type Registry struct {
	providers     map[string]Provider
	defaultModels map[string]string
	fallback      string
}

// NewRegistry returns an empty registry; fallback is used when a caller passes no provider name.
func NewRegistry(fallback string) *Registry {
	return &Registry{
		providers:     make(map[string]Provider),
		defaultModels: make(map[string]string),
		fallback:      fallback,
	}
}

// Register adds a provider under name with its default model.
func (r *Registry) Register(name string, p Provider, defaultModel string) {
	r.providers[name] = p
	r.defaultModels[name] = defaultModel
}

// Resolve returns the provider and model to use. Empty arguments fall back to defaults.
func (r *Registry) Resolve(name, model string) (Provider, string, error) {
	if name == "" {
		name = r.fallback
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, "", fmt.Errorf("unsupported provider: %s (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	if model == "" {
		model = r.defaultModels[name]
	}
	return p, model, nil
}

// Names lists registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
