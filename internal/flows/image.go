package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
)

// Image status sentinels stored in CycleRecord.GeneratedImageDataURI when no image exists.
const (
	ImageSuccessMarker = "data:image"
	ImageErrorPrefix   = "Fejl ved billedgenerering:"
	ImageSkippedPrefix = "Sprunget over:"

	// ImageGenericErrorPrefix is the English error prefix some backends surface verbatim.
	ImageGenericErrorPrefix = "Error:"
	ImageInvalidPrefix      = "Ugyldig:"
)

type ImageInput struct {
	Prompt string `json:"prompt"`
}

type ImageOutput struct {
	DataURI string `json:"data_uri"`

	// Text is any commentary the backend returned next to the image.
	Text string `json:"text,omitempty"`
}

// GenerateImage illustrates a prompt. Unlike the text flows it reports failure as an error.
func (r *Runner) GenerateImage(ctx context.Context, in ImageInput) (ImageOutput, error) {
	if blank(in.Prompt) {
		return ImageOutput{}, ErrEmptyInput
	}
	if r.images == nil {
		return ImageOutput{}, fmt.Errorf("image generation is not configured")
	}

	img, err := r.images.GenerateImage(ctx, providers.ImageRequest{Model: r.imageModel, Prompt: in.Prompt})
	if err != nil {
		slog.Error("Image generation failed", "model", r.imageModel, "err", err)
		if errors.Is(err, providers.ErrNoImage) {
			return ImageOutput{}, ErrNoImage
		}
		return ImageOutput{}, fmt.Errorf("image generation failed: %w", err)
	}
	if img == nil || len(img.Data) == 0 || !strings.HasPrefix(img.MIMEType, "image/") {
		return ImageOutput{}, ErrNoImage
	}

	return ImageOutput{DataURI: img.DataURI(), Text: img.Text}, nil
}

// ImageErrorValue is what a session stores in place of an image when generation failed.
func ImageErrorValue(err error) string {
	if errors.Is(err, ErrNoImage) {
		return ImageErrorPrefix + " intet billede returneret"
	}
	return ImageErrorPrefix + " " + err.Error()
}

// ImageSkippedValue is what a session stores when generation was not attempted.
func ImageSkippedValue(reason string) string {
	return ImageSkippedPrefix + " " + reason
}
