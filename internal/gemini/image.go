package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
	"google.golang.org/genai"
)

// GenerateImage asks an image-capable Gemini model for a combined text+image reply
// and returns the first inline image part.
func (g *Gemini) GenerateImage(ctx context.Context, req providers.ImageRequest) (*providers.Image, error) {
	apiKey, err := g.key()
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	// The image models reject requests that do not ask for both modalities.
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	return imageFromResponse(resp)
}

func imageFromResponse(resp *genai.GenerateContentResponse) (*providers.Image, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, providers.ErrNoImage
	}

	var text strings.Builder
	var img *providers.Image
	for _, part := range resp.Candidates[0].Content.Parts {
		switch {
		case part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/"):
			if img == nil {
				img = &providers.Image{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}
			}
		case part.Text != "":
			text.WriteString(part.Text)
		}
	}

	if img == nil || len(img.Data) == 0 {
		slog.Warn("Gemini reply contained no image", "text", text.String())
		return nil, providers.ErrNoImage
	}

	img.Text = text.String()
	return img, nil
}
