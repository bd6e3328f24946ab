package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/whiteboard/internal/config"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/spf13/cobra"
)

func newFlowCmd(cfg *config.Config) *cobra.Command {
	var (
		provider  string
		model     string
		inputPath string
		data      string
		audioPath string
		imageOut  string
	)

	cmd := &cobra.Command{
		Use:       "flow <" + strings.Join(flows.Names, "|") + ">",
		Short:     "Run a single flow with a JSON input",
		ValidArgs: flows.Names,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  # Summarize a transcript
  whiteboard flow summarize --data '{"transcript": "We need to hire two engineers."}'

  # Identify themes with Ollama, reading the input from a file
  whiteboard flow themes --provider ollama --input themes.json

  # Simulated transcription of a recording
  whiteboard flow transcribe --audio take1.wav

  # Illustrate a whiteboard and save the image
  whiteboard flow image --data '{"prompt": "A timeline of the hiring plan"}' --image-out sketch.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			payload, err := flowPayload(cmd.InOrStdin(), inputPath, data, audioPath)
			if err != nil {
				return err
			}

			runner, _ := newRunner(cfg)
			resp, err := runner.Dispatch(cmd.Context(), name, backendOptions(cfg, provider, model), payload)
			if err != nil {
				return err
			}

			if resp.Image != nil && imageOut != "" {
				if err := writeDataURI(imageOut, resp.Image.DataURI); err != nil {
					return err
				}
				slog.Info("Image saved", "path", imageOut)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file, or - for stdin")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON input given inline")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Recording to transcribe")
	cmd.Flags().StringVar(&imageOut, "image-out", "", "Write a generated image to this file")
	cmd.MarkFlagsMutuallyExclusive("input", "data", "audio")

	return cmd
}

func flowPayload(stdin io.Reader, inputPath, data, audioPath string) ([]byte, error) {
	switch {
	case data != "":
		return []byte(data), nil
	case inputPath == "-":
		return io.ReadAll(stdin)
	case inputPath != "":
		payload, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return payload, nil
	case audioPath != "":
		recording, err := os.ReadFile(audioPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read recording: %w", err)
		}
		mime, _, _ := strings.Cut(http.DetectContentType(recording), ";")
		uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(recording)
		return json.Marshal(flows.TranscribeInput{AudioDataURI: uri})
	default:
		return nil, nil
	}
}

func writeDataURI(path, uri string) error {
	_, payload, found := strings.Cut(uri, ";base64,")
	if !found {
		return fmt.Errorf("image is not a base64 data URI")
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
