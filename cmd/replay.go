package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/whiteboard/internal/archive"
	"github.com/lehigh-university-libraries/whiteboard/internal/config"
	"github.com/lehigh-university-libraries/whiteboard/internal/replay"
	"github.com/spf13/cobra"
)

func newReplayCmd(cfg *config.Config) *cobra.Command {
	var (
		inputPath   string
		outputDir   string
		provider    string
		model       string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run exported cycles against a provider and score the results",
		Long: `Re-runs summarize, themes and insights for every exported cycle with a transcription
and compares the new summary and themes with the archived ones. Results are saved
as YAML for comparing providers and models.`,
		Example: `  # Compare a local model against a Gemini session export
  whiteboard replay --input session.parquet --provider ollama --model llama3.1:8b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := archive.Load(inputPath)
			if err != nil {
				return err
			}

			runner, _ := newRunner(cfg)
			results := replay.Run(cmd.Context(), runner, backendOptions(cfg, provider, model), cycles, concurrency)

			replay.PrintSummary(cmd.OutOrStdout(), results.Summary)

			path, err := replay.SaveYAML(results, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Exported cycles (.jsonl, .yaml or .parquet)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "replays", "Directory for YAML results")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "Cycles replayed in parallel")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
