package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/whiteboard/internal/config"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "whiteboard",
		Short: "Voice-driven whiteboard for brainstorming sessions",
		Long: `Whiteboard turns a spoken brainstorming session into a summary, themes, an
evolving whiteboard, an illustration and new insights, using Gemini, OpenAI or Ollama.

Completed cycles can be exported and turned into a session report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			level := cfg.SlogLevel()
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (environment variables take precedence)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(cfg))
	cmd.AddCommand(newFlowCmd(cfg))
	cmd.AddCommand(newReportCmd(cfg))
	cmd.AddCommand(newReplayCmd(cfg))

	return cmd
}
