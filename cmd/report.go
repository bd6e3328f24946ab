package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/whiteboard/internal/archive"
	"github.com/lehigh-university-libraries/whiteboard/internal/config"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/models"
	"github.com/spf13/cobra"
)

func newReportCmd(cfg *config.Config) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		provider   string
		model      string
		req        models.ReportRequest
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a session report from exported cycles",
		Long: `Generates a plain-text session report from cycles exported by the web interface
(.jsonl, .yaml or .parquet). The report date is filled in with today's date.`,
		Example: `  whiteboard report --input session.yaml --title "Q3 planning" --project Hiring`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := archive.Load(inputPath)
			if err != nil {
				return err
			}
			slog.Info("Loaded cycles", "path", inputPath, "cycles", len(cycles))

			opts := backendOptions(cfg, provider, model)
			req.Cycles = cycles
			req.Provider = opts.Provider
			req.Model = opts.Model

			runner, _ := newRunner(cfg)
			res := runner.GenerateReport(cmd.Context(), req)

			out := cmd.OutOrStdout()
			if outputPath != "" && res.OK() {
				if err := os.WriteFile(outputPath, []byte(res.Text+"\n"), 0644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				slog.Info("Report saved", "path", outputPath)
			} else {
				fmt.Fprintln(out, res.Text)
			}

			if res.Status == flows.StatusBackendFailure {
				return errors.New("report generation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Exported cycles (.jsonl, .yaml or .parquet)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Report title")
	cmd.Flags().StringVar(&req.Project, "project", "", "Project name")
	cmd.Flags().StringVar(&req.Contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&req.User, "user", "", "Session participant")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
