package replay

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveYAML writes results to dir as <model>-<timestamp>.yaml and returns the file path.
func SaveYAML(results *Results, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	model := strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(results.Model)
	if model == "" {
		model = "default"
	}
	timestamp := results.StartedAt.Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", model, timestamp))

	data, err := yaml.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	slog.Info("Replay results saved", "path", filename)
	return filename, nil
}
