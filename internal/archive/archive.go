// Package archive reads and writes completed cycles as JSONL, YAML or Parquet files.
package archive

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/whiteboard/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSONL   = "jsonl"
	FormatYAML    = "yaml"
	FormatParquet = "parquet"
)

// Document is the YAML layout of an exported session.
type Document struct {
	SessionID  string               `yaml:"session_id,omitempty"`
	ExportedAt time.Time            `yaml:"exported_at"`
	Cycles     []models.CycleRecord `yaml:"cycles"`
}

// FormatFromPath detects the archive format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".parquet":
		return FormatParquet, nil
	case ".jsonl", ".json":
		return FormatJSONL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl, .yaml)", ext)
	}
}

// ContentType returns the HTTP content type for format.
func ContentType(format string) string {
	switch format {
	case FormatParquet:
		return "application/vnd.apache.parquet"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/x-ndjson"
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for i, c := range doc.Cycles {
			if err := enc.Encode(c); err != nil {
				return fmt.Errorf("failed to encode cycle %d: %w", i+1, err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case FormatParquet:
		return encodeParquet(w, doc.Cycles)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func encodeParquet(w io.Writer, cycles []models.CycleRecord) error {
	writer := parquet.NewGenericWriter[models.CycleRecord](w)
	if _, err := writer.Write(cycles); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Decode parses cycles from data in the given format.
func Decode(data []byte, format string) ([]models.CycleRecord, error) {
	switch format {
	case FormatJSONL:
		return decodeJSONL(data)
	case FormatYAML:
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return doc.Cycles, nil
	case FormatParquet:
		return decodeParquet(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func decodeJSONL(data []byte) ([]models.CycleRecord, error) {
	var cycles []models.CycleRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))

	// Cycles can carry inline images.
	const maxCapacity = 32 * 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var c models.CycleRecord
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		cycles = append(cycles, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading archive: %w", err)
	}

	slog.Debug("Finished reading JSONL archive", "cycles", len(cycles), "lines", lineNum)
	return cycles, nil
}

func decodeParquet(data []byte) ([]models.CycleRecord, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("Parquet archive opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[models.CycleRecord](pf)
	defer reader.Close()

	var cycles []models.CycleRecord
	rows := make([]models.CycleRecord, 64)
	for {
		n, err := reader.Read(rows)
		cycles = append(cycles, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return cycles, nil
}

// Save writes doc to path, choosing the format from the extension.
func Save(path string, doc Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	slog.Info("Archive saved", "path", path, "format", format, "cycles", len(doc.Cycles))
	return nil
}

// Load reads the cycles stored at path.
func Load(path string) ([]models.CycleRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	slog.Debug("Opened archive", "path", path, "format", format, "size_bytes", len(data))

	return Decode(data, format)
}
