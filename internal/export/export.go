// Package export writes reading list snapshots to JSON or YAML files.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization used for an export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or yaml)", s)
	}
}

// fileExists checks if a regular file exists at the given path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// Write serializes data to filePath in the given format, respecting the
// overwrite flag. Returns true if the file was written, false if it was
// skipped because it already exists.
func Write(data interface{}, filePath string, format Format, overwrite bool) (bool, error) {
	if fileExists(filePath) && !overwrite {
		slog.Info("Export file already exists, skipping", "filename", filePath)
		return false, nil
	}

	var (
		encoded []byte
		err     error
	)
	switch format {
	case FormatJSON:
		encoded, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		encoded, err = yaml.Marshal(data)
	default:
		return false, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return false, fmt.Errorf("failed to marshal export data: %w", err)
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(filePath, encoded, 0o644); err != nil {
		return false, fmt.Errorf("failed to write export file: %w", err)
	}

	slog.Info("Wrote export file", "filename", filePath, "format", format)
	return true, nil
}
