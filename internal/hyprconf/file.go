package hyprconf

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/logger"
)

// ExpandPath replaces a leading "~" with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// SaveFile truncates path and writes one directive per monitor
func SaveFile(path string, monitors []*display.Monitor) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}

	// Render first so a formatting error leaves the existing file intact
	var buf bytes.Buffer
	if err := Write(&buf, monitors); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", expanded, err)
	}

	logger.Debugf("Wrote %d monitor directive(s) to %s", len(monitors), expanded)
	return nil
}

// LoadFile merges the directives in path into monitors.
// A missing file is not an error and changes nothing.
func LoadFile(path string, monitors []*display.Monitor) (Report, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return Report{}, err
	}

	content, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("No monitor config at %s", expanded)
			return Report{}, nil
		}
		return Report{}, fmt.Errorf("failed to read %s: %w", expanded, err)
	}

	report := Apply(bytes.NewReader(content), monitors)
	report.Log()
	return report, nil
}

// Exists reports whether the config file is already present
func Exists(path string) bool {
	expanded, err := ExpandPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(expanded)
	return err == nil
}
