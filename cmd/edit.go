package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/bnema/hyprmon/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Arrange monitors in the terminal editor",
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	l, err := loadLayout(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	restore, err := redirectLogs(cfg.Logging.File)
	if err != nil {
		logger.Warnf("Keeping logs on stderr: %v", err)
	} else {
		defer restore()
	}

	path := cfg.Hyprland.ConfigPath
	opts := editorOptions(cfg)
	opts.Save = func(monitors []*display.Monitor) error {
		return hyprconf.SaveFile(path, monitors)
	}
	opts.Load = func(monitors []*display.Monitor) (hyprconf.Report, error) {
		return hyprconf.LoadFile(path, monitors)
	}

	model := ui.NewEditorModel(l.Monitors, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if model.Dirty() {
		logger.Info("Quit with unsaved changes")
	}
	return nil
}

// redirectLogs sends log output to a file while the alt screen is active
func redirectLogs(path string) (func(), error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	expanded, err := hyprconf.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
