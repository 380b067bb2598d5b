package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/bnema/hyprmon/internal/ui"
)

// runner executes the discovery tools; tests replace it with canned output
var runner display.Runner = display.ExecRunner

// layout is the discovered monitor set with the config file merged on top
type layout struct {
	Backend  string
	Monitors []*display.Monitor
	Report   hyprconf.Report
}

// loadLayout discovers the outputs and applies the saved directives to them
func loadLayout(ctx context.Context, cfg *config.Config) (*layout, error) {
	if cfg.Discovery.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Discovery.Timeout)
		defer cancel()
	}

	monitors, backend, err := display.Discover(ctx, cfg.Discovery.Backend, runner)
	if err != nil {
		return nil, fmt.Errorf("monitor discovery failed: %w", err)
	}
	logger.Debugf("Discovered %d monitor(s) with %s", len(monitors), backend)

	report, err := hyprconf.LoadFile(cfg.Hyprland.ConfigPath, monitors)
	if err != nil {
		return nil, err
	}

	return &layout{Backend: backend, Monitors: monitors, Report: report}, nil
}

// editorOptions maps the editor settings onto the model options
func editorOptions(cfg *config.Config) ui.EditorOptions {
	return ui.EditorOptions{
		Step:       cfg.Editor.Step,
		FineStep:   cfg.Editor.FineStep,
		ScaleStep:  cfg.Editor.ScaleStep,
		ConfigPath: cfg.Hyprland.ConfigPath,
	}
}
