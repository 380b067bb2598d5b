package display

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/hyprmon/internal/logger"
)

// hyprctlBackend asks Hyprland directly, which also reports disabled outputs
type hyprctlBackend struct {
	path string
	run  Runner
}

// hyprMonitor matches one entry of `hyprctl monitors all -j`
type hyprMonitor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	RefreshRate    float64  `json:"refreshRate"`
	X              int      `json:"x"`
	Y              int      `json:"y"`
	Scale          float64  `json:"scale"`
	Transform      int      `json:"transform"`
	Disabled       bool     `json:"disabled"`
	AvailableModes []string `json:"availableModes"`
}

func newHyprctlBackend(run Runner) (Backend, error) {
	path, err := LookPath("hyprctl")
	if err != nil {
		return nil, fmt.Errorf("hyprctl not found: %w", err)
	}
	return &hyprctlBackend{path: path, run: run}, nil
}

func (h *hyprctlBackend) Name() string {
	return "hyprctl"
}

func (h *hyprctlBackend) Monitors(ctx context.Context) ([]*Monitor, error) {
	output, err := h.run(ctx, sudoSessionEnv(), h.path, "monitors", "all", "-j")
	if err != nil {
		return nil, err
	}
	logger.Debugf("hyprctl monitors output: %s", string(output))
	return DecodeHyprctl(output), nil
}

// DecodeHyprctl converts hyprctl JSON into monitors. Undecodable output yields an empty list.
func DecodeHyprctl(data []byte) []*Monitor {
	var raw []hyprMonitor
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warnf("Failed to decode hyprctl output: %v", err)
		return []*Monitor{}
	}

	monitors := make([]*Monitor, 0, len(raw))
	for _, hm := range raw {
		if hm.Name == "" {
			continue
		}
		monitors = append(monitors, hm.toMonitor())
	}
	return monitors
}

func (hm hyprMonitor) toMonitor() *Monitor {
	m := &Monitor{
		Name:    hm.Name,
		Enabled: !hm.Disabled,
		Modes:   make([]Resolution, 0, len(hm.AvailableModes)),
	}
	if hm.Description != "" {
		desc := hm.Description
		m.Description = &desc
	}

	current, best := -1, 0.01
	for _, text := range hm.AvailableModes {
		mode, ok := parseHyprMode(text)
		if !ok {
			logger.Debugf("Skipping unparsable mode %q on %s", text, hm.Name)
			continue
		}
		// Hyprland lists the panel's native mode first
		mode.Preferred = len(m.Modes) == 0
		if diff := math.Abs(mode.Refresh - hm.RefreshRate); !hm.Disabled &&
			mode.Width == hm.Width && mode.Height == hm.Height && diff < best {
			current, best = len(m.Modes), diff
		}
		m.Modes = append(m.Modes, mode)
	}
	if current >= 0 {
		m.Modes[current].Current = true
	} else if !hm.Disabled && hm.Width > 0 && hm.Height > 0 {
		m.Modes = append(m.Modes, Resolution{
			Width:   hm.Width,
			Height:  hm.Height,
			Refresh: math.Round(hm.RefreshRate*1000) / 1000,
			Current: true,
		})
	}

	if !hm.Disabled {
		m.Position = &Position{X: hm.X, Y: hm.Y}
		if hm.Scale > 0 {
			scale := hm.Scale
			m.Scale = &scale
		}
	}
	tag := RotationFromHyprland(hm.Transform).Transform()
	m.Transform = &tag
	return m
}

// parseHyprMode reads "1920x1080@60.00Hz"
func parseHyprMode(text string) (Resolution, bool) {
	size, rate, ok := strings.Cut(strings.TrimSpace(text), "@")
	if !ok {
		return Resolution{}, false
	}
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return Resolution{}, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return Resolution{}, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return Resolution{}, false
	}
	refresh, err := strconv.ParseFloat(strings.TrimSuffix(rate, "Hz"), 64)
	if err != nil || refresh <= 0 {
		return Resolution{}, false
	}
	return Resolution{Width: w, Height: h, Refresh: refresh}, true
}
