package display

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/hyprmon/internal/logger"
)

// wlrRandrBackend uses wlr-randr for display detection
type wlrRandrBackend struct {
	path string
	run  Runner
}

func newWlrRandrBackend(run Runner) (Backend, error) {
	path, err := LookPath("wlr-randr")
	if err != nil {
		return nil, fmt.Errorf("wlr-randr not found. Please install wlr-randr: https://gitlab.freedesktop.org/emersion/wlr-randr")
	}
	return &wlrRandrBackend{path: path, run: run}, nil
}

func (w *wlrRandrBackend) Name() string {
	return "wlr-randr"
}

func (w *wlrRandrBackend) Monitors(ctx context.Context) ([]*Monitor, error) {
	output, err := w.run(ctx, sudoSessionEnv(), w.path, "--json")
	if err != nil {
		return nil, err
	}
	logger.Debugf("wlr-randr --json output: %s", string(output))
	return DecodeWlrRandr(output), nil
}

// DecodeWlrRandr decodes wlr-randr --json output. Undecodable output yields
// an empty list; the problem is logged rather than returned.
func DecodeWlrRandr(data []byte) []*Monitor {
	var monitors []*Monitor
	if err := json.Unmarshal(data, &monitors); err != nil {
		logger.Warnf("Failed to decode wlr-randr output: %v", err)
		return []*Monitor{}
	}
	out := make([]*Monitor, 0, len(monitors))
	for _, m := range monitors {
		if m == nil || m.Name == "" {
			continue
		}
		if m.Modes == nil {
			m.Modes = []Resolution{}
		}
		out = append(out, m)
	}
	return out
}
