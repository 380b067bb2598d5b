package display

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/hyprmon/internal/logger"
)

// ErrNoBackend is returned when none of the discovery tools can be found
var ErrNoBackend = errors.New("no display backend available")

// Backend enumerates the outputs known to the compositor
type Backend interface {
	Name() string
	Monitors(ctx context.Context) ([]*Monitor, error)
}

// Runner executes an external command and returns its stdout
type Runner func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			logger.Debugf("%s stderr: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return output, nil
}

// LookPath is swapped out in tests
var LookPath = exec.LookPath

// NewBackend builds the backend for a preference: "wlr-randr", "hyprctl" or "auto"
func NewBackend(preference string, run Runner) (Backend, error) {
	if run == nil {
		run = ExecRunner
	}

	var candidates []func(Runner) (Backend, error)
	switch strings.ToLower(preference) {
	case "wlr-randr", "wlrrandr":
		candidates = append(candidates, newWlrRandrBackend)
	case "hyprctl", "hyprland":
		candidates = append(candidates, newHyprctlBackend)
	case "", "auto":
		candidates = append(candidates, newWlrRandrBackend, newHyprctlBackend)
	default:
		return nil, fmt.Errorf("unknown display backend %q", preference)
	}

	for _, create := range candidates {
		backend, err := create(run)
		if err == nil {
			logger.Debugf("Using display backend: %s", backend.Name())
			return backend, nil
		}
		logger.Debugf("Display backend unavailable: %v", err)
	}
	return nil, ErrNoBackend
}

// Discover enumerates the monitors with the preferred backend
func Discover(ctx context.Context, preference string, run Runner) ([]*Monitor, string, error) {
	backend, err := NewBackend(preference, run)
	if err != nil {
		return nil, "", err
	}
	monitors, err := backend.Monitors(ctx)
	if err != nil {
		return nil, backend.Name(), err
	}
	logger.Debugf("Discovered %d monitor(s) via %s", len(monitors), backend.Name())
	return monitors, backend.Name(), nil
}

// sudoSessionEnv returns the environment needed to reach the invoking
// user's Wayland session when running under sudo
func sudoSessionEnv() []string {
	sudoUser := os.Getenv("SUDO_USER")
	if sudoUser == "" || os.Geteuid() != 0 {
		return nil
	}

	sudoUID := os.Getenv("SUDO_UID")
	if sudoUID == "" {
		// Try to get UID from the user
		if out, err := exec.Command("id", "-u", sudoUser).Output(); err == nil {
			sudoUID = strings.TrimSpace(string(out))
		}
	}

	runtimeDir := fmt.Sprintf("/run/user/%s", sudoUID)
	env := []string{"XDG_RUNTIME_DIR=" + runtimeDir}
	logger.Debugf("Setting XDG_RUNTIME_DIR=%s", runtimeDir)

	// Detect WAYLAND_DISPLAY by looking at the socket files
	waylandDisplay := ""
	if files, err := os.ReadDir(runtimeDir); err == nil {
		for _, file := range files {
			if strings.HasPrefix(file.Name(), "wayland-") && !strings.HasSuffix(file.Name(), ".lock") {
				waylandDisplay = file.Name()
				break
			}
		}
	} else {
		logger.Warnf("Could not read socket directory %s: %v", runtimeDir, err)
	}
	if waylandDisplay == "" {
		waylandDisplay = os.Getenv("WAYLAND_DISPLAY")
	}
	if waylandDisplay != "" {
		env = append(env, "WAYLAND_DISPLAY="+waylandDisplay)
	} else {
		logger.Warn("Could not detect WAYLAND_DISPLAY for sudo session")
	}
	if sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE"); sig != "" {
		env = append(env, "HYPRLAND_INSTANCE_SIGNATURE="+sig)
	}
	return env
}
