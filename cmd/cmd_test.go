package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const wlrRandrOutput = `[
  {
    "name": "DP-1",
    "description": "Dell Inc. DELL U2720Q",
    "enabled": true,
    "modes": [
      {"width": 3840, "height": 2160, "refresh": 59.997002, "preferred": true, "current": true},
      {"width": 1920, "height": 1080, "refresh": 60.000000, "preferred": false, "current": false}
    ],
    "position": {"x": 0, "y": 0},
    "transform": "normal",
    "scale": 1.500000
  },
  {
    "name": "HDMI-A-1",
    "enabled": false,
    "modes": [
      {"width": 1920, "height": 1080, "refresh": 60.000000, "preferred": true, "current": false}
    ]
  }
]`

type env struct {
	dir       string
	hyprConf  string
	appConfig string
}

// setup fakes a wlr-randr install and points every path into a temp dir
func setup(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("SUDO_USER", "")

	origLook, origRun := display.LookPath, runner
	t.Cleanup(func() {
		display.LookPath = origLook
		runner = origRun
		config.Set(nil)
	})
	display.LookPath = func(file string) (string, error) {
		if file == "wlr-randr" {
			return "/usr/bin/wlr-randr", nil
		}
		return "", exec.ErrNotFound
	}
	runner = func(_ context.Context, _ []string, name string, _ ...string) ([]byte, error) {
		if filepath.Base(name) != "wlr-randr" {
			return nil, errors.New("unexpected command " + name)
		}
		return []byte(wlrRandrOutput), nil
	}

	return env{
		dir:       dir,
		hyprConf:  filepath.Join(dir, "hypr", "monitors.conf"),
		appConfig: filepath.Join(dir, "hyprmon.toml"),
	}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", e.appConfig, "--hypr-config", e.hyprConf, "--backend", "auto"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		e := setup(t)
		out, err := e.run(t, "list", "--format", "json")
		require.NoError(t, err)

		var got listing
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "wlr-randr", got.Backend)
		require.Len(t, got.Monitors, 2)
		assert.Equal(t, "DP-1", got.Monitors[0].Name)
		require.NotNil(t, got.Canvas)
		assert.Equal(t, [2]float64{-50, 2610}, got.Canvas.XBounds)
		assert.Empty(t, got.Error)
	})

	t.Run("yaml", func(t *testing.T) {
		e := setup(t)
		out, err := e.run(t, "list", "--format", "yaml")
		require.NoError(t, err)

		var got listing
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		require.Len(t, got.Monitors, 2)
		assert.False(t, got.Monitors[1].Enabled)
	})

	t.Run("text", func(t *testing.T) {
		e := setup(t)
		out, err := e.run(t, "list", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "DP-1")
		assert.Contains(t, out, "HDMI-A-1")
		assert.Contains(t, out, "3840x2160@59.997002")
		assert.Contains(t, out, "Canvas:")
	})

	t.Run("unknown format", func(t *testing.T) {
		e := setup(t)
		_, err := e.run(t, "list", "--format", "xml")
		assert.Error(t, err)
	})
}

func TestExport(t *testing.T) {
	t.Run("discovered layout", func(t *testing.T) {
		e := setup(t)
		out, err := e.run(t, "export")
		require.NoError(t, err)
		assert.Equal(t,
			"monitor = DP-1, 3840x2160@59.997002, 0x0, 1.5, transform, 0\n"+
				"monitor = HDMI-A-1, disabled\n",
			out)
	})

	t.Run("saved directives win", func(t *testing.T) {
		e := setup(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(e.hyprConf), 0755))
		content := "monitor = DP-1, 1920x1080@60, 100x0, 1, transform, 1\nmonitor = HDMI-A-1, preferred, 1920x0, 1\n"
		require.NoError(t, os.WriteFile(e.hyprConf, []byte(content), 0644))

		out, err := e.run(t, "export")
		require.NoError(t, err)
		assert.Equal(t,
			"monitor = DP-1, 1920x1080@60, 100x0, 1, transform, 1\n"+
				"monitor = HDMI-A-1, 1920x1080@60, 1920x0, 1, transform, 0\n",
			out)
	})
}

func TestSave(t *testing.T) {
	e := setup(t)

	out, err := e.run(t, "save", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 monitor(s)")

	written, err := os.ReadFile(e.hyprConf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "monitor = DP-1, 3840x2160@59.997002"))

	t.Run("declined overwrite keeps the file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(e.hyprConf, []byte("# mine\n"), 0644))

		orig := confirmOverwrite
		t.Cleanup(func() { confirmOverwrite = orig })
		asked := ""
		confirmOverwrite = func(path string) (bool, error) {
			asked = path
			return false, nil
		}

		_, err := e.run(t, "save", "--yes=false")
		require.NoError(t, err)
		assert.Equal(t, e.hyprConf, asked)

		kept, err := os.ReadFile(e.hyprConf)
		require.NoError(t, err)
		assert.Equal(t, "# mine\n", string(kept))
	})
}

func TestNoBackend(t *testing.T) {
	e := setup(t)
	display.LookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	_, err := e.run(t, "export")
	require.Error(t, err)
	assert.ErrorIs(t, err, display.ErrNoBackend)
}

func TestConfigShow(t *testing.T) {
	e := setup(t)
	out, err := e.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+e.appConfig)
	assert.Contains(t, out, "[discovery]")
	assert.Contains(t, out, e.hyprConf, "flag overrides hyprland.config_path")
	assert.Contains(t, out, "5s")
}

func TestVersion(t *testing.T) {
	e := setup(t)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hyprmon "+Version)
}
