// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Hyprland  HyprlandConfig  `mapstructure:"hyprland"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Editor    EditorConfig    `mapstructure:"editor"`
	SSH       SSHConfig       `mapstructure:"ssh"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// HyprlandConfig points at the file holding the monitor directives
type HyprlandConfig struct {
	ConfigPath string `mapstructure:"config_path"`
}

// DiscoveryConfig selects how monitors are enumerated
type DiscoveryConfig struct {
	Backend string        `mapstructure:"backend"` // auto, wlr-randr, hyprctl
	Timeout time.Duration `mapstructure:"timeout"`
}

// EditorConfig tunes the interactive layout editor
type EditorConfig struct {
	Step      int     `mapstructure:"step"`       // logical pixels per move
	FineStep  int     `mapstructure:"fine_step"`  // with shift held
	ScaleStep float64 `mapstructure:"scale_step"` // per +/- press
}

// SSHConfig contains settings for `hyprmon serve`
type SSHConfig struct {
	Address            string `mapstructure:"address"`
	HostKeyPath        string `mapstructure:"host_key_path"`
	AuthorizedKeysPath string `mapstructure:"authorized_keys_path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
	File     string `mapstructure:"file"`      // Where logs go while the editor owns the terminal
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Hyprland: HyprlandConfig{
			ConfigPath: "~/.config/hypr/monitors.conf",
		},
		Discovery: DiscoveryConfig{
			Backend: "auto",
			Timeout: 5 * time.Second,
		},
		Editor: EditorConfig{
			Step:      10,
			FineStep:  1,
			ScaleStep: 0.25,
		},
		SSH: SSHConfig{
			Address:            ":23234",
			HostKeyPath:        "~/.config/hyprmon/ssh_host_ed25519",
			AuthorizedKeysPath: "~/.ssh/authorized_keys",
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
			File:     "~/.cache/hyprmon/hyprmon.log",
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("hyprmon")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		for _, dir := range configDirs() {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("HYPRMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("hyprland.config_path", DefaultConfig.Hyprland.ConfigPath)

	viper.SetDefault("discovery.backend", DefaultConfig.Discovery.Backend)
	viper.SetDefault("discovery.timeout", DefaultConfig.Discovery.Timeout)

	viper.SetDefault("editor.step", DefaultConfig.Editor.Step)
	viper.SetDefault("editor.fine_step", DefaultConfig.Editor.FineStep)
	viper.SetDefault("editor.scale_step", DefaultConfig.Editor.ScaleStep)

	viper.SetDefault("ssh.address", DefaultConfig.SSH.Address)
	viper.SetDefault("ssh.host_key_path", DefaultConfig.SSH.HostKeyPath)
	viper.SetDefault("ssh.authorized_keys_path", DefaultConfig.SSH.AuthorizedKeysPath)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
	viper.SetDefault("logging.file", DefaultConfig.Logging.File)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	return nil
}

// Validate rejects values the editor cannot work with
func (c *Config) Validate() error {
	switch strings.ToLower(c.Discovery.Backend) {
	case "auto", "wlr-randr", "hyprctl":
	default:
		return fmt.Errorf("invalid discovery.backend %q (must be auto, wlr-randr or hyprctl)", c.Discovery.Backend)
	}
	if c.Editor.Step <= 0 || c.Editor.FineStep <= 0 {
		return fmt.Errorf("editor steps must be positive")
	}
	if c.Editor.ScaleStep <= 0 {
		return fmt.Errorf("editor.scale_step must be positive")
	}
	if c.Hyprland.ConfigPath == "" {
		return fmt.Errorf("hyprland.config_path must not be empty")
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	// Check if config file is already loaded
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	dirs := configDirs()
	if len(dirs) == 0 {
		return "hyprmon.toml"
	}
	return filepath.Join(dirs[0], "hyprmon.toml")
}

// Save writes the effective configuration as TOML to GetConfigPath
func Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "hyprmon"))
	}
	// If running with sudo, try the real user's config
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		dirs = append(dirs, fmt.Sprintf("/home/%s/.config/hyprmon", sudoUser))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "hyprmon"))
	}
	return dirs
}
