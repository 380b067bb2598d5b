package cmd

import (
	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "hyprmon",
		Short: "hyprmon - Hyprland monitor layout editor",
		Long: `hyprmon discovers the outputs of a running Wayland compositor, lets you
arrange them in a terminal editor and writes the result as Hyprland
monitor directives.

Running hyprmon without a subcommand opens the editor.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runEdit,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records build information, typically injected with -ldflags
func SetVersion(version, commit, date string) {
	if version != "" {
		Version = version
		rootCmd.Version = version
	}
	Commit = commit
	Date = date
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/hyprmon/hyprmon.toml)")
	rootCmd.PersistentFlags().String("hypr-config", "", "Hyprland monitors file to read and write")
	rootCmd.PersistentFlags().String("backend", "", "discovery backend: auto, wlr-randr or hyprctl")

	// Bind flags to viper
	viper.BindPFlag("hyprland.config_path", rootCmd.PersistentFlags().Lookup("hypr-config"))
	viper.BindPFlag("discovery.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	config.SetConfigPath(configFile)
	if err := config.Init(); err != nil {
		return err
	}

	cfg := config.Get()
	if cfg.Logging.LogLevel != "" && !logger.SetLevel(cfg.Logging.LogLevel) {
		logger.Warnf("Unknown log level %q, keeping the current one", cfg.Logging.LogLevel)
	}
	logger.Debugf("Using config %s", config.GetConfigPath())
	return nil
}
