package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hyprmon configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), config.Get(), config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func showConfig(out io.Writer, cfg *config.Config, path string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	lines := []struct{ section, key, value string }{
		{"hyprland", "config_path", cfg.Hyprland.ConfigPath},
		{"discovery", "backend", cfg.Discovery.Backend},
		{"discovery", "timeout", cfg.Discovery.Timeout.String()},
		{"editor", "step", fmt.Sprint(cfg.Editor.Step)},
		{"editor", "fine_step", fmt.Sprint(cfg.Editor.FineStep)},
		{"editor", "scale_step", fmt.Sprint(cfg.Editor.ScaleStep)},
		{"ssh", "address", cfg.SSH.Address},
		{"ssh", "host_key_path", cfg.SSH.HostKeyPath},
		{"ssh", "authorized_keys_path", cfg.SSH.AuthorizedKeysPath},
		{"logging", "log_level", cfg.Logging.LogLevel},
		{"logging", "file", cfg.Logging.File},
	}

	if _, err := fmt.Fprintf(w, "Config file: %s\n", path); err != nil {
		return err
	}
	section := ""
	for _, l := range lines {
		if l.section != section {
			section = l.section
			if _, err := fmt.Fprintf(w, "\n[%s]\n", section); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  %s\t%s\n", l.key, l.value); err != nil {
			return err
		}
	}
	return w.Flush()
}
