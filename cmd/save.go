package cmd

import (
	"fmt"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/bnema/hyprmon/internal/ui"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var saveYes bool

// confirmOverwrite asks before replacing an existing file; swapped out in tests
var confirmOverwrite = func(path string) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Overwrite %s?", path)).
		Description("The current monitor directives in this file will be replaced.").
		Affirmative("Overwrite").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	return confirmed, err
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current layout to the Hyprland monitors file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		l, err := loadLayout(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		path := cfg.Hyprland.ConfigPath
		if hyprconf.Exists(path) && !saveYes {
			ok, err := confirmOverwrite(path)
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}
			if !ok {
				logger.Info("Save cancelled")
				return nil
			}
		}

		if err := hyprconf.SaveFile(path, l.Monitors); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatResult(true, fmt.Sprintf("Saved %d monitor(s) to %s", len(l.Monitors), path)))
		return nil
	},
}

func init() {
	saveCmd.Flags().BoolVarP(&saveYes, "yes", "y", false, "overwrite without asking")
	rootCmd.AddCommand(saveCmd)
}
