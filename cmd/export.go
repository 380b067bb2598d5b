package cmd

import (
	"fmt"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/hyprconf"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the monitor directives for the current layout",
	Long: `Print one Hyprland monitor directive per discovered output, with the
saved directives applied, without touching any file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadLayout(cmd.Context(), config.Get())
		if err != nil {
			return err
		}
		out, err := hyprconf.Format(l.Monitors)
		if err != nil {
			return fmt.Errorf("cannot export layout: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
