package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/hyprmon/internal/config"
	"github.com/bnema/hyprmon/internal/display"
	"github.com/bnema/hyprmon/internal/logger"
	"github.com/bnema/hyprmon/internal/network"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor over SSH",
	Long: `Run an SSH server that opens the layout editor for every connecting
terminal. Only keys listed in the authorized_keys file are accepted. Each
session edits its own copy of the discovered layout; saves go to the same
Hyprland monitors file one at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := network.NewSSHServer(network.SSHOptions{
			Address:            cfg.SSH.Address,
			HostKeyPath:        cfg.SSH.HostKeyPath,
			AuthorizedKeysPath: cfg.SSH.AuthorizedKeysPath,
			ConfigPath:         cfg.Hyprland.ConfigPath,
			Editor:             editorOptions(cfg),
			Source: func(ctx context.Context) ([]*display.Monitor, error) {
				l, err := loadLayout(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return l.Monitors, nil
			},
		})
		if err := server.Start(ctx); err != nil {
			return err
		}

		select {
		case err := <-server.Err():
			return err
		case <-ctx.Done():
		}
		logger.Info("Shutting down SSH server")
		server.Stop()
		return nil
	},
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (default from config, :23234)")
	viper.BindPFlag("ssh.address", serveCmd.Flags().Lookup("address"))
	rootCmd.AddCommand(serveCmd)
}
