package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/console"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the interactive console menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st, cleanup, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			ui := console.New(newEngine(cfg, st, log), st, os.Stdin, os.Stdout)
			ui.Run(ctx)
			return nil
		},
	}
}
