package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/config"
	"github.com/ggoodman/zendesk-mcp-server-go/stdio"
	"github.com/spf13/cobra"
)

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := newLogger(cfg)
			mgr := newManager(cfg, log, nil)
			go func() {
				if err := mgr.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("session.sweeper.fail", slog.String("err", err.Error()))
				}
			}()

			err = stdio.NewHandler(mgr, stdio.WithLogger(log)).Serve(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
