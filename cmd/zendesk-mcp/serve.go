package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/config"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/metrics"
	"github.com/ggoodman/zendesk-mcp-server-go/server"
	"github.com/ggoodman/zendesk-mcp-server-go/streaminghttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveHTTP(ctx, cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 3000, "listen port (overrides PORT)")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "listen host (overrides HOST)")
	return cmd
}

func serveHTTP(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	mgr := newManager(cfg, log, m)

	h, err := streaminghttp.New(mgr,
		streaminghttp.WithLogger(log),
		streaminghttp.WithAuthToken(cfg.AuthToken),
		streaminghttp.WithMetrics(m),
		streaminghttp.WithCatalog(server.Catalog()),
		streaminghttp.WithServerInfo(server.DefaultName, Version),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go func() {
		if err := mgr.Run(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("session.sweeper.fail", slog.String("err", err.Error()))
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	endpoint := fmt.Sprintf("http://%s/mcp", cfg.Addr())
	if cfg.Development() {
		endpoint = fmt.Sprintf("http://localhost:%d/mcp", cfg.Port)
	}
	log.Info("http.listen",
		slog.String("addr", cfg.Addr()),
		slog.String("endpoint", endpoint),
		slog.Bool("auth", cfg.AuthToken != ""),
		slog.String("environment", cfg.Environment))
	if cfg.AuthToken == "" {
		log.Warn("auth.disabled", slog.String("hint", "set MCP_AUTH_TOKEN to require a bearer token on /mcp"))
	}

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("http.shutdown.start")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	cancelSweep()
	mgr.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http.shutdown.fail", slog.String("err", err.Error()))
		return err
	}
	log.Info("http.shutdown.ok")
	return nil
}
