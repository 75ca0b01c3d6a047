package main

import (
	"log/slog"
	"os"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/config"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/engine"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/logging"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/metrics"
	"github.com/ggoodman/zendesk-mcp-server-go/risk"
	"github.com/ggoodman/zendesk-mcp-server-go/server"
	"github.com/ggoodman/zendesk-mcp-server-go/sessions"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zendesk-mcp",
		Short: "Zendesk MCP server",
		Long: `zendesk-mcp exposes the Zendesk Support, Help Center, Talk and Chat APIs
as Model Context Protocol tools, plus documentation resources.

Configuration is read from the environment:
  ZENDESK_SUBDOMAIN, ZENDESK_EMAIL, ZENDESK_API_TOKEN   Zendesk credentials
  MCP_AUTH_TOKEN                                        bearer token for /mcp (optional)
  PORT, HOST                                            listen address (3000, 0.0.0.0)
  ENVIRONMENT, LOCAL_MODE, LOG_LEVEL                    logging
  SESSION_TIMEOUT, SESSION_CLEANUP_INTERVAL             session lifecycle (30m, 5m)`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newStdioCmd(), newToolsCmd(), newVersionCmd())
	return root
}

func newLogger(cfg *config.Config) *slog.Logger {
	lvl, _ := cfg.Level()
	return logging.New(os.Stderr, logging.Options{Level: lvl, Pretty: cfg.Development()})
}

// newManager wires a session manager whose sessions each get a fresh server
// instance bound to one shared Zendesk client. m may be nil.
func newManager(cfg *config.Config, log *slog.Logger, m *metrics.Metrics) *sessions.Manager {
	client := zendesk.New(cfg.Credentials(), zendesk.WithLogger(log))
	if !client.Configured() {
		log.Warn("zendesk.credentials.missing", slog.String("hint", "tool calls will fail until ZENDESK_SUBDOMAIN, ZENDESK_EMAIL and ZENDESK_API_TOKEN are set"))
	}

	engOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithToolClassifier(func(name string) string { return string(risk.Classify(name)) }),
	}
	mgrOpts := []sessions.Option{
		sessions.WithTimeout(cfg.SessionTimeout),
		sessions.WithCleanupInterval(cfg.CleanupInterval),
		sessions.WithLogger(log),
	}
	if m != nil {
		engOpts = append(engOpts, engine.WithToolCallObserver(m.ToolCall))
		mgrOpts = append(mgrOpts, sessions.WithObserver(m))
	}

	build := func(id string) (*engine.Engine, sessions.Transport, error) {
		eng := engine.New(server.Build(client, server.WithVersion(Version)), engOpts...)
		return eng, sessions.NewTransport(eng), nil
	}
	return sessions.NewManager(build, mgrOpts...)
}
