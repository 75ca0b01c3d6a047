// Package server assembles one Zendesk MCP server instance: the full tool
// table plus the documentation and risk resources, on a fresh capability set.
package server

import (
	"context"
	"fmt"

	"github.com/ggoodman/zendesk-mcp-server-go/docs"
	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/risk"
	"github.com/ggoodman/zendesk-mcp-server-go/tools"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
	"github.com/invopop/jsonschema"
)

const (
	DefaultName    = "zendesk-api"
	DefaultVersion = "1.0.0"

	DocsTemplate = "zendesk://docs/{section}"
	RiskTemplate = "zendesk://risk/{category}"
)

const instructions = "Tools for the Zendesk Support, Help Center, Talk and Chat APIs. " +
	"Every tool description starts with its risk level. Read zendesk://docs/overview for a guide " +
	"and zendesk://risk/all before using MODERATE_RISK or HIGH_RISK tools."

type config struct {
	name     string
	version  string
	pageSize int
}

// Option configures Build.
type Option func(*config)

// WithName overrides the advertised server name.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithVersion overrides the advertised server version.
func WithVersion(v string) Option {
	return func(c *config) { c.version = v }
}

// WithPageSize enables cursor pagination of tool and resource listings.
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// Build returns a new server instance bound to client. Nothing is shared
// between the values returned by separate calls.
func Build(client *zendesk.Client, opts ...Option) mcpservice.ServerCapabilities {
	cfg := config{name: DefaultName, version: DefaultVersion}
	for _, o := range opts {
		o(&cfg)
	}

	tc := mcpservice.NewToolsContainer(tools.All(client)...)
	rc := newResources()
	if cfg.pageSize > 0 {
		tc.SetPageSize(cfg.pageSize)
		rc.SetPageSize(cfg.pageSize)
	}

	return mcpservice.NewServer(
		mcpservice.WithServerInfo(mcp.ImplementationInfo{Name: cfg.name, Version: cfg.version}),
		mcpservice.WithInstructions(instructions),
		mcpservice.WithToolsCapability(tc),
		mcpservice.WithResourcesCapability(rc),
	)
}

func newResources() *mcpservice.ResourcesContainer {
	rc := mcpservice.NewResourcesContainer()
	names := tools.Names()

	rc.AddTemplate(mcp.ResourceTemplate{
		URITemplate: DocsTemplate,
		Name:        "zendesk-docs",
		Description: "Zendesk API documentation by section",
		MimeType:    "text/markdown",
	}, func(_ context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{{URI: uri, MimeType: "text/markdown", Text: docs.Section(vars["section"])}}, nil
	})
	rc.AddTemplate(mcp.ResourceTemplate{
		URITemplate: RiskTemplate,
		Name:        "zendesk-risk",
		Description: "Tools grouped by risk level",
		MimeType:    "text/markdown",
	}, func(_ context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{{URI: uri, MimeType: "text/markdown", Text: docs.RiskCategory(vars["category"], names)}}, nil
	})

	for _, s := range docs.SectionNames {
		rc.AddResource(mcp.Resource{
			URI:         "zendesk://docs/" + s,
			Name:        "docs-" + s,
			Description: fmt.Sprintf("Zendesk API documentation: %s", s),
			MimeType:    "text/markdown",
		})
	}
	for _, c := range docs.Categories {
		rc.AddResource(mcp.Resource{
			URI:         "zendesk://risk/" + c,
			Name:        "risk-" + c,
			Description: fmt.Sprintf("Tools in risk category %s", c),
			MimeType:    "text/markdown",
		})
	}
	return rc
}

// ToolNames returns every tool name in registration order.
func ToolNames() []string {
	return tools.Names()
}

// CatalogEntry describes one tool for the /tools listing.
type CatalogEntry struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	RiskLevel   risk.Level         `json:"risk_level"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Catalog returns the tool table with JSON-schema parameter shapes.
func Catalog() []CatalogEntry {
	all := tools.All(nil)
	out := make([]CatalogEntry, len(all))
	for i, t := range all {
		out[i] = CatalogEntry{
			Name:        t.Descriptor.Name,
			Description: t.Descriptor.Description,
			RiskLevel:   risk.Classify(t.Descriptor.Name),
			InputSchema: t.Schema,
		}
	}
	return out
}
