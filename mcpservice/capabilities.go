package mcpservice

import (
	"context"
	"errors"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
)

var (
	// ErrToolNotFound is returned by CallTool when no tool has the requested name.
	ErrToolNotFound = errors.New("tool not found")
	// ErrResourceNotFound is returned by ReadResource for URIs that match
	// neither a concrete resource nor a template.
	ErrResourceNotFound = errors.New("resource not found")
)

// ServerCapabilities is everything the engine needs from one server instance.
// Implementations MUST be safe for concurrent use and honor ctx cancellation.
type ServerCapabilities interface {
	// GetServerInfo returns static implementation information surfaced in
	// initialize results.
	GetServerInfo(ctx context.Context) (mcp.ImplementationInfo, error)

	// GetPreferredProtocolVersion returns the server's preferred protocol
	// version. If ok is false the engine negotiates from the client's request.
	GetPreferredProtocolVersion(ctx context.Context) (version string, ok bool, err error)

	// GetInstructions returns optional instructions for the initialize result.
	GetInstructions(ctx context.Context) (instructions string, ok bool, err error)

	// GetResourcesCapability returns the resources capability. If ok is
	// false, resources are not advertised.
	GetResourcesCapability(ctx context.Context) (cap ResourcesCapability, ok bool, err error)

	// GetToolsCapability returns the tools capability. If ok is false, tools
	// are not advertised.
	GetToolsCapability(ctx context.Context) (cap ToolsCapability, ok bool, err error)
}

// ToolsCapability lists and invokes tools.
type ToolsCapability interface {
	// ListTools returns a page of tools. A nil cursor requests the first page.
	ListTools(ctx context.Context, cursor *string) (Page[mcp.Tool], error)

	// CallTool invokes a tool. Failures of the tool itself are reported in the
	// result with IsError set; a non-nil error means the call could not be
	// dispatched at all (unknown tool, malformed request).
	CallTool(ctx context.Context, req *mcp.CallToolRequestReceived) (*mcp.CallToolResult, error)
}

// ResourcesCapability lists and reads read-only resources.
type ResourcesCapability interface {
	// ListResources returns a page of concrete resources.
	ListResources(ctx context.Context, cursor *string) (Page[mcp.Resource], error)

	// ListResourceTemplates returns a page of resource templates.
	ListResourceTemplates(ctx context.Context, cursor *string) (Page[mcp.ResourceTemplate], error)

	// ReadResource returns the contents for a URI. Unknown URIs yield an
	// error wrapping ErrResourceNotFound.
	ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error)
}
