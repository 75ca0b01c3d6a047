package mcpservice

import (
	"context"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
)

// ServerOption configures a concrete ServerCapabilities implementation.
type ServerOption func(*server)

type server struct {
	info            mcp.ImplementationInfo
	protocolVersion string
	instructions    *string

	resources ResourcesCapability
	tools     ToolsCapability
}

// NewServer builds a ServerCapabilities using functional options.
func NewServer(opts ...ServerOption) ServerCapabilities {
	s := &server{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithServerInfo sets the server info value.
func WithServerInfo(info mcp.ImplementationInfo) ServerOption {
	return func(s *server) { s.info = info }
}

// WithPreferredProtocolVersion sets the preferred protocol version string.
func WithPreferredProtocolVersion(version string) ServerOption {
	return func(s *server) { s.protocolVersion = version }
}

// WithInstructions sets human-readable instructions returned during initialize.
func WithInstructions(instr string) ServerOption {
	return func(s *server) { s.instructions = &instr }
}

// WithResourcesCapability wires a ResourcesCapability.
func WithResourcesCapability(cap ResourcesCapability) ServerOption {
	return func(s *server) { s.resources = cap }
}

// WithToolsCapability wires a ToolsCapability.
func WithToolsCapability(cap ToolsCapability) ServerOption {
	return func(s *server) { s.tools = cap }
}

func (s *server) GetServerInfo(ctx context.Context) (mcp.ImplementationInfo, error) {
	return s.info, nil
}

func (s *server) GetPreferredProtocolVersion(ctx context.Context) (string, bool, error) {
	if s.protocolVersion != "" {
		return s.protocolVersion, true, nil
	}
	return "", false, nil
}

func (s *server) GetInstructions(ctx context.Context) (string, bool, error) {
	if s.instructions != nil {
		return *s.instructions, true, nil
	}
	return "", false, nil
}

func (s *server) GetResourcesCapability(ctx context.Context) (ResourcesCapability, bool, error) {
	if s.resources != nil {
		return s.resources, true, nil
	}
	return nil, false, nil
}

func (s *server) GetToolsCapability(ctx context.Context) (ToolsCapability, bool, error) {
	if s.tools != nil {
		return s.tools, true, nil
	}
	return nil, false, nil
}
