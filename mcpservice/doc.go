// Package mcpservice provides the building blocks a server instance is made
// of: a ServerCapabilities value exposing server info, a tools capability and
// a resources capability. The engine discovers these at initialize time and
// translates JSON-RPC calls into method calls on them.
//
// Tools are declared with NewTool, which reflects an input schema from a Go
// struct, decodes arguments strictly and validates them before the handler
// runs:
//
//	type EchoArgs struct {
//	    Message string `json:"message" validate:"required"`
//	}
//	tools := mcpservice.NewToolsContainer(
//	    mcpservice.NewTool("echo", func(ctx context.Context, w mcpservice.ToolResponseWriter, r *mcpservice.ToolRequest[EchoArgs]) error {
//	        return w.AppendText("you said: " + r.Args().Message)
//	    }, mcpservice.WithToolDescription("Echo a message back to the caller")),
//	)
//
//	srv := mcpservice.NewServer(
//	    mcpservice.WithServerInfo(mcp.ImplementationInfo{Name: "example", Version: "1.0.0"}),
//	    mcpservice.WithToolsCapability(tools),
//	)
//
// A ServerCapabilities value is cheap to build. The Zendesk server builds a
// fresh one for every session so that no two sessions share capability state.
package mcpservice
