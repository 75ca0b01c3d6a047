// Package mcp contains the Model Context Protocol data types spoken by the
// Zendesk server: initialize, ping, tools and resources. The package is free
// of transport logic; the HTTP and stdio transports import these types and
// implement their own framing, authentication and session handling.
//
// # Method Names
//
// JSON-RPC method and notification names are enumerated as Method constants
// (e.g. ToolsListMethod). Methods that the server does not implement are not
// listed here; the engine answers them with a method-not-found error.
//
// # Tool Results
//
// Every tool answers with a CallToolResult. Callers tell success from failure
// solely by IsError; the content is always text.
//
//	res := &mcp.CallToolResult{
//	    Content: []mcp.ContentBlock{mcp.Text("hello")},
//	}
package mcp
