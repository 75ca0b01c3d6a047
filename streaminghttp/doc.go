// Package streaminghttp implements the MCP streamable HTTP transport on top of
// a sessions.Manager, plus the operational endpoints served alongside it.
//
// Routes
//
//	POST   /mcp          one JSON-RPC message; response as JSON or a single SSE event
//	GET    /mcp          SSE stream held open until the session closes
//	DELETE /mcp          explicit session close
//	GET    /health       liveness and session count
//	GET    /metrics      Prometheus exposition
//	GET    /connections  active sessions
//	GET    /tools        tool catalog with input schemas
//
// The session is named by the Mcp-Session-Id header. A POST without one, or
// with an identifier the manager does not know, creates a session under that
// identifier (or a generated one) and echoes it back.
//
// # Authentication
//
// When a bearer token is configured every /mcp request must carry exactly
// "Authorization: Bearer <token>". The check runs before any session lookup.
// The operational endpoints are not authenticated.
//
// Example:
//
//	h, err := streaminghttp.New(mgr,
//	    streaminghttp.WithAuthToken(os.Getenv("MCP_AUTH_TOKEN")),
//	    streaminghttp.WithMetrics(m),
//	)
//	if err != nil { ... }
//	http.ListenAndServe(":3000", h)
package streaminghttp
