// Package stdio implements the single-connection MCP transport over
// stdin/stdout with newline-delimited JSON-RPC framing.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 client
//	Auth             : none (the parent process owns the pipes)
//	Sessions         : one, created through the shared sessions.Manager
//	Logging          : never to stdout; callers point the logger at stderr
//
// Example:
//
//	h := stdio.NewHandler(mgr, stdio.WithLogger(log))
//	if err := h.Serve(ctx); err != nil { log.Error("stdio.serve.fail", ...) }
package stdio
