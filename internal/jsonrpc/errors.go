package jsonrpc

// ErrorCode is a JSON-RPC 2.0 error code.
type ErrorCode int

// Codes reserved by JSON-RPC 2.0.
const (
	ErrorCodeParseError     ErrorCode = -32700
	ErrorCodeInvalidRequest ErrorCode = -32600
	ErrorCodeMethodNotFound ErrorCode = -32601
	ErrorCodeInvalidParams  ErrorCode = -32602
	ErrorCodeInternalError  ErrorCode = -32603
)

// ErrorCodeSessionNotFound is returned when a request names a session the
// server no longer holds.
const ErrorCodeSessionNotFound ErrorCode = -32001
