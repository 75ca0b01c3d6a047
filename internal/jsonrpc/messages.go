// Package jsonrpc holds the JSON-RPC 2.0 envelopes shared by the HTTP and
// stdio transports.
package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is the only accepted value of the "jsonrpc" member.
const ProtocolVersion = "2.0"

var (
	// ErrVersion is returned when a message does not declare version 2.0.
	ErrVersion = errors.New("jsonrpc: unsupported version")
	// ErrShape is returned when a message is neither a valid request nor a
	// valid response.
	ErrShape = errors.New("jsonrpc: malformed message")
)

// Kind classifies a decoded message.
type Kind uint8

const (
	KindRequest Kind = iota + 1
	KindNotification
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	}
	return "unknown"
}

// AnyMessage is a single inbound message before it is known to be a request,
// notification or response. Decoding validates the envelope.
type AnyMessage struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Method         string          `json:"method,omitempty"`
	Params         json.RawMessage `json:"params,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
	ID             *RequestID      `json:"id,omitempty"`
}

func (m *AnyMessage) UnmarshalJSON(data []byte) error {
	type plain AnyMessage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("jsonrpc: decode: %w", err)
	}
	if p.JSONRPCVersion != ProtocolVersion {
		return fmt.Errorf("%w: %q", ErrVersion, p.JSONRPCVersion)
	}
	hasResult, hasError := len(p.Result) > 0, p.Error != nil
	switch {
	case p.Method != "" && (hasResult || hasError):
		return fmt.Errorf("%w: request with result or error", ErrShape)
	case p.Method == "" && hasResult == hasError:
		return fmt.Errorf("%w: response needs exactly one of result or error", ErrShape)
	}
	*m = AnyMessage(p)
	return nil
}

// Kind reports what the message is. Only meaningful after a successful decode.
func (m *AnyMessage) Kind() Kind {
	switch {
	case m.Method == "":
		return KindResponse
	case m.ID.IsNil():
		return KindNotification
	default:
		return KindRequest
	}
}

// AsRequest returns the request or notification view of m, or nil when m is a
// response.
func (m *AnyMessage) AsRequest() *Request {
	if m.Kind() == KindResponse {
		return nil
	}
	return &Request{JSONRPCVersion: m.JSONRPCVersion, Method: m.Method, Params: m.Params, ID: m.ID}
}

// Request is a call or, when ID is nil, a notification.
type Request struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Method         string          `json:"method"`
	Params         json.RawMessage `json:"params,omitempty"`
	ID             *RequestID      `json:"id,omitempty"`
}

// IsNotification reports whether no response is expected.
func (r *Request) IsNotification() bool { return r.ID.IsNil() }

// Response answers a Request. ID is always encoded, as null when the request
// could not be identified.
type Response struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
	ID             *RequestID      `json:"id"`
}

// NewResultResponse encodes result as the response payload.
func NewResultResponse(id *RequestID, result any) (*Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: encode result: %w", err)
	}
	return &Response{JSONRPCVersion: ProtocolVersion, Result: raw, ID: id}, nil
}

func NewErrorResponse(id *RequestID, code ErrorCode, message string, data any) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Error:          &Error{Code: code, Message: message, Data: data},
		ID:             id,
	}
}

// Error is the error member of a Response.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: %d %s", e.Code, e.Message)
}
