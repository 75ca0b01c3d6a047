package mcpservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// ToolHandler is the function signature used to handle a tool invocation.
type ToolHandler func(ctx context.Context, req *mcp.CallToolRequestReceived) (*mcp.CallToolResult, error)

// StaticTool pairs an MCP tool descriptor with its handler. Schema holds the
// full reflected JSON schema of the input type; Descriptor.InputSchema is the
// simplified projection sent over the wire.
type StaticTool struct {
	Descriptor mcp.Tool
	Schema     *jsonschema.Schema
	Handler    ToolHandler
}

// ToolRequest carries the decoded and validated arguments of one call.
type ToolRequest[A any] struct {
	args A
}

func (r *ToolRequest[A]) Args() A { return r.args }

// ToolOption configures NewTool behavior.
type ToolOption func(*toolConfig)

type toolConfig struct {
	description string
	annotations *mcp.ToolAnnotations
}

// WithToolDescription sets the tool description used in listings.
func WithToolDescription(desc string) ToolOption {
	return func(c *toolConfig) { c.description = desc }
}

// WithToolAnnotations attaches behavioral hints to the descriptor.
func WithToolAnnotations(a mcp.ToolAnnotations) ToolOption {
	return func(c *toolConfig) { c.annotations = &a }
}

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var argsValidator = newValidator()

// NewTool constructs a StaticTool from a typed args struct A. It:
//   - reflects a JSON Schema from A using invopop/jsonschema
//   - down-converts it to the simplified mcp.ToolInputSchema
//   - wraps the handler with strict JSON decoding (unknown fields are
//     rejected) and `validate` tag checks
//
// Invalid input yields an error-flagged result and the handler never runs.
// An error returned by fn is likewise converted into an error-flagged result
// so that one failing tool never fails the JSON-RPC call.
func NewTool[A any](name string, fn func(ctx context.Context, w ToolResponseWriter, r *ToolRequest[A]) error, opts ...ToolOption) StaticTool {
	var cfg toolConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	schema := reflectSchema[A]()
	desc := mcp.Tool{
		Name:        name,
		Description: cfg.description,
		InputSchema: toMCPInputSchema(schema),
		Annotations: cfg.annotations,
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequestReceived) (*mcp.CallToolResult, error) {
		var a A
		if len(req.Arguments) > 0 && !bytes.Equal(bytes.TrimSpace(req.Arguments), []byte("null")) {
			dec := json.NewDecoder(bytes.NewReader(req.Arguments))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&a); err != nil {
				return Errorf("invalid arguments: %v", err), nil
			}
		}
		if err := validateArgs(a); err != nil {
			return Errorf("invalid arguments: %v", err), nil
		}
		var b resultBuilder
		if err := fn(ctx, &b, &ToolRequest[A]{args: a}); err != nil {
			return Errorf("Error: %v", err), nil
		}
		return b.result(), nil
	}

	return StaticTool{Descriptor: desc, Schema: schema, Handler: handler}
}

func validateArgs(args any) error {
	if reflect.ValueOf(args).Kind() != reflect.Struct {
		return nil
	}
	if err := argsValidator.Struct(args); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator.ValidationErrors to user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func formatSingleValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

func reflectSchema[A any]() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true, // inline defs
		ExpandedStruct: true, // put struct at root
	}
	return r.Reflect(new(A))
}

// toMCPInputSchema converts a reflected schema to the simplified
// mcp.ToolInputSchema. Non-object schemas become an empty object.
func toMCPInputSchema(s *jsonschema.Schema) mcp.ToolInputSchema {
	out := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]mcp.SchemaProperty{},
	}
	if s == nil || s.Type != "object" {
		return out
	}
	if s.Properties != nil {
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			out.Properties[el.Key] = toMCPProperty(el.Value)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	return out
}

// toMCPProperty recursively maps a jsonschema.Schema to the simplified MCP SchemaProperty.
func toMCPProperty(s *jsonschema.Schema) mcp.SchemaProperty {
	if s == nil {
		return mcp.SchemaProperty{}
	}
	p := mcp.SchemaProperty{
		Type:        s.Type,
		Description: s.Description,
	}
	if len(s.Enum) > 0 {
		p.Enum = s.Enum
	}
	if s.Type == "array" && s.Items != nil {
		item := toMCPProperty(s.Items)
		p.Items = &item
	}
	if s.Type == "object" && s.Properties != nil {
		m := make(map[string]mcp.SchemaProperty, s.Properties.Len())
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			m[el.Key] = toMCPProperty(el.Value)
		}
		p.Properties = m
	}
	return p
}

// ToolsContainer owns a threadsafe set of tool descriptors and handlers and
// implements ToolsCapability over them.
type ToolsContainer struct {
	mu       sync.RWMutex
	tools    []StaticTool
	handlers map[string]ToolHandler

	pageSize int // pagination size for ListTools (0 = everything on one page)
}

// NewToolsContainer constructs a new ToolsContainer with the given tool definitions.
// On duplicate names the first definition wins.
func NewToolsContainer(defs ...StaticTool) *ToolsContainer {
	tc := &ToolsContainer{handlers: make(map[string]ToolHandler, len(defs))}
	for _, d := range defs {
		tc.Add(d)
	}
	return tc
}

// SetPageSize sets the pagination size used by ListTools. A non-positive
// value disables pagination.
func (tc *ToolsContainer) SetPageSize(n int) {
	tc.mu.Lock()
	tc.pageSize = max(n, 0)
	tc.mu.Unlock()
}

// Add registers a new tool if it doesn't duplicate an existing name.
// Returns true if added.
func (tc *ToolsContainer) Add(def StaticTool) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	name := def.Descriptor.Name
	if _, exists := tc.handlers[name]; exists || name == "" {
		return false
	}
	tc.tools = append(tc.tools, def)
	tc.handlers[name] = def.Handler
	return true
}

// ListTools implements ToolsCapability.
func (tc *ToolsContainer) ListTools(ctx context.Context, cursor *string) (Page[mcp.Tool], error) {
	tc.mu.RLock()
	all := make([]mcp.Tool, len(tc.tools))
	for i, t := range tc.tools {
		all[i] = t.Descriptor
	}
	pageSize := tc.pageSize
	tc.mu.RUnlock()
	return paginate(all, cursor, pageSize), nil
}

// CallTool implements ToolsCapability.
func (tc *ToolsContainer) CallTool(ctx context.Context, req *mcp.CallToolRequestReceived) (*mcp.CallToolResult, error) {
	if req == nil || req.Name == "" {
		return nil, fmt.Errorf("invalid tool request: missing name")
	}
	tc.mu.RLock()
	h := tc.handlers[req.Name]
	tc.mu.RUnlock()
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, req.Name)
	}
	return h(ctx, req)
}

// Errorf returns an error CallToolResult with a single text block and IsError=true.
func Errorf(format string, a ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.ContentBlock{mcp.Text(fmt.Sprintf(format, a...))}, IsError: true}
}
