package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/jsonrpc"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/logctx"
	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
)

// ToolCallFunc observes a completed tool invocation. isError reports the
// result flag; err is set when the call could not be dispatched at all.
type ToolCallFunc func(ctx context.Context, name string, isError bool, err error, dur time.Duration)

// Engine dispatches JSON-RPC traffic for exactly one server instance. Each
// session owns its own Engine; nothing in it is shared between sessions.
type Engine struct {
	srv mcpservice.ServerCapabilities
	log *slog.Logger

	classify   func(name string) string
	onToolCall ToolCallFunc

	mu              sync.RWMutex
	protocolVersion string
	clientInfo      mcp.ImplementationInfo
	initialized     bool
}

// New returns an Engine serving srv.
func New(srv mcpservice.ServerCapabilities, opts ...Option) *Engine {
	e := &Engine{
		srv: srv,
		log: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the Engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithToolClassifier attaches a label (e.g. risk level) to tool call logs.
func WithToolClassifier(fn func(name string) string) Option {
	return func(e *Engine) { e.classify = fn }
}

// WithToolCallObserver registers fn to be invoked after every tools/call.
func WithToolCallObserver(fn ToolCallFunc) Option {
	return func(e *Engine) { e.onToolCall = fn }
}

// ProtocolVersion returns the negotiated protocol version, or "" before
// initialize.
func (e *Engine) ProtocolVersion() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.protocolVersion
}

// ClientInfo returns the client implementation info sent with initialize.
func (e *Engine) ClientInfo() mcp.ImplementationInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clientInfo
}

// Initialized reports whether the client sent notifications/initialized.
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// Dispatch routes a request or notification. Notifications yield a nil
// response.
func (e *Engine) Dispatch(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{
		Method: req.Method,
		ID:     req.ID.String(),
		Type:   rpcType(req),
	})
	if req.IsNotification() {
		return nil, e.HandleNotification(ctx, req)
	}
	return e.HandleRequest(ctx, req)
}

func rpcType(req *jsonrpc.Request) string {
	if req.IsNotification() {
		return "notification"
	}
	return "request"
}

// HandleRequest answers a single JSON-RPC request.
func (e *Engine) HandleRequest(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	switch mcp.Method(req.Method) {
	case mcp.InitializeMethod:
		return e.handleInitialize(ctx, req)
	case mcp.PingMethod:
		return jsonrpc.NewResultResponse(req.ID, mcp.EmptyResult{})
	case mcp.ToolsListMethod:
		return e.handleToolsList(ctx, req)
	case mcp.ToolsCallMethod:
		return e.handleToolCall(ctx, req)
	case mcp.ResourcesListMethod:
		return e.handleResourcesList(ctx, req)
	case mcp.ResourcesTemplatesListMethod:
		return e.handleResourcesTemplatesList(ctx, req)
	case mcp.ResourcesReadMethod:
		return e.handleResourcesRead(ctx, req)
	}

	e.log.InfoContext(ctx, "engine.handle_request.unsupported", slog.String("method", req.Method))
	return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method), nil), nil
}

// HandleNotification processes a client notification. Notifications are
// accepted and never answered.
func (e *Engine) HandleNotification(ctx context.Context, note *jsonrpc.Request) error {
	switch mcp.Method(note.Method) {
	case mcp.InitializedNotificationMethod:
		e.mu.Lock()
		e.initialized = true
		e.mu.Unlock()
		e.log.InfoContext(ctx, "engine.session.initialized")
	case mcp.CancelledNotificationMethod:
		// In-flight upstream calls are not interrupted; their results are
		// discarded by the transport.
		e.log.InfoContext(ctx, "engine.handle_notification.cancelled")
	default:
		e.log.DebugContext(ctx, "engine.handle_notification.ignored", slog.String("method", note.Method))
	}
	return nil
}

func (e *Engine) handleInitialize(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.InitializeRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
		}
	}

	res, err := e.initialize(ctx, &params)
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	log.InfoContext(ctx, "engine.handle_request.ok",
		slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		slog.String("protocol_version", res.ProtocolVersion),
		slog.String("client", params.ClientInfo.Name),
	)
	return jsonrpc.NewResultResponse(req.ID, res)
}

func (e *Engine) initialize(ctx context.Context, req *mcp.InitializeRequest) (*mcp.InitializeResult, error) {
	version := mcp.LatestProtocolVersion
	if v, ok, err := e.srv.GetPreferredProtocolVersion(ctx); err != nil {
		return nil, fmt.Errorf("get preferred protocol version: %w", err)
	} else if ok && v != "" {
		version = v
	}
	if slices.Contains(mcp.SupportedProtocolVersions, req.ProtocolVersion) {
		version = req.ProtocolVersion
	}

	serverInfo, err := e.srv.GetServerInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("get server info: %w", err)
	}

	res := &mcp.InitializeResult{
		ProtocolVersion: version,
		ServerInfo:      serverInfo,
	}

	if instr, ok, err := e.srv.GetInstructions(ctx); err != nil {
		return nil, fmt.Errorf("get instructions: %w", err)
	} else if ok {
		res.Instructions = instr
	}

	if _, ok, err := e.srv.GetResourcesCapability(ctx); err != nil {
		return nil, fmt.Errorf("get resources capability: %w", err)
	} else if ok {
		res.Capabilities.Resources = &struct {
			ListChanged bool `json:"listChanged"`
			Subscribe   bool `json:"subscribe"`
		}{}
	}

	if _, ok, err := e.srv.GetToolsCapability(ctx); err != nil {
		return nil, fmt.Errorf("get tools capability: %w", err)
	} else if ok {
		res.Capabilities.Tools = &struct {
			ListChanged bool `json:"listChanged"`
		}{}
	}

	e.mu.Lock()
	e.protocolVersion = version
	e.clientInfo = req.ClientInfo
	e.mu.Unlock()

	return res, nil
}

func (e *Engine) handleToolsList(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.ListToolsRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
		}
	}

	cap, ok, err := e.srv.GetToolsCapability(ctx)
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}
	if !ok || cap == nil {
		log.InfoContext(ctx, "engine.handle_request.unsupported", slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "tools capability not supported", nil), nil
	}

	page, err := cap.ListTools(ctx, cursorPtr(params.Cursor))
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	result := &mcp.ListToolsResult{Tools: page.Items}
	if page.NextCursor != nil {
		result.NextCursor = *page.NextCursor
	}

	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.Int("tool_count", len(page.Items)))
	return jsonrpc.NewResultResponse(req.ID, result)
}

func (e *Engine) handleToolCall(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.CallToolRequestReceived
	if err := json.Unmarshal(req.Params, &params); err != nil {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
	}
	if params.Name == "" {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", "missing tool name"), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
	}

	td := &logctx.ToolCallData{ToolName: params.Name}
	if e.classify != nil {
		td.Risk = e.classify(params.Name)
	}
	ctx = logctx.WithToolCallData(ctx, td)

	cap, ok, err := e.srv.GetToolsCapability(ctx)
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}
	if !ok || cap == nil {
		log.InfoContext(ctx, "engine.handle_request.unsupported", slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "tools capability not supported", nil), nil
	}

	// Upstream calls run to completion even when the client goes away.
	res, err := cap.CallTool(context.WithoutCancel(ctx), &params)
	dur := time.Since(start)
	if e.onToolCall != nil {
		e.onToolCall(ctx, params.Name, res != nil && res.IsError, err, dur)
	}
	if err != nil {
		if errors.Is(err, mcpservice.ErrToolNotFound) {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()), slog.Int64("dur_ms", dur.Milliseconds()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, err.Error(), nil), nil
		}
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()), slog.Int64("dur_ms", dur.Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	if res.IsError {
		log.WarnContext(ctx, "engine.handle_request.tool_error", slog.Int64("dur_ms", dur.Milliseconds()))
	} else {
		log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", dur.Milliseconds()))
	}
	return jsonrpc.NewResultResponse(req.ID, res)
}

func (e *Engine) handleResourcesList(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.ListResourcesRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
		}
	}

	cap, resp := e.resourcesCapability(ctx, log, req)
	if resp != nil {
		return resp, nil
	}

	page, err := cap.ListResources(ctx, cursorPtr(params.Cursor))
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	result := &mcp.ListResourcesResult{Resources: page.Items}
	if page.NextCursor != nil {
		result.NextCursor = *page.NextCursor
	}
	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.Int("resource_count", len(page.Items)))
	return jsonrpc.NewResultResponse(req.ID, result)
}

func (e *Engine) handleResourcesTemplatesList(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.ListResourceTemplatesRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
		}
	}

	cap, resp := e.resourcesCapability(ctx, log, req)
	if resp != nil {
		return resp, nil
	}

	page, err := cap.ListResourceTemplates(ctx, cursorPtr(params.Cursor))
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	result := &mcp.ListResourceTemplatesResult{ResourceTemplates: page.Items}
	if page.NextCursor != nil {
		result.NextCursor = *page.NextCursor
	}
	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.Int("template_count", len(page.Items)))
	return jsonrpc.NewResultResponse(req.ID, result)
}

func (e *Engine) handleResourcesRead(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	var params mcp.ReadResourceRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
	}
	if params.URI == "" {
		log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", "missing uri"), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, "invalid params", nil), nil
	}

	cap, resp := e.resourcesCapability(ctx, log, req)
	if resp != nil {
		return resp, nil
	}

	contents, err := cap.ReadResource(ctx, params.URI)
	if err != nil {
		if errors.Is(err, mcpservice.ErrResourceNotFound) {
			log.InfoContext(ctx, "engine.handle_request.invalid", slog.String("err", err.Error()))
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidParams, err.Error(), map[string]string{"uri": params.URI}), nil
		}
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil), nil
	}

	log.InfoContext(ctx, "engine.handle_request.ok", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.Int("content_count", len(contents)))
	return jsonrpc.NewResultResponse(req.ID, &mcp.ReadResourceResult{Contents: contents})
}

// resourcesCapability resolves the resources capability or returns the error
// response to send instead.
func (e *Engine) resourcesCapability(ctx context.Context, log *slog.Logger, req *jsonrpc.Request) (mcpservice.ResourcesCapability, *jsonrpc.Response) {
	cap, ok, err := e.srv.GetResourcesCapability(ctx)
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail", slog.String("err", err.Error()))
		return nil, jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil)
	}
	if !ok || cap == nil {
		log.InfoContext(ctx, "engine.handle_request.unsupported")
		return nil, jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "resources capability not supported", nil)
	}
	return cap, nil
}

func cursorPtr(c string) *string {
	if c == "" {
		return nil
	}
	return &c
}
