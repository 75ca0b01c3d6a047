package streaminghttp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/jsonrpc"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/logctx"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/metrics"
	"github.com/ggoodman/zendesk-mcp-server-go/sessions"
	"github.com/google/uuid"
)

var _ http.Handler = (*Handler)(nil)

// MaxBodyBytes bounds a POST /mcp body.
const MaxBodyBytes = 4 << 20

var (
	jsonMediaType         = contenttype.NewMediaType("application/json")
	eventStreamMediaType  = contenttype.NewMediaType("text/event-stream")
	eventStreamMediaTypes = []contenttype.MediaType{eventStreamMediaType}
)

const (
	mcpSessionIDHeader       = "Mcp-Session-Id"
	mcpProtocolVersionHeader = "Mcp-Protocol-Version"
	authorizationHeader      = "Authorization"
	wwwAuthenticateHeader    = "WWW-Authenticate"
)

// writeJSONError emits {"error":{"code":<status>,"message":"<reason>"}} for
// rejections made before any JSON-RPC exchange.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": status, "message": msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Option configures the Handler.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	authToken string
	metrics   *metrics.Metrics
	catalog   any
	name      string
	version   string
	keepAlive time.Duration
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithAuthToken requires this bearer token on /mcp. Empty disables auth.
func WithAuthToken(tok string) Option {
	return func(c *config) { c.authToken = tok }
}

// WithMetrics records request metrics and serves them at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithCatalog sets the document served at /tools.
func WithCatalog(v any) Option {
	return func(c *config) { c.catalog = v }
}

// WithServerInfo sets the name and version reported by /health.
func WithServerInfo(name, version string) Option {
	return func(c *config) { c.name, c.version = name, version }
}

// WithKeepAlive sets the SSE comment interval on GET streams. Zero disables.
func WithKeepAlive(d time.Duration) Option {
	return func(c *config) { c.keepAlive = d }
}

// Handler serves /mcp and the operational endpoints.
type Handler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	sessions  *sessions.Manager
	authToken string
	metrics   *metrics.Metrics
	catalog   any
	name      string
	version   string
	keepAlive time.Duration
}

// New returns a Handler dispatching through mgr.
func New(mgr *sessions.Manager, opts ...Option) (*Handler, error) {
	if mgr == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	cfg := &config{logger: slog.Default(), keepAlive: 25 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &Handler{
		log:       slog.New(logctx.Wrap(cfg.logger.Handler())),
		sessions:  mgr,
		authToken: cfg.authToken,
		metrics:   cfg.metrics,
		catalog:   cfg.catalog,
		name:      cfg.name,
		version:   cfg.version,
		keepAlive: cfg.keepAlive,
	}

	mcpRoute := func(fn http.HandlerFunc) http.Handler {
		var next http.Handler = h.requireAuth(fn)
		if h.metrics != nil {
			next = h.metrics.Middleware(next)
		}
		return next
	}

	mux := http.NewServeMux()
	mux.Handle("POST /mcp", mcpRoute(h.handlePostMCP))
	mux.Handle("GET /mcp", mcpRoute(h.handleGetMCP))
	mux.Handle("DELETE /mcp", mcpRoute(h.handleDeleteMCP))
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /connections", h.handleConnections)
	mux.HandleFunc("GET /tools", h.handleTools)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
	h.mux = mux
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r.WithContext(logctx.WithRequestData(r.Context(), &logctx.RequestData{
		RequestID:  uuid.NewString(),
		Method:     r.Method,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
		Path:       r.URL.Path,
	})))
}

// requireAuth rejects requests lacking the exact bearer token. It runs before
// any session lookup.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	if h.authToken == "" {
		return next
	}
	want := []byte("Bearer " + h.authToken)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(authorizationHeader)
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			challenge := "Bearer"
			if got != "" {
				challenge = `Bearer error="invalid_token"`
			}
			w.Header().Set(wwwAuthenticateHeader, challenge)
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized: valid bearer token required")
			h.log.InfoContext(r.Context(), "auth.fail", slog.Bool("header_present", got != ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientInfo(r *http.Request) sessions.ClientInfo {
	return sessions.ClientInfo{RemoteAddr: r.RemoteAddr, UserAgent: r.UserAgent()}
}

func withSession(ctx context.Context, s *sessions.Session) context.Context {
	data := &logctx.SessionData{SessionID: s.ID}
	if eng := s.Engine(); eng != nil {
		data.ProtocolVersion = eng.ProtocolVersion()
		data.ClientName = eng.ClientInfo().Name
	}
	return logctx.WithSessionData(ctx, data)
}

// handlePostMCP accepts one JSON-RPC message, creating the session when the
// identifier is absent or unknown.
func (h *Handler) handlePostMCP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	h.log.DebugContext(ctx, "http.post.start")

	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		writeJSONError(w, http.StatusUnsupportedMediaType, "content-type must be application/json")
		h.log.WarnContext(ctx, "content_type.unsupported")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		}
		h.log.WarnContext(ctx, "http.post.read.fail", slog.String("err", err.Error()))
		return
	}

	var msg jsonrpc.AnyMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		code, text := jsonrpc.ErrorCodeParseError, "Parse error"
		if len(body) > 0 && json.Valid(body) {
			code, text = jsonrpc.ErrorCodeInvalidRequest, "Invalid Request"
		}
		writeJSON(w, http.StatusBadRequest, jsonrpc.NewErrorResponse(nil, code, text, err.Error()))
		h.log.WarnContext(ctx, "jsonrpc.message.invalid", slog.String("err", err.Error()))
		return
	}

	sess, created, err := h.sessions.Acquire(ctx, r.Header.Get(mcpSessionIDHeader), clientInfo(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create session")
		h.log.ErrorContext(ctx, "session.acquire.fail", slog.String("err", err.Error()))
		return
	}
	ctx = withSession(ctx, sess)
	w.Header().Set(mcpSessionIDHeader, sess.ID)
	if created {
		h.log.InfoContext(ctx, "session.acquire.created")
	}

	req := msg.AsRequest()
	if req == nil {
		// Client responses: nothing here issues server-to-client requests.
		w.WriteHeader(http.StatusAccepted)
		h.log.DebugContext(ctx, "response.inbound.ignored")
		return
	}

	res, err := sess.Transport().Dispatch(ctx, req)
	if err != nil {
		if errors.Is(err, sessions.ErrTransportClosed) {
			writeJSONError(w, http.StatusNotFound, "session closed")
			h.log.InfoContext(ctx, "session.closed.race")
			return
		}
		h.log.ErrorContext(ctx, "rpc.inbound.fail", slog.String("err", err.Error()))
		res = jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal server error", nil)
	}
	if pv := sess.Engine().ProtocolVersion(); pv != "" {
		w.Header().Set(mcpProtocolVersionHeader, pv)
	}

	if res == nil {
		w.WriteHeader(http.StatusAccepted)
		h.log.DebugContext(ctx, "notification.inbound.ok", slog.Duration("dur", time.Since(start)))
		return
	}

	b, err := json.Marshal(res)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		h.log.ErrorContext(ctx, "rpc.response.marshal.fail", slog.String("err", err.Error()))
		return
	}

	if wantsEventStream(r) {
		f, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			h.log.ErrorContext(ctx, "flusher.missing")
			return
		}
		setEventStreamHeaders(w)
		w.WriteHeader(http.StatusOK)
		if err := writeSSEEvent(&lockedWriteFlusher{Writer: w, Flusher: f, ctx: r.Context()}, b); err != nil {
			h.log.WarnContext(ctx, "sse.write.fail", slog.String("err", err.Error()))
			return
		}
	} else {
		w.Header().Set("Content-Type", jsonMediaType.String())
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(b); err != nil {
			h.log.WarnContext(ctx, "http.write.fail", slog.String("err", err.Error()))
			return
		}
	}
	h.log.InfoContext(ctx, "http.post.ok", slog.Duration("dur", time.Since(start)))
}

// wantsEventStream reports whether the client explicitly accepts SSE.
func wantsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "" {
		return false
	}
	_, _, err := contenttype.GetAcceptableMediaType(r, eventStreamMediaTypes)
	return err == nil
}

func setEventStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", eventStreamMediaType.String())
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// handleGetMCP holds an SSE stream open for an existing session until the
// session closes or the client goes away. No server-initiated messages are
// produced, so the stream only carries keep-alive comments.
func (h *Handler) handleGetMCP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	if _, _, err := contenttype.GetAcceptableMediaType(r, eventStreamMediaTypes); err != nil {
		writeJSONError(w, http.StatusNotAcceptable, "accept must include text/event-stream")
		h.log.WarnContext(ctx, "http.get.unsupported_media_type")
		return
	}

	sessID := r.Header.Get(mcpSessionIDHeader)
	if sessID == "" {
		writeJSONError(w, http.StatusBadRequest, "missing mcp-session-id header")
		h.log.WarnContext(ctx, "session.id.missing")
		return
	}
	sess, err := h.sessions.Get(sessID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "session not found")
		h.log.InfoContext(ctx, "session.load.miss")
		return
	}
	ctx = withSession(ctx, sess)

	f, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		h.log.ErrorContext(ctx, "sse.flusher.missing")
		return
	}
	wf := &lockedWriteFlusher{Writer: w, Flusher: f, ctx: ctx}

	w.Header().Set(mcpSessionIDHeader, sess.ID)
	setEventStreamHeaders(w)
	w.WriteHeader(http.StatusOK)
	wf.Flush()
	h.log.InfoContext(ctx, "sse.stream.start")

	var tick <-chan time.Time
	if h.keepAlive > 0 {
		t := time.NewTicker(h.keepAlive)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			h.log.InfoContext(ctx, "sse.stream.client_gone", slog.Duration("dur", time.Since(start)))
			return
		case <-sess.Transport().Done():
			h.log.InfoContext(ctx, "sse.stream.end", slog.Duration("dur", time.Since(start)))
			return
		case <-tick:
			if _, err := io.WriteString(wf, ": keep-alive\n\n"); err != nil {
				return
			}
			wf.Flush()
		}
	}
}

// handleDeleteMCP closes the session named by the header.
func (h *Handler) handleDeleteMCP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessID := r.Header.Get(mcpSessionIDHeader)
	if sessID == "" {
		writeJSONError(w, http.StatusBadRequest, "missing mcp-session-id header")
		h.log.WarnContext(ctx, "delete.missing_session_id")
		return
	}
	ctx = logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: sessID})
	if err := h.sessions.Close(sessID); err != nil {
		writeJSONError(w, http.StatusNotFound, "session not found")
		h.log.InfoContext(ctx, "session.delete.miss")
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.log.InfoContext(ctx, "http.delete.ok")
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"server":          h.name,
		"version":         h.version,
		"active_sessions": h.sessions.Len(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleConnections(w http.ResponseWriter, r *http.Request) {
	snap := h.sessions.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"active_sessions": len(snap),
		"sessions":        snap,
	})
}

func (h *Handler) handleTools(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeJSONError(w, http.StatusNotFound, "tool catalog not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.catalog)
}

// lockedWriteFlusher serializes writes and flushes and refuses to write after
// ctx is canceled.
type lockedWriteFlusher struct {
	io.Writer
	http.Flusher
	mu  sync.Mutex
	ctx context.Context
}

func (l *lockedWriteFlusher) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx != nil && l.ctx.Err() != nil {
		return 0, l.ctx.Err()
	}
	return l.Writer.Write(p)
}

func (l *lockedWriteFlusher) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx != nil && l.ctx.Err() != nil {
		return
	}
	l.Flusher.Flush()
}

// writeSSEEvent writes one "message" event carrying payload and flushes.
func writeSSEEvent(wf *lockedWriteFlusher, payload []byte) error {
	if _, err := wf.Write([]byte("event: message\ndata: ")); err != nil {
		return fmt.Errorf("failed to write SSE data prefix: %w", err)
	}
	if _, err := wf.Write(payload); err != nil {
		return fmt.Errorf("failed to write SSE payload: %w", err)
	}
	if _, err := wf.Write([]byte("\n\n")); err != nil {
		return fmt.Errorf("failed to write SSE frame terminator: %w", err)
	}
	wf.Flush()
	return nil
}
