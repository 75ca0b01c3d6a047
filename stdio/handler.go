package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/jsonrpc"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/logctx"
	"github.com/ggoodman/zendesk-mcp-server-go/sessions"
)

// maxLineBytes bounds one inbound message.
const maxLineBytes = 4 << 20

// Handler reads JSON-RPC messages from an io.Reader, one per line, and writes
// responses to an io.Writer. By default it uses os.Stdin and os.Stdout.
type Handler struct {
	mgr *sessions.Manager
	r   io.Reader
	w   io.Writer
	log *slog.Logger

	wmu sync.Mutex
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(mgr *sessions.Manager, opts ...Option) *Handler {
	h := &Handler{mgr: mgr, r: os.Stdin, w: os.Stdout, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.log = slog.New(logctx.Wrap(h.log.Handler()))
	return h
}

// Serve runs the read loop until EOF on the reader or ctx is canceled. The
// session is closed when Serve returns.
func (h *Handler) Serve(ctx context.Context) error {
	sess, _, err := h.mgr.Acquire(ctx, "", sessions.ClientInfo{RemoteAddr: "stdio"})
	if err != nil {
		return fmt.Errorf("stdio: create session: %w", err)
	}
	id := sess.ID
	defer func() { _ = h.mgr.Close(id) }()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(h.r)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)
		for sc.Scan() {
			line := bytes.Clone(sc.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	h.log.InfoContext(ctx, "stdio.serve.start", slog.String("session_id", id))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				h.log.ErrorContext(ctx, "stdio.read.fail", slog.String("err", err.Error()))
				return fmt.Errorf("stdio: read: %w", err)
			}
			h.log.InfoContext(ctx, "stdio.serve.eof")
			return nil
		case line := <-lines:
			sess = h.handleLine(ctx, sess, line)
		}
	}
}

// handleLine processes one message and returns the session to use for the
// next one. A session evicted by the sweep is replaced under the same id.
func (h *Handler) handleLine(ctx context.Context, sess *sessions.Session, line []byte) *sessions.Session {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return sess
	}

	var msg jsonrpc.AnyMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		code, text := jsonrpc.ErrorCodeParseError, "Parse error"
		if json.Valid(line) {
			code, text = jsonrpc.ErrorCodeInvalidRequest, "Invalid Request"
		}
		h.write(ctx, jsonrpc.NewErrorResponse(nil, code, text, err.Error()))
		h.log.WarnContext(ctx, "jsonrpc.message.invalid", slog.String("err", err.Error()))
		return sess
	}
	req := msg.AsRequest()
	if req == nil {
		return sess
	}

	ctx = logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: sess.ID})
	res, err := sess.Transport().Dispatch(ctx, req)
	if errors.Is(err, sessions.ErrTransportClosed) {
		next, _, aerr := h.mgr.Acquire(ctx, sess.ID, sessions.ClientInfo{RemoteAddr: "stdio"})
		if aerr != nil {
			h.log.ErrorContext(ctx, "session.acquire.fail", slog.String("err", aerr.Error()))
			if !req.IsNotification() {
				h.write(ctx, jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal server error", nil))
			}
			return sess
		}
		sess = next
		res, err = sess.Transport().Dispatch(ctx, req)
	}
	if err != nil {
		h.log.ErrorContext(ctx, "rpc.inbound.fail", slog.String("err", err.Error()))
		if req.IsNotification() {
			return sess
		}
		res = jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal server error", nil)
	}
	if res != nil {
		h.write(ctx, res)
	}
	return sess
}

func (h *Handler) write(ctx context.Context, res *jsonrpc.Response) {
	b, err := json.Marshal(res)
	if err != nil {
		h.log.ErrorContext(ctx, "rpc.response.marshal.fail", slog.String("err", err.Error()))
		return
	}
	b = append(b, '\n')
	h.wmu.Lock()
	defer h.wmu.Unlock()
	if _, err := h.w.Write(b); err != nil {
		h.log.ErrorContext(ctx, "stdio.write.fail", slog.String("err", err.Error()))
	}
}
