package sessions

import (
	"context"
	"errors"
	"sync"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/engine"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/jsonrpc"
)

// ErrTransportClosed is returned by Dispatch after the transport is closed.
var ErrTransportClosed = errors.New("sessions: transport closed")

// Transport carries JSON-RPC traffic for exactly one session.
type Transport interface {
	// Dispatch handles one inbound message. Notifications yield a nil response.
	Dispatch(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error)
	// Done is closed once the transport has been closed.
	Done() <-chan struct{}
	Close() error
}

// NewTransport returns an in-process Transport that dispatches to eng.
func NewTransport(eng *engine.Engine) Transport {
	return &engineTransport{eng: eng, done: make(chan struct{})}
}

type engineTransport struct {
	eng  *engine.Engine
	once sync.Once
	done chan struct{}
}

func (t *engineTransport) Dispatch(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	select {
	case <-t.done:
		return nil, ErrTransportClosed
	default:
	}
	return t.eng.Dispatch(ctx, req)
}

func (t *engineTransport) Done() <-chan struct{} { return t.done }

func (t *engineTransport) Close() error {
	t.once.Do(func() { close(t.done) })
	return nil
}
