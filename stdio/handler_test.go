package stdio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ggoodman/zendesk-mcp-server-go/internal/engine"
	"github.com/ggoodman/zendesk-mcp-server-go/internal/jsonrpc"
	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/ggoodman/zendesk-mcp-server-go/server"
	"github.com/ggoodman/zendesk-mcp-server-go/sessions"
	"github.com/jonboulle/clockwork"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newManager(opts ...sessions.Option) *sessions.Manager {
	opts = append([]sessions.Option{sessions.WithLogger(discard)}, opts...)
	return sessions.NewManager(func(id string) (*engine.Engine, sessions.Transport, error) {
		eng := engine.New(server.Build(nil), engine.WithLogger(discard))
		return eng, sessions.NewTransport(eng), nil
	}, opts...)
}

// run feeds input to a handler and returns the decoded output lines.
func run(t *testing.T, mgr *sessions.Manager, input string) []jsonrpc.Response {
	t.Helper()
	var out bytes.Buffer
	h := NewHandler(mgr, WithIO(strings.NewReader(input), &out), WithLogger(discard))
	if err := h.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	var res []jsonrpc.Response
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r jsonrpc.Response
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode output: %v", err)
		}
		res = append(res, r)
	}
	return res
}

func line(v any) string {
	b, _ := json.Marshal(v)
	return string(b) + "\n"
}

func TestServeHandlesRequestsInOrder(t *testing.T) {
	mgr := newManager()
	input := line(map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": mcp.InitializeRequest{
		ProtocolVersion: mcp.LatestProtocolVersion,
		ClientInfo:      mcp.ImplementationInfo{Name: "cli", Version: "1"},
	}}) +
		line(map[string]any{"jsonrpc": "2.0", "method": "notifications/initialized"}) +
		"\n" +
		line(map[string]any{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}) +
		line(map[string]any{"jsonrpc": "2.0", "id": 3, "method": "resources/read", "params": map[string]any{"uri": "zendesk://docs/tickets"}})

	res := run(t, mgr, input)
	if len(res) != 3 {
		t.Fatalf("want 3 responses got %d", len(res))
	}
	for i, r := range res {
		if r.Error != nil {
			t.Fatalf("response %d: %v", i, r.Error)
		}
		if got := r.ID.String(); got != []string{"1", "2", "3"}[i] {
			t.Fatalf("response %d has id %s", i, got)
		}
	}
	var tools mcp.ListToolsResult
	if err := json.Unmarshal(res[1].Result, &tools); err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != len(server.ToolNames()) {
		t.Fatalf("listed %d tools", len(tools.Tools))
	}
}

func TestServeReportsParseErrors(t *testing.T) {
	res := run(t, newManager(), "{not json\n"+line(map[string]any{"jsonrpc": "2.0", "id": 9, "method": "ping"}))
	if len(res) != 2 {
		t.Fatalf("want 2 responses got %d", len(res))
	}
	if res[0].Error == nil || res[0].Error.Code != jsonrpc.ErrorCodeParseError {
		t.Fatalf("first response %+v", res[0])
	}
	if res[1].Error != nil {
		t.Fatalf("ping after parse error failed: %v", res[1].Error)
	}
}

func TestServeClosesSessionAtEOF(t *testing.T) {
	mgr := newManager()
	run(t, mgr, line(map[string]any{"jsonrpc": "2.0", "id": 1, "method": "ping"}))
	if mgr.Len() != 0 {
		t.Fatalf("%d sessions left after EOF", mgr.Len())
	}
}

func TestServeReplacesSweptSession(t *testing.T) {
	clock := clockwork.NewFakeClock()
	mgr := newManager(sessions.WithClock(clock))

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	h := NewHandler(mgr, WithIO(inR, outW), WithLogger(discard))
	done := make(chan error, 1)
	go func() { done <- h.Serve(context.Background()) }()
	dec := json.NewDecoder(outR)

	send := func(id int) jsonrpc.Response {
		t.Helper()
		if _, err := io.WriteString(inW, line(map[string]any{"jsonrpc": "2.0", "id": id, "method": "ping"})); err != nil {
			t.Fatal(err)
		}
		var r jsonrpc.Response
		if err := dec.Decode(&r); err != nil {
			t.Fatal(err)
		}
		return r
	}

	if r := send(1); r.Error != nil {
		t.Fatal(r.Error)
	}
	clock.Advance(sessions.DefaultTimeout + 1)
	if n := mgr.Sweep(); n != 1 {
		t.Fatalf("sweep evicted %d", n)
	}
	if r := send(2); r.Error != nil {
		t.Fatalf("ping after sweep: %v", r.Error)
	}
	if mgr.Len() != 1 {
		t.Fatalf("want replacement session, have %d", mgr.Len())
	}

	inW.Close()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
