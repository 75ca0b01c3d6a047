package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerAddsContextGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(Handler{Handler: slog.NewJSONHandler(&buf, nil)}).With("component", "test")

	ctx := WithSessionData(context.Background(), &SessionData{SessionID: "s-1"})
	ctx = WithToolCallData(ctx, &ToolCallData{ToolName: "get_ticket", Risk: "SAFE"})
	log.InfoContext(ctx, "tool.call.ok")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	sess, _ := rec["sess"].(map[string]any)
	if sess["id"] != "s-1" {
		t.Fatalf("sess.id: want s-1 got %v", sess["id"])
	}
	tool, _ := rec["tool"].(map[string]any)
	if tool["name"] != "get_ticket" || tool["risk"] != "SAFE" {
		t.Fatalf("tool group: got %v", tool)
	}
	if rec["component"] != "test" {
		t.Fatalf("component attr lost: %v", rec)
	}
}

func TestWrapDecoratesOnce(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.New(Wrap(slog.NewJSONHandler(&buf, nil))).With("component", "http")
	log := slog.New(Wrap(Wrap(inner.Handler())))

	ctx := WithRequestData(context.Background(), &RequestData{RequestID: "r-1", Method: "POST"})
	ctx = WithSessionData(ctx, &SessionData{SessionID: "s-1"})
	log.InfoContext(ctx, "http.post.ok")

	line := buf.String()
	for _, key := range []string{`"req":`, `"sess":`} {
		if n := strings.Count(line, key); n != 1 {
			t.Fatalf("%s appears %d times in %s", key, n, line)
		}
	}
}
