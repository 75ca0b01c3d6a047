package mcpservice

import (
	"bytes"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
)

// ToolResponseWriter accumulates the content of a single tool result. A
// writer belongs to one call and is not safe for concurrent use.
type ToolResponseWriter interface {
	// AppendText adds a text block. Empty text is ignored.
	AppendText(text string) error
	// AppendJSON adds raw as an indented text block. The first JSON object
	// appended is also attached as the result's structured content. Input
	// that is not valid JSON is appended verbatim.
	AppendJSON(raw json.RawMessage) error
}

type resultBuilder struct {
	blocks     []mcp.ContentBlock
	structured json.RawMessage
}

func (b *resultBuilder) AppendText(text string) error {
	if text != "" {
		b.blocks = append(b.blocks, mcp.Text(text))
	}
	return nil
}

func (b *resultBuilder) AppendJSON(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return b.AppendText(string(raw))
	}
	if b.structured == nil && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		var compact bytes.Buffer
		_ = json.Compact(&compact, raw) // raw is known valid
		b.structured = compact.Bytes()
	}
	return b.AppendText(buf.String())
}

func (b *resultBuilder) result() *mcp.CallToolResult {
	content := b.blocks
	if content == nil {
		content = []mcp.ContentBlock{}
	}
	return &mcp.CallToolResult{Content: content, StructuredContent: b.structured}
}
