package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

func (c *Client) ListChats(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/chat/chats", opts.Values())
}

// GetChat takes a string id; chat ids are not numeric.
func (c *Client) GetChat(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/chat/chats/%s", url.PathEscape(id)), nil)
}

func (c *Client) ListChatAgents(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/chat/agents", nil)
}
