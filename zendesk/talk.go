package zendesk

import (
	"context"
	"encoding/json"
)

// Talk statistics are read-only snapshots of the voice channel.

func (c *Client) TalkQueueActivity(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/channels/voice/stats/current_queue_activity.json", nil)
}

func (c *Client) TalkAgentsActivity(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/channels/voice/stats/agents_activity.json", nil)
}

func (c *Client) TalkAccountOverview(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/channels/voice/stats/account_overview.json", nil)
}
