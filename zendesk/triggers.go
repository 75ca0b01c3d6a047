package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListTriggers(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/triggers.json", opts.Values())
}

func (c *Client) GetTrigger(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/triggers/%d.json", id), nil)
}

func (c *Client) CreateTrigger(ctx context.Context, trigger any) (json.RawMessage, error) {
	return c.post(ctx, "/triggers.json", envelope("trigger", trigger))
}

func (c *Client) UpdateTrigger(ctx context.Context, id int64, trigger any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/triggers/%d.json", id), envelope("trigger", trigger))
}

func (c *Client) DeleteTrigger(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/triggers/%d.json", id))
}
