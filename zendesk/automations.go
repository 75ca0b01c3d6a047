package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListAutomations(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/automations.json", opts.Values())
}

func (c *Client) GetAutomation(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/automations/%d.json", id), nil)
}

func (c *Client) CreateAutomation(ctx context.Context, automation any) (json.RawMessage, error) {
	return c.post(ctx, "/automations.json", envelope("automation", automation))
}

func (c *Client) UpdateAutomation(ctx context.Context, id int64, automation any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/automations/%d.json", id), envelope("automation", automation))
}

func (c *Client) DeleteAutomation(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/automations/%d.json", id))
}
