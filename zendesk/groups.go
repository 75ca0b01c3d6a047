package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListGroups(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/groups.json", opts.Values())
}

func (c *Client) GetGroup(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/groups/%d.json", id), nil)
}

func (c *Client) CreateGroup(ctx context.Context, group any) (json.RawMessage, error) {
	return c.post(ctx, "/groups.json", envelope("group", group))
}

func (c *Client) UpdateGroup(ctx context.Context, id int64, group any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/groups/%d.json", id), envelope("group", group))
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/groups/%d.json", id))
}
