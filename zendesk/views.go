package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListViews(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/views.json", opts.Values())
}

func (c *Client) GetView(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/views/%d.json", id), nil)
}

func (c *Client) CreateView(ctx context.Context, view any) (json.RawMessage, error) {
	return c.post(ctx, "/views.json", envelope("view", view))
}

func (c *Client) UpdateView(ctx context.Context, id int64, view any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/views/%d.json", id), envelope("view", view))
}

func (c *Client) DeleteView(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/views/%d.json", id))
}

// ExecuteView returns the tickets a view matches.
func (c *Client) ExecuteView(ctx context.Context, id int64, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/views/%d/execute.json", id), opts.Values())
}

func (c *Client) CountViewTickets(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/views/%d/count.json", id), nil)
}
