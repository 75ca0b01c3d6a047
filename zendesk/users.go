package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/users.json", opts.Values())
}

func (c *Client) GetUser(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/users/%d.json", id), nil)
}

func (c *Client) CreateUser(ctx context.Context, user any) (json.RawMessage, error) {
	return c.post(ctx, "/users.json", envelope("user", user))
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/users/%d.json", id), envelope("user", user))
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/users/%d.json", id))
}

// GetCurrentUser returns the user the API token belongs to.
func (c *Client) GetCurrentUser(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/users/me.json", nil)
}
// ListUsersByRole lists users holding role.
func (c *Client) ListUsersByRole(ctx context.Context, role string, opts ListOptions) (json.RawMessage, error) {
	v := opts.Values()
	v.Set("role", role)
	return c.get(ctx, "/users.json", v)
}
