package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListOrganizations(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/organizations.json", opts.Values())
}

func (c *Client) GetOrganization(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/organizations/%d.json", id), nil)
}

func (c *Client) CreateOrganization(ctx context.Context, organization any) (json.RawMessage, error) {
	return c.post(ctx, "/organizations.json", envelope("organization", organization))
}

func (c *Client) UpdateOrganization(ctx context.Context, id int64, organization any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/organizations/%d.json", id), envelope("organization", organization))
}

func (c *Client) DeleteOrganization(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/organizations/%d.json", id))
}
