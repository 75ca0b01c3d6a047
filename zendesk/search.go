package zendesk

import (
	"context"
	"encoding/json"
)

// Search runs a query against the unified search endpoint.
func (c *Client) Search(ctx context.Context, query string, opts ListOptions) (json.RawMessage, error) {
	v := opts.Values()
	v.Set("query", query)
	return c.get(ctx, "/search.json", v)
}
