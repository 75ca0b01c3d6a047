package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListMacros(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/macros.json", opts.Values())
}

func (c *Client) GetMacro(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/macros/%d.json", id), nil)
}

func (c *Client) CreateMacro(ctx context.Context, macro any) (json.RawMessage, error) {
	return c.post(ctx, "/macros.json", envelope("macro", macro))
}

func (c *Client) UpdateMacro(ctx context.Context, id int64, macro any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/macros/%d.json", id), envelope("macro", macro))
}

func (c *Client) DeleteMacro(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/macros/%d.json", id))
}

// ApplyMacro previews the changes a macro would make to a ticket. The ticket
// itself is not modified.
func (c *Client) ApplyMacro(ctx context.Context, ticketID, macroID int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/tickets/%d/macros/%d/apply.json", ticketID, macroID), nil)
}
