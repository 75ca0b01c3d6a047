package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Client) ListTickets(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/tickets.json", opts.Values())
}

func (c *Client) GetTicket(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/tickets/%d.json", id), nil)
}

// CreateTicket posts ticket wrapped as {"ticket": ticket}.
func (c *Client) CreateTicket(ctx context.Context, ticket any) (json.RawMessage, error) {
	return c.post(ctx, "/tickets.json", envelope("ticket", ticket))
}

// UpdateTicket sends only the fields present in ticket.
func (c *Client) UpdateTicket(ctx context.Context, id int64, ticket any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/tickets/%d.json", id), envelope("ticket", ticket))
}

func (c *Client) DeleteTicket(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/tickets/%d.json", id))
}

// GetTicketComments lists one page of comments for a ticket.
func (c *Client) GetTicketComments(ctx context.Context, id int64, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/tickets/%d/comments.json", id), opts.Values())
}

// AddTicketComment adds a comment through a ticket update, which is how the
// API models new comments.
func (c *Client) AddTicketComment(ctx context.Context, id int64, body string, public bool) (json.RawMessage, error) {
	payload := map[string]any{"comment": map[string]any{"body": body, "public": public}}
	return c.put(ctx, fmt.Sprintf("/tickets/%d.json", id), envelope("ticket", payload))
}

// CommentPage is the decoded subset of a comments listing.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	NextPage *string   `json:"next_page"`
	Count    int       `json:"count"`
}

// Comment is the decoded subset of a ticket comment.
type Comment struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"author_id"`
	Body      string `json:"body"`
	PlainBody string `json:"plain_body"`
	Public    bool   `json:"public"`
	CreatedAt string `json:"created_at"`
}

// TicketComments fetches and decodes one page of comments.
func (c *Client) TicketComments(ctx context.Context, id int64, page, perPage int) (*CommentPage, error) {
	raw, err := c.GetTicketComments(ctx, id, ListOptions{Page: page, PerPage: perPage})
	if err != nil {
		return nil, err
	}
	var out CommentPage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return &out, nil
}
