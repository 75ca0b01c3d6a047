package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

// ticketRef keeps the ticket exactly as returned alongside the IDs that get
// resolved to names.
type ticketRef struct {
	Raw         json.RawMessage
	RequesterID *int64
	AssigneeID  *int64
	GroupID     *int64
}

func (t *ticketRef) UnmarshalJSON(b []byte) error {
	var ids struct {
		RequesterID *int64 `json:"requester_id"`
		AssigneeID  *int64 `json:"assignee_id"`
		GroupID     *int64 `json:"group_id"`
	}
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*t = ticketRef{
		Raw:         append(json.RawMessage(nil), b...),
		RequesterID: ids.RequesterID,
		AssigneeID:  ids.AssigneeID,
		GroupID:     ids.GroupID,
	}
	return nil
}

type namedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ticketWithNames is the rendered shape: the raw ticket plus resolved names.
type ticketWithNames struct {
	Ticket        json.RawMessage `json:"ticket"`
	RequesterName string          `json:"requester_name,omitempty"`
	AssigneeName  string          `json:"assignee_name,omitempty"`
	GroupName     string          `json:"group_name,omitempty"`
}

// getTicketWithNames fetches a ticket and resolves requester, assignee and
// group IDs to names. Absent IDs are skipped; failed lookups fall back to the
// raw ID.
func getTicketWithNames(c *zendesk.Client) mcpservice.StaticTool {
	return rawTool("get_ticket_with_names", "Get a ticket with requester, assignee and group names resolved",
		func(ctx context.Context, a idArgs) (json.RawMessage, error) {
			raw, err := c.GetTicket(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			var envelope struct {
				Ticket *ticketRef `json:"ticket"`
			}
			if err := json.Unmarshal(raw, &envelope); err != nil {
				return nil, fmt.Errorf("decode ticket: %w", err)
			}
			ref := envelope.Ticket
			if ref == nil {
				return nil, fmt.Errorf("decode ticket: response has no ticket")
			}

			out := ticketWithNames{Ticket: ref.Raw}
			if id := ref.RequesterID; id != nil {
				out.RequesterName = lookupName(ctx, *id, "user", c.GetUser)
			}
			if id := ref.AssigneeID; id != nil {
				out.AssigneeName = lookupName(ctx, *id, "user", c.GetUser)
			}
			if id := ref.GroupID; id != nil {
				out.GroupName = lookupName(ctx, *id, "group", c.GetGroup)
			}
			return json.Marshal(out)
		})
}

func lookupName(ctx context.Context, id int64, key string, get func(context.Context, int64) (json.RawMessage, error)) string {
	fallback := fmt.Sprintf("%d", id)
	raw, err := get(ctx, id)
	if err != nil {
		return fallback
	}
	var m map[string]namedEntity
	if err := json.Unmarshal(raw, &m); err != nil {
		return fallback
	}
	if e, ok := m[key]; ok && e.Name != "" {
		return e.Name
	}
	return fallback
}
