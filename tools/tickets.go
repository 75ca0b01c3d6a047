package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type createTicketArgs struct {
	Subject        string        `json:"subject" validate:"required" jsonschema:"description=Ticket subject"`
	Comment        string        `json:"comment" validate:"required" jsonschema:"description=First comment (the ticket description)"`
	Priority       *string       `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent" jsonschema:"enum=low,enum=normal,enum=high,enum=urgent"`
	Status         *string       `json:"status,omitempty" validate:"omitempty,oneof=new open pending hold solved closed" jsonschema:"enum=new,enum=open,enum=pending,enum=hold,enum=solved,enum=closed"`
	Type           *string       `json:"type,omitempty" validate:"omitempty,oneof=problem incident question task" jsonschema:"enum=problem,enum=incident,enum=question,enum=task"`
	RequesterID    *int64        `json:"requester_id,omitempty"`
	AssigneeID     *int64        `json:"assignee_id,omitempty"`
	GroupID        *int64        `json:"group_id,omitempty"`
	OrganizationID *int64        `json:"organization_id,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	ExternalID     *string       `json:"external_id,omitempty"`
	DueAt          *string       `json:"due_at,omitempty" jsonschema:"description=ISO 8601 due date for task tickets"`
	CustomFields   []CustomField `json:"custom_fields,omitempty" validate:"dive"`
}

type updateTicketArgs struct {
	ID             int64          `json:"id" validate:"required" jsonschema:"description=Ticket ID"`
	Subject        *string        `json:"subject,omitempty"`
	Priority       *string        `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent" jsonschema:"enum=low,enum=normal,enum=high,enum=urgent"`
	Status         *string        `json:"status,omitempty" validate:"omitempty,oneof=new open pending hold solved closed" jsonschema:"enum=new,enum=open,enum=pending,enum=hold,enum=solved,enum=closed"`
	Type           *string        `json:"type,omitempty" validate:"omitempty,oneof=problem incident question task" jsonschema:"enum=problem,enum=incident,enum=question,enum=task"`
	AssigneeID     *int64         `json:"assignee_id,omitempty"`
	GroupID        *int64         `json:"group_id,omitempty"`
	OrganizationID *int64         `json:"organization_id,omitempty"`
	Tags           *[]string      `json:"tags,omitempty"`
	ExternalID     *string        `json:"external_id,omitempty"`
	DueAt          *string        `json:"due_at,omitempty"`
	CustomFields   *[]CustomField `json:"custom_fields,omitempty" validate:"omitempty,dive"`
}

type ticketCommentsArgs struct {
	ID        int64   `json:"id" validate:"required" jsonschema:"description=Ticket ID"`
	Page      *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage   *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	SortOrder *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc" jsonschema:"enum=asc,enum=desc"`
}

func (a ticketCommentsArgs) options() zendesk.ListOptions {
	return listArgs{Page: a.Page, PerPage: a.PerPage, SortOrder: a.SortOrder}.options()
}

type addCommentArgs struct {
	ID     int64  `json:"id" validate:"required" jsonschema:"description=Ticket ID"`
	Body   string `json:"body" validate:"required" jsonschema:"description=Comment text"`
	Public *bool  `json:"public,omitempty" jsonschema:"description=Visible to the requester (default true)"`
}

func ticketTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_tickets", "List tickets in the Zendesk account",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListTickets(ctx, a.options())
			}),
		rawTool("get_ticket", "Get a ticket by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetTicket(ctx, a.ID)
			}),
		getTicketWithNames(c),
		rawTool("create_ticket", "Create a new ticket",
			func(ctx context.Context, a createTicketArgs) (json.RawMessage, error) {
				p, err := payload(a, "comment")
				if err != nil {
					return nil, err
				}
				if err := setJSON(p, "comment", map[string]any{"body": a.Comment}); err != nil {
					return nil, err
				}
				return c.CreateTicket(ctx, p)
			}),
		rawTool("update_ticket", "Update an existing ticket; only supplied fields change",
			func(ctx context.Context, a updateTicketArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateTicket(ctx, a.ID, p)
			}),
		rawTool("delete_ticket", "Delete a ticket",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteTicket(ctx, a.ID)
			}),
		rawTool("get_ticket_comments", "List comments on a ticket (one page)",
			func(ctx context.Context, a ticketCommentsArgs) (json.RawMessage, error) {
				return c.GetTicketComments(ctx, a.ID, a.options())
			}),
		rawTool("add_ticket_comment", "Add a public or internal comment to a ticket",
			func(ctx context.Context, a addCommentArgs) (json.RawMessage, error) {
				public := true
				if a.Public != nil {
					public = *a.Public
				}
				return c.AddTicketComment(ctx, a.ID, a.Body, public)
			}),
		summarizeTicketComments(c),
	}
}
