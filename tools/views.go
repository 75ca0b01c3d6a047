package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type executeViewArgs struct {
	ID        int64   `json:"id" validate:"required" jsonschema:"description=View ID"`
	Page      *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage   *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	SortBy    *string `json:"sort_by,omitempty"`
	SortOrder *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc" jsonschema:"enum=asc,enum=desc"`
}

type createViewArgs struct {
	Title       string     `json:"title" validate:"required"`
	Conditions  Conditions `json:"conditions" jsonschema:"description=Rules selecting the tickets in the view"`
	Description *string    `json:"description,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

type updateViewArgs struct {
	ID          int64       `json:"id" validate:"required" jsonschema:"description=View ID"`
	Title       *string     `json:"title,omitempty"`
	Conditions  *Conditions `json:"conditions,omitempty"`
	Description *string     `json:"description,omitempty"`
	Active      *bool       `json:"active,omitempty"`
}

func viewTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_views", "List views",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListViews(ctx, a.options())
			}),
		rawTool("get_view", "Get a view by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetView(ctx, a.ID)
			}),
		rawTool("execute_view", "List the tickets a view matches",
			func(ctx context.Context, a executeViewArgs) (json.RawMessage, error) {
				return c.ExecuteView(ctx, a.ID, listArgs{Page: a.Page, PerPage: a.PerPage, SortBy: a.SortBy, SortOrder: a.SortOrder}.options())
			}),
		rawTool("count_view_tickets", "Count the tickets a view matches",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.CountViewTickets(ctx, a.ID)
			}),
		rawTool("create_view", "Create a new view",
			func(ctx context.Context, a createViewArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return c.CreateView(ctx, p)
			}),
		rawTool("update_view", "Update an existing view; only supplied fields change",
			func(ctx context.Context, a updateViewArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateView(ctx, a.ID, p)
			}),
		rawTool("delete_view", "Delete a view",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteView(ctx, a.ID)
			}),
	}
}
