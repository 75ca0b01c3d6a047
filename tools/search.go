package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type searchArgs struct {
	Query     string  `json:"query" validate:"required" jsonschema:"description=Zendesk search query, e.g. type:ticket status:open"`
	Page      *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage   *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	SortBy    *string `json:"sort_by,omitempty" validate:"omitempty,oneof=updated_at created_at priority status ticket_type" jsonschema:"enum=updated_at,enum=created_at,enum=priority,enum=status,enum=ticket_type"`
	SortOrder *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc" jsonschema:"enum=asc,enum=desc"`
}

func searchTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("search", "Search tickets, users and organizations with Zendesk query syntax",
			func(ctx context.Context, a searchArgs) (json.RawMessage, error) {
				opts := listArgs{Page: a.Page, PerPage: a.PerPage, SortBy: a.SortBy, SortOrder: a.SortOrder}.options()
				return c.Search(ctx, a.Query, opts)
			}),
	}
}
