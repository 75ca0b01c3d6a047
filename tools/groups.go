package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type createGroupArgs struct {
	Name        string  `json:"name" validate:"required" jsonschema:"description=Group name"`
	Description *string `json:"description,omitempty"`
}

type updateGroupArgs struct {
	ID          int64   `json:"id" validate:"required" jsonschema:"description=Group ID"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func groupTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_groups", "List agent groups",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListGroups(ctx, a.options())
			}),
		rawTool("get_group", "Get a group by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetGroup(ctx, a.ID)
			}),
		rawTool("create_group", "Create a new agent group",
			func(ctx context.Context, a createGroupArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return c.CreateGroup(ctx, p)
			}),
		rawTool("update_group", "Update an existing group; only supplied fields change",
			func(ctx context.Context, a updateGroupArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateGroup(ctx, a.ID, p)
			}),
		rawTool("delete_group", "Delete a group",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteGroup(ctx, a.ID)
			}),
	}
}
