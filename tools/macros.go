package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type applyMacroArgs struct {
	TicketID int64 `json:"ticket_id" validate:"required" jsonschema:"description=Ticket to preview the macro against"`
	MacroID  int64 `json:"macro_id" validate:"required" jsonschema:"description=Macro ID"`
}

type createMacroArgs struct {
	Title       string   `json:"title" validate:"required"`
	Actions     []Action `json:"actions" validate:"required,min=1,dive" jsonschema:"description=Field changes the macro applies"`
	Description *string  `json:"description,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type updateMacroArgs struct {
	ID          int64     `json:"id" validate:"required" jsonschema:"description=Macro ID"`
	Title       *string   `json:"title,omitempty"`
	Actions     *[]Action `json:"actions,omitempty" validate:"omitempty,dive"`
	Description *string   `json:"description,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

func macroTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_macros", "List macros",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListMacros(ctx, a.options())
			}),
		rawTool("get_macro", "Get a macro by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetMacro(ctx, a.ID)
			}),
		rawTool("apply_macro", "Preview the changes a macro would make to a ticket",
			func(ctx context.Context, a applyMacroArgs) (json.RawMessage, error) {
				return c.ApplyMacro(ctx, a.TicketID, a.MacroID)
			}),
		rawTool("create_macro", "Create a new macro",
			func(ctx context.Context, a createMacroArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return c.CreateMacro(ctx, p)
			}),
		rawTool("update_macro", "Update an existing macro; only supplied fields change",
			func(ctx context.Context, a updateMacroArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateMacro(ctx, a.ID, p)
			}),
		rawTool("delete_macro", "Delete a macro",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteMacro(ctx, a.ID)
			}),
	}
}
