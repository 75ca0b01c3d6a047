package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

// Triggers and automations share one shape: conditions select tickets and
// actions change them.

type createRuleArgs struct {
	Title       string     `json:"title" validate:"required"`
	Conditions  Conditions `json:"conditions" jsonschema:"description=Rules selecting the tickets to act on"`
	Actions     []Action   `json:"actions" validate:"required,min=1,dive"`
	Description *string    `json:"description,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty" jsonschema:"description=Trigger category (triggers only)"`
}

type updateRuleArgs struct {
	ID          int64       `json:"id" validate:"required"`
	Title       *string     `json:"title,omitempty"`
	Conditions  *Conditions `json:"conditions,omitempty"`
	Actions     *[]Action   `json:"actions,omitempty" validate:"omitempty,dive"`
	Description *string     `json:"description,omitempty"`
	Active      *bool       `json:"active,omitempty"`
	CategoryID  *string     `json:"category_id,omitempty"`
}

type ruleOps struct {
	list   func(context.Context, zendesk.ListOptions) (json.RawMessage, error)
	get    func(context.Context, int64) (json.RawMessage, error)
	create func(context.Context, any) (json.RawMessage, error)
	update func(context.Context, int64, any) (json.RawMessage, error)
	del    func(context.Context, int64) (json.RawMessage, error)
}

func ruleTools(singular, plural string, ops ruleOps) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_"+plural, "List "+plural,
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return ops.list(ctx, a.options())
			}),
		rawTool("get_"+singular, "Get a "+singular+" by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return ops.get(ctx, a.ID)
			}),
		rawTool("create_"+singular, "Create a new "+singular,
			func(ctx context.Context, a createRuleArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return ops.create(ctx, p)
			}),
		rawTool("update_"+singular, "Update an existing "+singular+"; only supplied fields change",
			func(ctx context.Context, a updateRuleArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return ops.update(ctx, a.ID, p)
			}),
		rawTool("delete_"+singular, "Delete a "+singular,
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return ops.del(ctx, a.ID)
			}),
	}
}

func triggerTools(c *zendesk.Client) []mcpservice.StaticTool {
	return ruleTools("trigger", "triggers", ruleOps{c.ListTriggers, c.GetTrigger, c.CreateTrigger, c.UpdateTrigger, c.DeleteTrigger})
}

func automationTools(c *zendesk.Client) []mcpservice.StaticTool {
	return ruleTools("automation", "automations", ruleOps{c.ListAutomations, c.GetAutomation, c.CreateAutomation, c.UpdateAutomation, c.DeleteAutomation})
}
