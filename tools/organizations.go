package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type createOrganizationArgs struct {
	Name           string   `json:"name" validate:"required" jsonschema:"description=Organization name"`
	DomainNames    []string `json:"domain_names,omitempty" jsonschema:"description=Email domains that map users to this organization"`
	Details        *string  `json:"details,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	GroupID        *int64   `json:"group_id,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	SharedTickets  *bool    `json:"shared_tickets,omitempty"`
	SharedComments *bool    `json:"shared_comments,omitempty"`
}

type updateOrganizationArgs struct {
	ID             int64     `json:"id" validate:"required" jsonschema:"description=Organization ID"`
	Name           *string   `json:"name,omitempty"`
	DomainNames    *[]string `json:"domain_names,omitempty"`
	Details        *string   `json:"details,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	GroupID        *int64    `json:"group_id,omitempty"`
	ExternalID     *string   `json:"external_id,omitempty"`
	SharedTickets  *bool     `json:"shared_tickets,omitempty"`
	SharedComments *bool     `json:"shared_comments,omitempty"`
}

func organizationTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_organizations", "List organizations",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListOrganizations(ctx, a.options())
			}),
		rawTool("get_organization", "Get an organization by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetOrganization(ctx, a.ID)
			}),
		rawTool("create_organization", "Create a new organization",
			func(ctx context.Context, a createOrganizationArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return c.CreateOrganization(ctx, p)
			}),
		rawTool("update_organization", "Update an existing organization; only supplied fields change",
			func(ctx context.Context, a updateOrganizationArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateOrganization(ctx, a.ID, p)
			}),
		rawTool("delete_organization", "Delete an organization",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteOrganization(ctx, a.ID)
			}),
	}
}
