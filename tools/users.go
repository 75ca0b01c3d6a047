package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type listUsersArgs struct {
	Page    *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=end-user agent admin" jsonschema:"enum=end-user,enum=agent,enum=admin"`
}

type createUserArgs struct {
	Name           string   `json:"name" validate:"required" jsonschema:"description=Full name"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Role           *string  `json:"role,omitempty" validate:"omitempty,oneof=end-user agent admin" jsonschema:"enum=end-user,enum=agent,enum=admin"`
	Phone          *string  `json:"phone,omitempty"`
	OrganizationID *int64   `json:"organization_id,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Details        *string  `json:"details,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	Verified       *bool    `json:"verified,omitempty"`
}

type updateUserArgs struct {
	ID             int64     `json:"id" validate:"required" jsonschema:"description=User ID"`
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty" validate:"omitempty,email"`
	Role           *string   `json:"role,omitempty" validate:"omitempty,oneof=end-user agent admin" jsonschema:"enum=end-user,enum=agent,enum=admin"`
	Phone          *string   `json:"phone,omitempty"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Details        *string   `json:"details,omitempty"`
	ExternalID     *string   `json:"external_id,omitempty"`
	Suspended      *bool     `json:"suspended,omitempty"`
}

func userTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_users", "List users, optionally filtered by role",
			func(ctx context.Context, a listUsersArgs) (json.RawMessage, error) {
				q := listArgs{Page: a.Page, PerPage: a.PerPage}.options()
				if a.Role != nil {
					return c.ListUsersByRole(ctx, *a.Role, q)
				}
				return c.ListUsers(ctx, q)
			}),
		rawTool("get_user", "Get a user by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetUser(ctx, a.ID)
			}),
		rawTool("get_current_user", "Get the user the API token authenticates as",
			func(ctx context.Context, _ noArgs) (json.RawMessage, error) {
				return c.GetCurrentUser(ctx)
			}),
		rawTool("create_user", "Create a new user",
			func(ctx context.Context, a createUserArgs) (json.RawMessage, error) {
				p, err := payload(a)
				if err != nil {
					return nil, err
				}
				return c.CreateUser(ctx, p)
			}),
		rawTool("update_user", "Update an existing user; only supplied fields change",
			func(ctx context.Context, a updateUserArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateUser(ctx, a.ID, p)
			}),
		rawTool("delete_user", "Delete a user",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteUser(ctx, a.ID)
			}),
	}
}
