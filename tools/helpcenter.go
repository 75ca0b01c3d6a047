package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type listArticlesArgs struct {
	SectionID *int64  `json:"section_id,omitempty" jsonschema:"description=Only list articles in this section"`
	Page      *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage   *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
	SortBy    *string `json:"sort_by,omitempty" validate:"omitempty,oneof=position title created_at updated_at" jsonschema:"enum=position,enum=title,enum=created_at,enum=updated_at"`
	SortOrder *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc" jsonschema:"enum=asc,enum=desc"`
}

type createArticleArgs struct {
	SectionID         int64    `json:"section_id" validate:"required" jsonschema:"description=Section to create the article in"`
	Title             string   `json:"title" validate:"required"`
	Body              string   `json:"body" validate:"required" jsonschema:"description=Article body (HTML)"`
	Locale            *string  `json:"locale,omitempty"`
	Draft             *bool    `json:"draft,omitempty"`
	LabelNames        []string `json:"label_names,omitempty"`
	PermissionGroupID *int64   `json:"permission_group_id,omitempty"`
	UserSegmentID     *int64   `json:"user_segment_id,omitempty"`
}

type updateArticleArgs struct {
	ID                int64     `json:"id" validate:"required" jsonschema:"description=Article ID"`
	Title             *string   `json:"title,omitempty"`
	Body              *string   `json:"body,omitempty"`
	Locale            *string   `json:"locale,omitempty"`
	Draft             *bool     `json:"draft,omitempty"`
	LabelNames        *[]string `json:"label_names,omitempty"`
	PermissionGroupID *int64    `json:"permission_group_id,omitempty"`
	UserSegmentID     *int64    `json:"user_segment_id,omitempty"`
}

func helpCenterTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_articles", "List help center articles, optionally within a section",
			func(ctx context.Context, a listArticlesArgs) (json.RawMessage, error) {
				var section int64
				if a.SectionID != nil {
					section = *a.SectionID
				}
				opts := listArgs{Page: a.Page, PerPage: a.PerPage, SortBy: a.SortBy, SortOrder: a.SortOrder}.options()
				return c.ListArticles(ctx, section, opts)
			}),
		rawTool("get_article", "Get a help center article by ID",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.GetArticle(ctx, a.ID)
			}),
		rawTool("create_article", "Create a help center article",
			func(ctx context.Context, a createArticleArgs) (json.RawMessage, error) {
				p, err := payload(a, "section_id")
				if err != nil {
					return nil, err
				}
				return c.CreateArticle(ctx, a.SectionID, p)
			}),
		rawTool("update_article", "Update a help center article; only supplied fields change",
			func(ctx context.Context, a updateArticleArgs) (json.RawMessage, error) {
				p, err := payload(a, "id")
				if err != nil {
					return nil, err
				}
				return c.UpdateArticle(ctx, a.ID, p)
			}),
		rawTool("delete_article", "Delete a help center article",
			func(ctx context.Context, a idArgs) (json.RawMessage, error) {
				return c.DeleteArticle(ctx, a.ID)
			}),
		rawTool("list_help_center_categories", "List help center categories",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListHelpCenterCategories(ctx, a.options())
			}),
		rawTool("list_help_center_sections", "List help center sections",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListHelpCenterSections(ctx, a.options())
			}),
	}
}
