package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListArticles lists help center articles, optionally scoped to a section.
func (c *Client) ListArticles(ctx context.Context, sectionID int64, opts ListOptions) (json.RawMessage, error) {
	if sectionID > 0 {
		return c.get(ctx, fmt.Sprintf("/help_center/sections/%d/articles.json", sectionID), opts.Values())
	}
	return c.get(ctx, "/help_center/articles.json", opts.Values())
}

func (c *Client) GetArticle(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/help_center/articles/%d.json", id), nil)
}

// CreateArticle creates an article inside a section.
func (c *Client) CreateArticle(ctx context.Context, sectionID int64, article any) (json.RawMessage, error) {
	return c.post(ctx, fmt.Sprintf("/help_center/sections/%d/articles.json", sectionID), envelope("article", article))
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, article any) (json.RawMessage, error) {
	return c.put(ctx, fmt.Sprintf("/help_center/articles/%d.json", id), envelope("article", article))
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.delete(ctx, fmt.Sprintf("/help_center/articles/%d.json", id))
}

func (c *Client) ListHelpCenterCategories(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/help_center/categories.json", opts.Values())
}

func (c *Client) ListHelpCenterSections(ctx context.Context, opts ListOptions) (json.RawMessage, error) {
	return c.get(ctx, "/help_center/sections.json", opts.Values())
}
