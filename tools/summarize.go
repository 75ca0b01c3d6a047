package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

const (
	commentPageSize    = 100
	defaultMaxComments = 100
)

type summarizeArgs struct {
	TicketID    int64 `json:"ticket_id" validate:"required" jsonschema:"description=Ticket ID"`
	MaxComments *int  `json:"max_comments,omitempty" validate:"omitempty,min=1,max=1000" jsonschema:"description=Maximum number of comments to include (default 100)"`
}

func summarizeTicketComments(c *zendesk.Client) mcpservice.StaticTool {
	const name = "summarize_ticket_comments"
	return mcpservice.NewTool(name, func(ctx context.Context, w mcpservice.ToolResponseWriter, r *mcpservice.ToolRequest[summarizeArgs]) error {
		a := r.Args()
		limit := defaultMaxComments
		if a.MaxComments != nil {
			limit = *a.MaxComments
		}
		comments, total, err := collectComments(ctx, c, a.TicketID, limit)
		if err != nil {
			return err
		}
		return w.AppendText(formatComments(a.TicketID, total, comments))
	}, options(name, "Fetch every comment on a ticket (paginating as needed) and render them in order")...)
}

// collectComments pages through a ticket's comments until limit comments are
// held, the declared count is reached, a short page arrives or there is no
// next page.
func collectComments(ctx context.Context, c *zendesk.Client, ticketID int64, limit int) ([]zendesk.Comment, int, error) {
	var (
		out   []zendesk.Comment
		total int
	)
	for page := 1; ; page++ {
		p, err := c.TicketComments(ctx, ticketID, page, commentPageSize)
		if err != nil {
			return nil, 0, err
		}
		total = p.Count
		for _, cm := range p.Comments {
			if len(out) >= limit {
				break
			}
			out = append(out, cm)
		}
		switch {
		case len(out) >= limit,
			total > 0 && len(out) >= total,
			len(p.Comments) < commentPageSize,
			p.NextPage == nil:
			if total < len(out) {
				total = len(out)
			}
			return out, total, nil
		}
	}
}

func formatComments(ticketID int64, total int, comments []zendesk.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket #%d comments\n", ticketID)
	fmt.Fprintf(&b, "Total comments: %d\n", total)
	fmt.Fprintf(&b, "Showing: %d\n", len(comments))
	for i, cm := range comments {
		visibility := "public"
		if !cm.Public {
			visibility = "internal"
		}
		body := cm.PlainBody
		if body == "" {
			body = cm.Body
		}
		fmt.Fprintf(&b, "\n[%d] author %d at %s (%s)\n%s\n", i+1, cm.AuthorID, cm.CreatedAt, visibility, strings.TrimSpace(body))
	}
	return b.String()
}
