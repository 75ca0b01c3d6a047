package tools

import (
	"context"
	"encoding/json"

	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

type chatIDArgs struct {
	ID string `json:"id" validate:"required" jsonschema:"description=Chat ID"`
}

func talkTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("get_talk_queue_activity", "Get current Talk queue activity",
			func(ctx context.Context, _ noArgs) (json.RawMessage, error) {
				return c.TalkQueueActivity(ctx)
			}),
		rawTool("get_talk_agents_activity", "Get Talk activity per agent",
			func(ctx context.Context, _ noArgs) (json.RawMessage, error) {
				return c.TalkAgentsActivity(ctx)
			}),
		rawTool("get_talk_account_overview", "Get the Talk account overview",
			func(ctx context.Context, _ noArgs) (json.RawMessage, error) {
				return c.TalkAccountOverview(ctx)
			}),
	}
}

func chatTools(c *zendesk.Client) []mcpservice.StaticTool {
	return []mcpservice.StaticTool{
		rawTool("list_chats", "List chat conversations",
			func(ctx context.Context, a listArgs) (json.RawMessage, error) {
				return c.ListChats(ctx, a.options())
			}),
		rawTool("get_chat", "Get a chat conversation by ID",
			func(ctx context.Context, a chatIDArgs) (json.RawMessage, error) {
				return c.GetChat(ctx, a.ID)
			}),
		rawTool("list_chat_agents", "List chat agents",
			func(ctx context.Context, _ noArgs) (json.RawMessage, error) {
				return c.ListChatAgents(ctx)
			}),
	}
}
