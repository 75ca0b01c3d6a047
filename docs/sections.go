package docs

var sections = map[string]string{
	"overview": `# Zendesk MCP Server

This server exposes the Zendesk Support, Help Center, Talk and Chat APIs as
tools. Every tool forwards its validated arguments to exactly one REST call
(with two documented exceptions) and returns the JSON response as text.

Resources:
- zendesk://docs/{section}   API documentation by section
- zendesk://risk/{category}  tool risk classification by category

Tool risk levels are derived from the tool name: create_ and update_ tools
are MODERATE_RISK, delete_ tools are HIGH_RISK, everything else is SAFE.`,

	"tickets": `# Tickets

Endpoints (relative to https://{subdomain}.zendesk.com/api/v2):
- GET    /tickets.json                 list_tickets (page, per_page, sort_by, sort_order)
- GET    /tickets/{id}.json            get_ticket
- POST   /tickets.json                 create_ticket
- PUT    /tickets/{id}.json            update_ticket (only supplied fields are sent)
- DELETE /tickets/{id}.json            delete_ticket
- GET    /tickets/{id}/comments.json   get_ticket_comments
- PUT    /tickets/{id}.json            add_ticket_comment ({"ticket":{"comment":{...}}})

get_ticket_with_names resolves requester, assignee and group IDs to names
with up to three additional lookups. summarize_ticket_comments pages through
comments (100 per page) until max_comments is reached or the ticket has no
more comments.

Status values: new, open, pending, hold, solved, closed.
Priority values: low, normal, high, urgent.
Type values: problem, incident, question, task.`,

	"users": `# Users

- GET    /users.json          list_users (role filter: end-user, agent, admin)
- GET    /users/{id}.json     get_user
- GET    /users/me.json       get_current_user
- POST   /users.json          create_user (name required)
- PUT    /users/{id}.json     update_user
- DELETE /users/{id}.json     delete_user`,

	"organizations": `# Organizations

- GET    /organizations.json        list_organizations
- GET    /organizations/{id}.json   get_organization
- POST   /organizations.json        create_organization (name required)
- PUT    /organizations/{id}.json   update_organization
- DELETE /organizations/{id}.json   delete_organization`,

	"groups": `# Groups

- GET    /groups.json        list_groups
- GET    /groups/{id}.json   get_group
- POST   /groups.json        create_group (name required)
- PUT    /groups/{id}.json   update_group
- DELETE /groups/{id}.json   delete_group`,

	"macros": `# Macros

- GET    /macros.json                               list_macros
- GET    /macros/{id}.json                          get_macro
- GET    /tickets/{ticket_id}/macros/{id}/apply.json apply_macro (preview only)
- POST   /macros.json                               create_macro (title, actions)
- PUT    /macros/{id}.json                          update_macro
- DELETE /macros/{id}.json                          delete_macro

An action is {"field": "...", "value": ...}.`,

	"views": `# Views

- GET    /views.json               list_views
- GET    /views/{id}.json          get_view
- GET    /views/{id}/execute.json  execute_view
- GET    /views/{id}/count.json    count_view_tickets
- POST   /views.json               create_view (title, conditions)
- PUT    /views/{id}.json          update_view
- DELETE /views/{id}.json          delete_view

Conditions are {"all": [...], "any": [...]} lists of
{"field": "...", "operator": "...", "value": ...}.`,

	"triggers": `# Triggers

- GET    /triggers.json        list_triggers
- GET    /triggers/{id}.json   get_trigger
- POST   /triggers.json        create_trigger (title, conditions, actions)
- PUT    /triggers/{id}.json   update_trigger
- DELETE /triggers/{id}.json   delete_trigger`,

	"automations": `# Automations

- GET    /automations.json        list_automations
- GET    /automations/{id}.json   get_automation
- POST   /automations.json        create_automation (title, conditions, actions)
- PUT    /automations/{id}.json   update_automation
- DELETE /automations/{id}.json   delete_automation

Automations must include a time-based condition such as hours_since_created.`,

	"search": `# Search

- GET /search.json?query=...   search

Query syntax examples:
- type:ticket status:open
- type:user email:jane@example.com
- type:organization name:Acme
- created>2024-01-01 priority:urgent`,

	"help_center": `# Help Center

- GET    /help_center/articles.json                    list_articles
- GET    /help_center/sections/{id}/articles.json      list_articles (section_id)
- GET    /help_center/articles/{id}.json               get_article
- POST   /help_center/sections/{id}/articles.json      create_article
- PUT    /help_center/articles/{id}.json               update_article
- DELETE /help_center/articles/{id}.json               delete_article
- GET    /help_center/categories.json                  list_help_center_categories
- GET    /help_center/sections.json                    list_help_center_sections`,

	"talk": `# Talk

- GET /channels/voice/stats/current_queue_activity.json   get_talk_queue_activity
- GET /channels/voice/stats/agents_activity.json          get_talk_agents_activity
- GET /channels/voice/stats/account_overview.json         get_talk_account_overview`,

	"chat": `# Chat

- GET /chat/chats        list_chats
- GET /chat/chats/{id}   get_chat
- GET /chat/agents       list_chat_agents`,

	"authentication": `# Authentication

Zendesk API calls use HTTP Basic authentication with an API token:

    Authorization: Basic base64("{email}/token:{api_token}")

Configure ZENDESK_SUBDOMAIN, ZENDESK_EMAIL and ZENDESK_API_TOKEN. When any is
missing, every tool call returns a configuration error without contacting
Zendesk.

The HTTP transport additionally accepts a static bearer token. When
MCP_AUTH_TOKEN is set, requests to /mcp must carry
"Authorization: Bearer {token}"; when unset, authentication is disabled.`,

	"risk": `# Tool Risk Classification

- SAFE            read-only tools (list_, get_, search, execute_, count_, ...)
- MODERATE_RISK   tools whose name starts with create_ or update_
- HIGH_RISK       tools whose name starts with delete_

The level is prefixed to every tool description, returned by
list_tool_risks and served from zendesk://risk/{category}.`,
}
