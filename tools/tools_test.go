package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ggoodman/zendesk-mcp-server-go/docs"
	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/risk"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
	"github.com/google/go-cmp/cmp"
)

var testCreds = zendesk.Credentials{Subdomain: "acme", Email: "agent@example.com", APIToken: "secret"}

func newContainer(t *testing.T, h http.HandlerFunc) *mcpservice.ToolsContainer {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := zendesk.New(testCreds, zendesk.WithBaseURL(srv.URL+"/api/v2"), zendesk.WithHTTPClient(srv.Client()))
	return mcpservice.NewToolsContainer(All(c)...)
}

func call(t *testing.T, tc *mcpservice.ToolsContainer, name, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := tc.CallTool(context.Background(), &mcp.CallToolRequestReceived{Name: name, Arguments: json.RawMessage(args)})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("call %s: empty content", name)
	}
	return res
}

func TestNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		if seen[n] {
			t.Fatalf("duplicate tool name %q", n)
		}
		seen[n] = true
	}
	for _, n := range []string{"list_tickets", "summarize_ticket_comments", "get_ticket_with_names", "search", "delete_automation", "get_chat", listToolRisksName} {
		if !seen[n] {
			t.Errorf("missing tool %q", n)
		}
	}
}

func TestRiskLabelsAgreeEverywhere(t *testing.T) {
	all := All(nil)
	names := Names()

	for _, tool := range all {
		want := risk.Label(risk.Classify(tool.Descriptor.Name))
		if !strings.HasPrefix(tool.Descriptor.Description, want) {
			t.Errorf("%s: description %q lacks %q", tool.Descriptor.Name, tool.Descriptor.Description, want)
		}
	}

	tc := mcpservice.NewToolsContainer(all...)
	res := call(t, tc, listToolRisksName, `{}`)
	var listed []toolRisk
	if err := json.Unmarshal([]byte(res.Content[0].Text), &listed); err != nil {
		t.Fatalf("decode list_tool_risks: %v", err)
	}
	if len(listed) != len(names) {
		t.Fatalf("list_tool_risks: want %d entries got %d", len(names), len(listed))
	}
	doc := docs.RiskCategory("all", names)
	for _, e := range listed {
		if e.Level != risk.Classify(e.Name) {
			t.Errorf("%s: listed %s", e.Name, e.Level)
		}
		if line := "- " + risk.Label(e.Level) + e.Name + "\n"; !strings.Contains(doc, line) {
			t.Errorf("risk doc lacks %q", line)
		}
	}
}

func TestListToolRisksFilters(t *testing.T) {
	tc := mcpservice.NewToolsContainer(All(nil)...)

	res := call(t, tc, listToolRisksName, `{"level":"high_risk"}`)
	var listed []toolRisk
	if err := json.Unmarshal([]byte(res.Content[0].Text), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) == 0 {
		t.Fatal("no high risk tools listed")
	}
	for _, e := range listed {
		if e.Level != risk.High || !strings.HasPrefix(e.Name, "delete_") {
			t.Errorf("unexpected entry %+v", e)
		}
	}

	res = call(t, tc, listToolRisksName, `{"level":"spicy"}`)
	if res.IsError {
		t.Fatal("unknown level should not be an error")
	}
	if !strings.Contains(res.Content[0].Text, "moderate_risk") {
		t.Fatalf("unknown level text: %q", res.Content[0].Text)
	}
}

func TestUpdateSendsOnlySuppliedFields(t *testing.T) {
	cases := []struct {
		tool string
		args string
		path string
		key  string
		want map[string]any
	}{
		{"update_ticket", `{"id":42,"status":"solved"}`, "/tickets/42.json", "ticket",
			map[string]any{"status": "solved"}},
		{"update_ticket", `{"id":42,"tags":[],"custom_fields":[{"id":7,"value":"gold"}]}`, "/tickets/42.json", "ticket",
			map[string]any{"tags": []any{}, "custom_fields": []any{map[string]any{"id": 7.0, "value": "gold"}}}},
		{"update_user", `{"id":3,"tags":[],"notes":""}`, "/users/3.json", "user",
			map[string]any{"tags": []any{}, "notes": ""}},
		{"update_organization", `{"id":5,"domain_names":[],"shared_tickets":false}`, "/organizations/5.json", "organization",
			map[string]any{"domain_names": []any{}, "shared_tickets": false}},
		{"update_group", `{"id":9,"name":"Tier 2"}`, "/groups/9.json", "group",
			map[string]any{"name": "Tier 2"}},
		{"update_macro", `{"id":11,"active":false,"actions":[]}`, "/macros/11.json", "macro",
			map[string]any{"active": false, "actions": []any{}}},
		{"update_view", `{"id":13,"conditions":{"all":[{"field":"status","operator":"is","value":"open"}]}}`, "/views/13.json", "view",
			map[string]any{"conditions": map[string]any{"all": []any{map[string]any{"field": "status", "operator": "is", "value": "open"}}}}},
		{"update_trigger", `{"id":15,"active":false,"conditions":{"any":[{"field":"priority","operator":"is","value":"urgent"}]}}`, "/triggers/15.json", "trigger",
			map[string]any{"active": false, "conditions": map[string]any{"any": []any{map[string]any{"field": "priority", "operator": "is", "value": "urgent"}}}}},
		{"update_automation", `{"id":17,"title":"Close stale tickets"}`, "/automations/17.json", "automation",
			map[string]any{"title": "Close stale tickets"}},
		{"update_article", `{"id":19,"label_names":[],"draft":false}`, "/help_center/articles/19.json", "article",
			map[string]any{"label_names": []any{}, "draft": false}},
	}

	covered := map[string]bool{}
	for _, c := range cases {
		covered[c.tool] = true
		t.Run(c.tool, func(t *testing.T) {
			var body map[string]map[string]any
			tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut || r.URL.Path != "/api/v2"+c.path {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				b, _ := io.ReadAll(r.Body)
				if err := json.Unmarshal(b, &body); err != nil {
					t.Errorf("decode body: %v", err)
				}
				_, _ = io.WriteString(w, `{}`)
			})

			res := call(t, tc, c.tool, c.args)
			if res.IsError {
				t.Fatalf("unexpected error result: %s", res.Content[0].Text)
			}
			if diff := cmp.Diff(map[string]map[string]any{c.key: c.want}, body); diff != "" {
				t.Fatalf("payload (-want +got):\n%s", diff)
			}
		})
	}
	for _, name := range Names() {
		if strings.HasPrefix(name, "update_") && !covered[name] {
			t.Errorf("%s has no payload case", name)
		}
	}
}

func TestGetTicketWithNames(t *testing.T) {
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/tickets/7.json":
			_, _ = io.WriteString(w, `{"ticket":{"id":7,"subject":"Printer on fire","requester_id":5,"group_id":9}}`)
		case "/api/v2/tickets/8.json":
			_, _ = io.WriteString(w, `{"ticket":"not an object"}`)
		case "/api/v2/tickets/9.json":
			_, _ = io.WriteString(w, `{"tickets":[]}`)
		case "/api/v2/users/5.json":
			_, _ = io.WriteString(w, `{"user":{"id":5,"name":"Ada"}}`)
		default:
			http.NotFound(w, r)
		}
	})

	res := call(t, tc, "get_ticket_with_names", `{"id":7}`)
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content[0].Text)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(res.Content[0].Text), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"ticket":         map[string]any{"id": 7.0, "subject": "Printer on fire", "requester_id": 5.0, "group_id": 9.0},
		"requester_name": "Ada",
		"group_name":     "9",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result (-want +got):\n%s", diff)
	}
	var structured map[string]any
	if err := json.Unmarshal(res.StructuredContent, &structured); err != nil {
		t.Fatalf("structured content: %v", err)
	}
	if diff := cmp.Diff(want, structured); diff != "" {
		t.Fatalf("structured content (-want +got):\n%s", diff)
	}

	for _, id := range []string{"8", "9"} {
		res := call(t, tc, "get_ticket_with_names", `{"id":`+id+`}`)
		if !res.IsError || !strings.Contains(res.Content[0].Text, "decode ticket") {
			t.Errorf("ticket %s: unexpected result %+v", id, res)
		}
	}
}

func TestListPageZeroMeansFirstPage(t *testing.T) {
	var query string
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"tickets":[]}`)
	})

	res := call(t, tc, "list_tickets", `{"page":0}`)
	if res.IsError {
		t.Fatalf("unexpected error result: %s", res.Content[0].Text)
	}
	if strings.Contains(query, "page=") {
		t.Fatalf("page 0 should not be forwarded, query %q", query)
	}
	if res := call(t, tc, "list_tickets", `{"page":-1}`); !res.IsError {
		t.Fatal("negative page accepted")
	}
}

func TestCreateTicketWrapsComment(t *testing.T) {
	var body map[string]map[string]any
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ticket":{"id":7}}`)
	})

	call(t, tc, "create_ticket", `{"subject":"Printer on fire","comment":"Help","priority":"urgent"}`)
	want := map[string]map[string]any{"ticket": {
		"subject":  "Printer on fire",
		"priority": "urgent",
		"comment":  map[string]any{"body": "Help"},
	}}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("payload (-want +got):\n%s", diff)
	}
}

func TestGetReturnsUpstreamEntity(t *testing.T) {
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/users.json":
			_, _ = io.WriteString(w, `{"users":[{"id":5,"name":"Ada"}],"count":1}`)
		case "/api/v2/users/5.json":
			_, _ = io.WriteString(w, `{"user":{"id":5,"name":"Ada"}}`)
		default:
			http.NotFound(w, r)
		}
	})

	var list struct {
		Users []struct{ ID int64 } `json:"users"`
	}
	res := call(t, tc, "list_users", `{}`)
	if err := json.Unmarshal([]byte(res.Content[0].Text), &list); err != nil || len(list.Users) != 1 {
		t.Fatalf("list_users: %v %q", err, res.Content[0].Text)
	}

	res = call(t, tc, "get_user", fmt.Sprintf(`{"id":%d}`, list.Users[0].ID))
	var got struct {
		User struct {
			ID   int64
			Name string
		} `json:"user"`
	}
	if err := json.Unmarshal([]byte(res.Content[0].Text), &got); err != nil {
		t.Fatalf("get_user: %v", err)
	}
	if got.User.ID != 5 || got.User.Name != "Ada" {
		t.Fatalf("get_user: %+v", got)
	}
}

func TestMissingCredentialsBecomeErrorResult(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer srv.Close()
	c := zendesk.New(zendesk.Credentials{Subdomain: "acme"}, zendesk.WithBaseURL(srv.URL))
	tc := mcpservice.NewToolsContainer(All(c)...)

	res := call(t, tc, "list_tickets", `{}`)
	if !res.IsError {
		t.Fatal("expected error result")
	}
	text := res.Content[0].Text
	if !strings.Contains(text, "ZENDESK_EMAIL") || !strings.Contains(text, "ZENDESK_API_TOKEN") {
		t.Fatalf("error text %q does not name missing settings", text)
	}
	if hits.Load() != 0 {
		t.Fatal("request sent without credentials")
	}
}

func TestUpstreamNotFoundBecomesErrorResult(t *testing.T) {
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"RecordNotFound"}`)
	})

	res := call(t, tc, "get_ticket", `{"id":999}`)
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(res.Content[0].Text, "404") {
		t.Fatalf("error text %q lacks status", res.Content[0].Text)
	}
}

func TestInvalidArgumentsSkipUpstream(t *testing.T) {
	var hits atomic.Int32
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })

	res := call(t, tc, "update_ticket", `{"id":1,"priority":"whenever"}`)
	if !res.IsError || !strings.HasPrefix(res.Content[0].Text, "invalid arguments") {
		t.Fatalf("unexpected result %+v", res)
	}
	if hits.Load() != 0 {
		t.Fatal("upstream called with invalid arguments")
	}
}

func TestSummarizeStopsAtMaxComments(t *testing.T) {
	var hits atomic.Int32
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/api/v2/tickets/9/comments.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page: got %q", got)
		}
		var cs []string
		for i := 1; i <= 25; i++ {
			cs = append(cs, fmt.Sprintf(`{"id":%d,"author_id":%d,"body":"comment %d","public":%t,"created_at":"2024-01-01T00:00:00Z"}`, i, 100+i, i, i%2 == 1))
		}
		fmt.Fprintf(w, `{"comments":[%s],"next_page":null,"count":25}`, strings.Join(cs, ","))
	})

	res := call(t, tc, "summarize_ticket_comments", `{"ticket_id":9,"max_comments":10}`)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Content[0].Text)
	}
	text := res.Content[0].Text
	for _, want := range []string{"Total comments: 25", "Showing: 10", "[10] author 110", "(internal)", "comment 10"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "comment 11") {
		t.Error("summary includes comments past the limit")
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("want 1 request got %d", n)
	}
}

func TestSummarizeFollowsPages(t *testing.T) {
	var hits atomic.Int32
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		count := 100
		if n == 2 {
			count = 20
		}
		var cs []string
		for i := 0; i < count; i++ {
			cs = append(cs, fmt.Sprintf(`{"id":%d,"body":"c"}`, i))
		}
		next := `"https://acme.zendesk.com/next"`
		if n == 2 {
			next = "null"
		}
		fmt.Fprintf(w, `{"comments":[%s],"next_page":%s,"count":120}`, strings.Join(cs, ","), next)
	})

	res := call(t, tc, "summarize_ticket_comments", `{"ticket_id":3,"max_comments":500}`)
	if !strings.Contains(res.Content[0].Text, "Showing: 120") {
		t.Fatalf("unexpected summary header:\n%.200s", res.Content[0].Text)
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("want 2 requests got %d", n)
	}
}

func TestCreateArticleUsesSectionPath(t *testing.T) {
	var path string
	var body map[string]map[string]any
	tc := newContainer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		_, _ = io.WriteString(w, `{"article":{"id":1}}`)
	})

	call(t, tc, "create_article", `{"section_id":12,"title":"Reset password","body":"<p>Steps</p>"}`)
	if path != "/api/v2/help_center/sections/12/articles.json" {
		t.Fatalf("path: got %q", path)
	}
	if _, ok := body["article"]["section_id"]; ok {
		t.Fatal("section_id leaked into payload")
	}
}
