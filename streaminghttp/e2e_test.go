package streaminghttp_test

import (
	"net/http"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type authRT struct {
	base http.RoundTripper
}

func (a authRT) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	return a.base.RoundTrip(r)
}

func TestSDKClientE2E(t *testing.T) {
	f := newFixture(t, token)
	ctx := t.Context()

	client := sdk.NewClient(&sdk.Implementation{Name: "e2e", Version: "0.0.0"}, &sdk.ClientOptions{})
	transport := &sdk.StreamableClientTransport{
		Endpoint:   f.srv.URL + "/mcp",
		HTTPClient: &http.Client{Transport: authRT{base: http.DefaultTransport}},
	}
	cs, err := client.Connect(ctx, transport, &sdk.ClientSessionOptions{})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer cs.Close()

	tools, err := cs.ListTools(ctx, &sdk.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	var found bool
	for _, tool := range tools.Tools {
		if tool.Name == "get_ticket" {
			found = true
			if !strings.HasPrefix(tool.Description, "[SAFE] ") {
				t.Fatalf("description %q", tool.Description)
			}
		}
	}
	if !found {
		t.Fatal("get_ticket not listed")
	}

	res, err := cs.CallTool(ctx, &sdk.CallToolParams{Name: "get_ticket", Arguments: map[string]any{"id": 1}})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if res.IsError || len(res.Content) == 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	text, ok := res.Content[0].(*sdk.TextContent)
	if !ok || !strings.Contains(text.Text, "Printer on fire") {
		t.Fatalf("unexpected content %#v", res.Content[0])
	}

	rr, err := cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: "zendesk://risk/high_risk"})
	if err != nil {
		t.Fatalf("ReadResource failed: %v", err)
	}
	if len(rr.Contents) == 0 || !strings.Contains(rr.Contents[0].Text, "delete_ticket") {
		t.Fatalf("risk resource %+v", rr.Contents)
	}
}
