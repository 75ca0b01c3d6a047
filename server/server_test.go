package server

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ggoodman/zendesk-mcp-server-go/docs"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

func capabilities(t *testing.T, srv mcpservice.ServerCapabilities) (mcpservice.ToolsCapability, mcpservice.ResourcesCapability) {
	t.Helper()
	ctx := context.Background()
	tc, ok, err := srv.GetToolsCapability(ctx)
	if err != nil || !ok {
		t.Fatalf("tools capability: ok=%v err=%v", ok, err)
	}
	rc, ok, err := srv.GetResourcesCapability(ctx)
	if err != nil || !ok {
		t.Fatalf("resources capability: ok=%v err=%v", ok, err)
	}
	return tc, rc
}

func TestBuildRegistersFullToolTable(t *testing.T) {
	tc, _ := capabilities(t, Build(zendesk.New(zendesk.Credentials{})))
	page, err := tc.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := ToolNames()
	if len(page.Items) != len(names) {
		t.Fatalf("want %d tools got %d", len(names), len(page.Items))
	}
	for i, tool := range page.Items {
		if tool.Name != names[i] {
			t.Fatalf("tool %d: want %s got %s", i, names[i], tool.Name)
		}
	}
}

func TestBuildReturnsFreshInstances(t *testing.T) {
	c := zendesk.New(zendesk.Credentials{})
	a, _ := capabilities(t, Build(c))
	b, _ := capabilities(t, Build(c))
	if a == b {
		t.Fatal("tool capabilities shared between instances")
	}
}

func TestServerInfoOptions(t *testing.T) {
	info, err := Build(nil, WithName("helpdesk"), WithVersion("9.9.9")).GetServerInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "helpdesk" || info.Version != "9.9.9" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestResourcesListEveryKey(t *testing.T) {
	_, rc := capabilities(t, Build(nil))
	ctx := context.Background()

	res, err := rc.ListResources(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := len(docs.SectionNames) + len(docs.Categories); len(res.Items) != want {
		t.Fatalf("want %d resources got %d", want, len(res.Items))
	}

	tmpls, err := rc.ListResourceTemplates(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tmpls.Items) != 2 || tmpls.Items[0].URITemplate != DocsTemplate || tmpls.Items[1].URITemplate != RiskTemplate {
		t.Fatalf("unexpected templates %+v", tmpls.Items)
	}

	for _, r := range res.Items {
		contents, err := rc.ReadResource(ctx, r.URI)
		if err != nil {
			t.Fatalf("read %s: %v", r.URI, err)
		}
		if len(contents) != 1 || contents[0].Text == "" {
			t.Fatalf("read %s: empty", r.URI)
		}
	}
}

func TestReadUnknownKeysListValidOnes(t *testing.T) {
	_, rc := capabilities(t, Build(nil))
	ctx := context.Background()

	contents, err := rc.ReadResource(ctx, "zendesk://docs/billing")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contents[0].Text, "tickets") {
		t.Fatalf("unknown section text %q", contents[0].Text)
	}

	contents, err = rc.ReadResource(ctx, "zendesk://risk/extreme")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contents[0].Text, "high_risk") {
		t.Fatalf("unknown category text %q", contents[0].Text)
	}

	if _, err := rc.ReadResource(ctx, "zendesk://elsewhere/x"); !errors.Is(err, mcpservice.ErrResourceNotFound) {
		t.Fatalf("want ErrResourceNotFound got %v", err)
	}
}

func TestCatalogCarriesSchemas(t *testing.T) {
	for _, e := range Catalog() {
		if e.InputSchema == nil {
			t.Fatalf("%s: nil schema", e.Name)
		}
		if !strings.HasPrefix(e.Description, "["+string(e.RiskLevel)+"]") {
			t.Fatalf("%s: description %q does not match level %s", e.Name, e.Description, e.RiskLevel)
		}
	}
}
