package mcpservice

import (
	"context"
	"errors"
	"testing"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/google/go-cmp/cmp"
)

func TestMatchTemplate(t *testing.T) {
	cases := []struct {
		tmpl, uri string
		want      map[string]string
		ok        bool
	}{
		{"zendesk://docs/{section}", "zendesk://docs/tickets", map[string]string{"section": "tickets"}, true},
		{"zendesk://docs/{section}", "zendesk://docs/", nil, false},
		{"zendesk://docs/{section}", "zendesk://docs/a/b", nil, false},
		{"zendesk://risk/{category}", "zendesk://docs/x", nil, false},
		{"x://{a}/y/{b}", "x://1/y/2", map[string]string{"a": "1", "b": "2"}, true},
		{"x://plain", "x://plain", map[string]string{}, true},
	}
	for _, c := range cases {
		got, ok := MatchTemplate(c.tmpl, c.uri)
		if ok != c.ok {
			t.Fatalf("%s vs %s: want ok=%v got %v", c.tmpl, c.uri, c.ok, ok)
		}
		if ok {
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("vars mismatch (-want +got):\n%s", diff)
			}
		}
	}
}

func TestResourcesContainerRead(t *testing.T) {
	rc := NewResourcesContainer()
	rc.AddTemplate(mcp.ResourceTemplate{URITemplate: "test://docs/{section}", Name: "docs"},
		func(ctx context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{{URI: uri, MimeType: "text/markdown", Text: "section " + vars["section"]}}, nil
		})
	rc.AddResource(mcp.Resource{URI: "test://docs/a", Name: "a"})

	got, err := rc.ReadResource(context.Background(), "test://docs/a")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got[0].Text != "section a" {
		t.Fatalf("want %q got %q", "section a", got[0].Text)
	}
	if _, err := rc.ReadResource(context.Background(), "other://x"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("want ErrResourceNotFound, got %v", err)
	}

	list, _ := rc.ListResources(context.Background(), nil)
	if len(list.Items) != 1 {
		t.Fatalf("want 1 resource got %d", len(list.Items))
	}
	tmpls, _ := rc.ListResourceTemplates(context.Background(), nil)
	if len(tmpls.Items) != 1 || tmpls.Items[0].URITemplate != "test://docs/{section}" {
		t.Fatalf("unexpected templates %+v", tmpls.Items)
	}
}
