package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ggoodman/zendesk-mcp-server-go/server"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestVersion(t *testing.T) {
	if out := execute(t, "version"); !strings.HasPrefix(out, "zendesk-mcp "+Version) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestToolsTable(t *testing.T) {
	out := execute(t, "tools")
	for _, want := range []string{"delete_ticket", "HIGH_RISK", "list_tool_risks"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s", want)
		}
	}
}

func TestToolsJSON(t *testing.T) {
	var catalog []server.CatalogEntry
	if err := json.Unmarshal([]byte(execute(t, "tools", "--json")), &catalog); err != nil {
		t.Fatal(err)
	}
	if len(catalog) != len(server.ToolNames()) {
		t.Fatalf("catalog has %d entries", len(catalog))
	}
}
