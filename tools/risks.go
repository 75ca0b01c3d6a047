package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ggoodman/zendesk-mcp-server-go/docs"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/risk"
)

const listToolRisksName = "list_tool_risks"

type listToolRisksArgs struct {
	Level *string `json:"level,omitempty" jsonschema:"description=Only list tools at this level (safe / moderate_risk / high_risk)"`
}

type toolRisk struct {
	Name        string     `json:"name"`
	Level       risk.Level `json:"risk_level"`
	Description string     `json:"description"`
}

// listToolRisks reports the risk level of every tool, itself included.
// descs holds the registered descriptions, which already carry the label.
func listToolRisks(names []string, descs map[string]string) mcpservice.StaticTool {
	const desc = "List every tool with its risk level"
	names = append(names, listToolRisksName)
	descs[listToolRisksName] = risk.Describe(listToolRisksName, desc)

	return mcpservice.NewTool(listToolRisksName, func(ctx context.Context, w mcpservice.ToolResponseWriter, r *mcpservice.ToolRequest[listToolRisksArgs]) error {
		var filter risk.Level
		if lvl := r.Args().Level; lvl != nil && *lvl != "" && *lvl != "all" {
			l, ok := risk.ParseLevel(*lvl)
			if !ok {
				return w.AppendText(fmt.Sprintf("Unknown risk level %q. Valid levels: %s", *lvl, strings.Join(docs.Categories, ", ")))
			}
			filter = l
		}
		out := make([]toolRisk, 0, len(names))
		for _, n := range names {
			l := risk.Classify(n)
			if filter != "" && l != filter {
				continue
			}
			out = append(out, toolRisk{Name: n, Level: l, Description: descs[n]})
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		return w.AppendText(string(b))
	}, options(listToolRisksName, desc)...)
}
