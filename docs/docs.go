// Package docs serves the static API documentation and the tool risk
// listings exposed as resources. Lookups never fail: an unknown key yields a
// listing of the valid keys.
package docs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ggoodman/zendesk-mcp-server-go/risk"
)

// SectionNames lists documentation sections in presentation order.
var SectionNames = []string{
	"overview", "tickets", "users", "organizations", "groups", "macros",
	"views", "triggers", "automations", "search", "help_center", "talk",
	"chat", "authentication", "risk",
}

// Categories lists the valid risk categories.
var Categories = []string{"all", risk.Safe.Category(), risk.Moderate.Category(), risk.High.Category()}

// Section returns the documentation for name.
func Section(name string) string {
	if text, ok := sections[name]; ok {
		return text
	}
	return fmt.Sprintf("Unknown documentation section %q. Available sections: %s", name, strings.Join(SectionNames, ", "))
}

// RiskCategory renders the tool names belonging to category. Levels are computed
// with risk.Classify over the names.
func RiskCategory(category string, tools []string) string {
	if category == "all" {
		var b strings.Builder
		b.WriteString("# Tool Risk Classification\n")
		for _, l := range risk.Levels {
			b.WriteString("\n")
			writeLevel(&b, l, tools)
		}
		return b.String()
	}
	l, ok := risk.ParseLevel(category)
	if !ok {
		return fmt.Sprintf("Unknown risk category %q. Available categories: %s", category, strings.Join(Categories, ", "))
	}
	var b strings.Builder
	writeLevel(&b, l, tools)
	return b.String()
}

func writeLevel(b *strings.Builder, l risk.Level, tools []string) {
	var names []string
	for _, t := range tools {
		if risk.Classify(t) == l {
			names = append(names, t)
		}
	}
	slices.Sort(names)
	fmt.Fprintf(b, "## %s (%d tools)\n", l, len(names))
	for _, n := range names {
		fmt.Fprintf(b, "- %s%s\n", risk.Label(l), n)
	}
}
