package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ggoodman/zendesk-mcp-server-go/server"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog with risk levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := server.Catalog()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRISK")
			for _, e := range catalog {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.RiskLevel)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full catalog with input schemas as JSON")
	return cmd
}
