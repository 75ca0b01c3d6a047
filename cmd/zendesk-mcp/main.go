// Command zendesk-mcp serves the Zendesk API as MCP tools and resources over
// streamable HTTP or stdio.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
