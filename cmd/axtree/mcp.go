package main

import (
	"fmt"
	"os"

	"github.com/aretw0/axtree/internal/cli"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves axtree as an MCP server over stdio.

Tools:
- explore: one request on an element, with the same options as "axtree explore".
- list_devices: the configured devices.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ServeMCP(runOptions(cmd)); err != nil {
			fmt.Fprintf(os.Stderr, "MCP Server execution failed: %v\n", err)
			os.Exit(domain.ExitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
