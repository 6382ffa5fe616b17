package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"taglattice/internal/mcpsrv"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve read-only lattice tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		s := server.NewMCPServer("taglattice", "1.0.0",
			server.WithToolCapabilities(true),
		)
		mcpsrv.RegisterReadTools(s, d)
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
