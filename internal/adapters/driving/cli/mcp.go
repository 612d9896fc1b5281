package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/storage/memory"
	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driving/mcp"
	"github.com/MagickCodes/text-aufbereiter/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants. The
pipeline runs with local rules only; the connected assistant is the
language model.

Use --port to start an HTTP server instead.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "aufbereiter": {
        "command": "/path/to/aufbereiter",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Preparer: services.NewPrepareService(),
	}
	if store, err := newSessionStore(); err == nil {
		ports.Sessions = store
	} else {
		// Sessions survive only for the server's lifetime then.
		ports.Sessions = memory.NewSessionStore()
	}
	if store, err := newPresetStore(); err == nil {
		ports.Presets = store
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
