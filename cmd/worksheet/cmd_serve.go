package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/mcp"
)

// serveCmd exposes the worksheets and a debugger over MCP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve worksheet and debugger tools over MCP on stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(os.Stderr)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("Starting MCP worksheet server", "version", Version)
	return mcp.NewWorksheetServer(Version, cfg).Serve()
}
