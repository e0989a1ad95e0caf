package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sunfmin/go-debug-worksheets/pkg/config"
	"github.com/sunfmin/go-debug-worksheets/pkg/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
)

// WorksheetServer exposes the worksheets and a debugger session over MCP
type WorksheetServer struct {
	server      *server.MCPServer
	debugClient *debugger.Client
	cfg         config.Config
	version     string
}

// NewWorksheetServer creates a new MCP server with worksheet and debug tools
func NewWorksheetServer(version string, cfg config.Config) *WorksheetServer {
	s := &WorksheetServer{
		server:      server.NewMCPServer("Go Debug Worksheets", version),
		debugClient: debugger.NewClient(),
		cfg:         cfg,
		version:     version,
	}

	s.registerTools()

	return s
}

// Server returns the underlying MCP server
func (s *WorksheetServer) Server() *server.MCPServer {
	return s.server
}

// DebugClient returns the debug client
func (s *WorksheetServer) DebugClient() *debugger.Client {
	return s.debugClient
}

// Serve runs the server on stdin/stdout until the client disconnects
func (s *WorksheetServer) Serve() error {
	logger.Info("Serving MCP over stdio", "version", s.version)
	return server.ServeStdio(s.server)
}

func (s *WorksheetServer) registerTools() {
	s.addPingTool()

	// Worksheet tools
	s.addListExercisesTool()
	s.addRunSheetTool()
	s.addCompareVariantsTool()
	s.addFindMinimumTool()
	s.addReverseStringTool()
	s.addCheckNumberTool()
	s.addDivideTool()
	s.addTourTool()

	// Debug tools
	s.addDebugWorksheetTool()
	s.addCloseTool()
	s.addSetBreakpointTool()
	s.addSetMarkerBreakpointTool()
	s.addListBreakpointsTool()
	s.addRemoveBreakpointTool()
	s.addContinueTool()
	s.addStepTool()
	s.addStepOverTool()
	s.addStepOutTool()
	s.addExamineVariableTool()
	s.addStacktraceTool()
	s.addGetDebuggerOutputTool()
}

func (s *WorksheetServer) addPingTool() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Simple ping tool to test connection"),
	)

	s.server.AddTool(pingTool, s.Ping)
}

// Ping handles the ping command
func (s *WorksheetServer) Ping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received ping request")

	pong, err := s.debugClient.Ping()
	if err != nil {
		return newErrorResult("ping failed: %v", err), nil
	}
	return mcp.NewToolResultText(pong), nil
}

// newErrorResult creates a tool result that represents an error
func newErrorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := mcp.NewToolResultText(fmt.Sprintf("Error: "+format, args...))
	result.IsError = true
	return result
}

func newToolResultJSON(data interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return newErrorResult("failed to serialize data: %v", err), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
