package mcp

import (
	"context"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

const noSession = "no active debug session, please start one with debug_worksheet first"

func (s *WorksheetServer) addDebugWorksheetTool() {
	tool := mcp.NewTool("debug_worksheet",
		mcp.WithDescription("Build the worksheet program without optimizations and start it under the debugger, stopped before main"),
		mcp.WithString("sheet",
			mcp.Description("Worksheet name: basics, advanced or all"),
		),
		mcp.WithString("variant",
			mcp.Description("buggy (default) or fixed"),
		),
		mcp.WithArray("enable",
			mcp.Description("Disabled exercises or crash paths to opt into"),
		),
	)

	s.server.AddTool(tool, s.DebugWorksheet)
}

func (s *WorksheetServer) addCloseTool() {
	tool := mcp.NewTool("close",
		mcp.WithDescription("Close the current debugging session"),
	)

	s.server.AddTool(tool, s.Close)
}

func (s *WorksheetServer) addSetBreakpointTool() {
	tool := mcp.NewTool("set_breakpoint",
		mcp.WithDescription("Set a breakpoint at a specific file location"),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the file"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("Line number"),
		),
		mcp.WithString("condition",
			mcp.Description("Only stop when this Go expression is true"),
		),
	)

	s.server.AddTool(tool, s.SetBreakpoint)
}

func (s *WorksheetServer) addSetMarkerBreakpointTool() {
	tool := mcp.NewTool("set_marker_breakpoint",
		mcp.WithDescription("Set a breakpoint on a named BREAKPOINT marker in the worksheet sources"),
		mcp.WithString("marker",
			mcp.Required(),
			mcp.Description("Marker name, e.g. find-minimum"),
		),
	)

	s.server.AddTool(tool, s.SetMarkerBreakpoint)
}

func (s *WorksheetServer) addListBreakpointsTool() {
	tool := mcp.NewTool("list_breakpoints",
		mcp.WithDescription("List all currently set breakpoints"),
	)

	s.server.AddTool(tool, s.ListBreakpoints)
}

func (s *WorksheetServer) addRemoveBreakpointTool() {
	tool := mcp.NewTool("remove_breakpoint",
		mcp.WithDescription("Remove a breakpoint by its ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("ID of the breakpoint to remove"),
		),
	)

	s.server.AddTool(tool, s.RemoveBreakpoint)
}

func (s *WorksheetServer) addContinueTool() {
	tool := mcp.NewTool("continue",
		mcp.WithDescription("Continue execution until next breakpoint or program end"),
	)

	s.server.AddTool(tool, s.Continue)
}

func (s *WorksheetServer) addStepTool() {
	tool := mcp.NewTool("step",
		mcp.WithDescription("Step into the next function call"),
	)

	s.server.AddTool(tool, s.Step)
}

func (s *WorksheetServer) addStepOverTool() {
	tool := mcp.NewTool("step_over",
		mcp.WithDescription("Step over the next function call"),
	)

	s.server.AddTool(tool, s.StepOver)
}

func (s *WorksheetServer) addStepOutTool() {
	tool := mcp.NewTool("step_out",
		mcp.WithDescription("Step out of the current function"),
	)

	s.server.AddTool(tool, s.StepOut)
}

func (s *WorksheetServer) addExamineVariableTool() {
	tool := mcp.NewTool("examine_variable",
		mcp.WithDescription("Examine the value of a variable or expression"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the variable or expression to examine"),
		),
		mcp.WithNumber("depth",
			mcp.Description("Depth for examining nested structures (default: 1)"),
		),
	)

	s.server.AddTool(tool, s.ExamineVariable)
}

func (s *WorksheetServer) addStacktraceTool() {
	tool := mcp.NewTool("stacktrace",
		mcp.WithDescription("Show the call stack of the current goroutine"),
		mcp.WithNumber("depth",
			mcp.Description("Maximum number of frames (default: 20)"),
		),
	)

	s.server.AddTool(tool, s.Stacktrace)
}

func (s *WorksheetServer) addGetDebuggerOutputTool() {
	tool := mcp.NewTool("get_debugger_output",
		mcp.WithDescription("Get captured stdout and stderr from the debugged program"),
	)

	s.server.AddTool(tool, s.GetDebuggerOutput)
}

// DebugWorksheet handles the debug_worksheet command
func (s *WorksheetServer) DebugWorksheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received debug_worksheet request")

	sheet, err := stringArg(request, "sheet", catalog.All)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if _, err := catalog.Lookup(sheet); err != nil {
		return newErrorResult("%v", err), nil
	}
	variant, err := stringArg(request, "variant", s.cfg.Variant)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if _, err := worksheet.ParseVariant(variant); err != nil {
		return newErrorResult("%v", err), nil
	}
	enable, err := stringSliceArg(request, "enable")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if err := catalog.ValidateEnable(enable); err != nil {
		return newErrorResult("%v", err), nil
	}

	// Make sure no debug session is already active
	if s.debugClient.IsConnected() {
		if _, err := s.debugClient.Close(); err != nil {
			logger.Error("Failed to close existing debug session", "error", err)
			return newErrorResult("failed to close existing debug session: %v", err), nil
		}
		s.debugClient = debugger.NewClient()
	}

	args := []string{"run", sheet, "--variant", variant}
	for _, name := range enable {
		args = append(args, "--enable", name)
	}

	response, err := s.debugClient.BuildAndLaunch(s.cfg.SourceRoot, s.cfg.Tour.Package, args)
	if err != nil {
		logger.Error("Failed to debug worksheet", "error", err, "sheet", sheet)
		return newErrorResult("failed to debug worksheet: %v", err), nil
	}

	return newToolResultJSON(response)
}

// Close handles the close command
func (s *WorksheetServer) Close(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received close request")

	if !s.debugClient.IsConnected() {
		return mcp.NewToolResultText("No active debug session to close"), nil
	}

	response, err := s.debugClient.Close()
	if err != nil {
		logger.Error("Failed to close debug session", "error", err)
		return newErrorResult("failed to close debug session: %v", err), nil
	}

	// Reinitialize the debug client to ensure it's ready for the next session
	s.debugClient = debugger.NewClient()

	return newToolResultJSON(response)
}

// SetBreakpoint handles the set_breakpoint command
func (s *WorksheetServer) SetBreakpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received set_breakpoint request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	file, err := requiredString(request, "file")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if _, err := requiredNumber(request, "line"); err != nil {
		return newErrorResult("%v", err), nil
	}
	line, err := intArg(request, "line", 0)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	condition, err := stringArg(request, "condition", "")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	breakpoint, err := s.debugClient.SetBreakpoint(file, line, condition)
	if err != nil {
		logger.Error("Failed to set breakpoint", "error", err)
		return newErrorResult("failed to set breakpoint: %v", err), nil
	}

	return newToolResultJSON(types.BreakpointResponse{
		Status:     "success",
		Breakpoint: *breakpoint,
	})
}

// SetMarkerBreakpoint handles the set_marker_breakpoint command
func (s *WorksheetServer) SetMarkerBreakpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received set_marker_breakpoint request")

	name, err := requiredString(request, "marker")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	markers, err := debugger.ScanMarkers(filepath.Join(s.cfg.SourceRoot, "pkg"))
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	marker, ok := debugger.FindMarker(markers, name)
	if !ok {
		names := make([]string, 0, len(markers))
		for _, m := range markers {
			names = append(names, m.Name)
		}
		return newErrorResult("unknown marker %q (want one of %v)", name, names), nil
	}

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	breakpoint, err := s.debugClient.SetMarkerBreakpoint(marker)
	if err != nil {
		logger.Error("Failed to set marker breakpoint", "error", err, "marker", name)
		return newErrorResult("failed to set breakpoint on %s: %v", name, err), nil
	}

	return newToolResultJSON(types.BreakpointResponse{
		Status:     "success",
		Breakpoint: *breakpoint,
	})
}

// ListBreakpoints handles the list_breakpoints command
func (s *WorksheetServer) ListBreakpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received list_breakpoints request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	breakpoints, err := s.debugClient.ListBreakpoints()
	if err != nil {
		logger.Error("Failed to list breakpoints", "error", err)
		return newErrorResult("failed to list breakpoints: %v", err), nil
	}

	return newToolResultJSON(types.BreakpointResponse{
		Status:         "success",
		AllBreakpoints: breakpoints,
	})
}

// RemoveBreakpoint handles the remove_breakpoint command
func (s *WorksheetServer) RemoveBreakpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received remove_breakpoint request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	if _, err := requiredNumber(request, "id"); err != nil {
		return newErrorResult("%v", err), nil
	}
	id, err := intArg(request, "id", 0)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	breakpoint, err := s.debugClient.RemoveBreakpoint(id)
	if err != nil {
		logger.Error("Failed to remove breakpoint", "error", err)
		return newErrorResult("failed to remove breakpoint: %v", err), nil
	}

	return newToolResultJSON(types.BreakpointResponse{
		Status:     "success",
		Breakpoint: *breakpoint,
	})
}

// Continue handles the continue command
func (s *WorksheetServer) Continue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received continue request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	response, err := s.debugClient.Continue()
	if err != nil {
		logger.Error("Failed to continue execution", "error", err)
		return newErrorResult("failed to continue execution: %v", err), nil
	}

	return newToolResultJSON(response)
}

// Step handles the step command
func (s *WorksheetServer) Step(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received step request")
	return s.stepResult(s.debugClient.Step)
}

// StepOver handles the step_over command
func (s *WorksheetServer) StepOver(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received step_over request")
	return s.stepResult(s.debugClient.StepOver)
}

// StepOut handles the step_out command
func (s *WorksheetServer) StepOut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received step_out request")
	return s.stepResult(s.debugClient.StepOut)
}

func (s *WorksheetServer) stepResult(step func() (types.StepResponse, error)) (*mcp.CallToolResult, error) {
	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	response, err := step()
	if err != nil {
		logger.Error("Failed to step", "error", err)
		return newErrorResult("failed to step: %v", err), nil
	}

	return newToolResultJSON(response)
}

// ExamineVariable handles the examine_variable command
func (s *WorksheetServer) ExamineVariable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received examine_variable request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	name, err := requiredString(request, "name")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	depth, err := intArg(request, "depth", 1)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	variable, err := s.debugClient.EvalVariable(name, depth)
	if err != nil {
		logger.Error("Failed to examine variable", "error", err, "name", name)
		return newErrorResult("failed to examine variable: %v", err), nil
	}

	return newToolResultJSON(types.EvalVariableResponse{
		Status:   "success",
		Variable: *variable,
	})
}

// Stacktrace handles the stacktrace command
func (s *WorksheetServer) Stacktrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received stacktrace request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	depth, err := intArg(request, "depth", 20)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	frames, err := s.debugClient.Stacktrace(depth)
	if err != nil {
		logger.Error("Failed to get stack trace", "error", err)
		return newErrorResult("failed to get stack trace: %v", err), nil
	}

	return newToolResultJSON(types.StacktraceResponse{
		Status: "success",
		Frames: frames,
	})
}

// GetDebuggerOutput handles the get_debugger_output command
func (s *WorksheetServer) GetDebuggerOutput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received get_debugger_output request")

	if !s.debugClient.IsConnected() {
		return newErrorResult(noSession), nil
	}

	output, err := s.debugClient.GetDebuggerOutput()
	if err != nil {
		logger.Error("Failed to get debugger output", "error", err)
		return newErrorResult("failed to get debugger output: %v", err), nil
	}

	return newToolResultJSON(output)
}
