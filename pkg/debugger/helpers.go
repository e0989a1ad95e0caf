package debugger

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-delve/delve/pkg/proc"
	"github.com/go-delve/delve/service/api"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// getFunctionName extracts a human-readable function name from a thread
func getFunctionName(thread *api.Thread) string {
	if thread == nil || thread.Function == nil {
		return "unknown"
	}
	return thread.Function.Name()
}

// packageOf returns the package part of a fully qualified function name,
// e.g. "github.com/x/y/pkg/advanced" for "github.com/x/y/pkg/advanced.(*Frame).alloc".
func packageOf(funcName string) string {
	if funcName == "" || funcName == "unknown" {
		return ""
	}
	slash := strings.LastIndex(funcName, "/")
	dot := strings.Index(funcName[slash+1:], ".")
	if dot < 0 {
		return ""
	}
	return funcName[:slash+1+dot]
}

// locationOf builds a Location with a one-line summary
func locationOf(file string, line int, function string) types.Location {
	loc := types.Location{
		File:     file,
		Line:     line,
		Function: function,
		Package:  packageOf(function),
	}
	switch {
	case file == "":
		loc.Summary = "unknown location"
	case function == "" || function == "unknown":
		loc.Summary = fmt.Sprintf("At %s:%d", filepath.Base(file), line)
	default:
		loc.Summary = fmt.Sprintf("At %s:%d in %s", filepath.Base(file), line, function)
	}
	return loc
}

// getBreakpointStatus returns a human-readable breakpoint status
func getBreakpointStatus(bp *api.Breakpoint) string {
	if bp.Disabled {
		return "disabled"
	}
	if bp.TotalHitCount > 0 {
		return "hit"
	}
	return "enabled"
}

// getStateStatus returns a human-readable debugger state status
func getStateStatus(state *api.DebuggerState) string {
	if state == nil {
		return "unknown"
	}
	if state.Exited {
		return "exited"
	}
	if state.Running {
		return "running"
	}
	if state.NextInProgress {
		return "stepping"
	}
	return "stopped"
}

// getStateReason returns a human-readable reason for the current state
func getStateReason(state *api.DebuggerState) string {
	if state == nil {
		return "unknown"
	}
	if state.Exited {
		return fmt.Sprintf("process exited with status %d", state.ExitStatus)
	}
	if state.Running {
		return "process is running"
	}

	thread := state.CurrentThread
	if thread != nil && thread.Breakpoint != nil {
		switch thread.Breakpoint.Name {
		case proc.UnrecoveredPanic:
			return "unrecovered panic"
		case proc.FatalThrow:
			return "fatal runtime error"
		}
		return fmt.Sprintf("hit breakpoint %d at %s:%d", thread.Breakpoint.ID, filepath.Base(thread.File), thread.Line)
	}
	return "process is stopped"
}

// generateStateSummary creates a human-readable summary of the debugger state
func generateStateSummary(state *api.DebuggerState) string {
	if state == nil {
		return "debugger state unknown"
	}
	if state.Exited {
		return fmt.Sprintf("Process has exited with status %d", state.ExitStatus)
	}
	if state.Running {
		return "Process is running"
	}
	if state.CurrentThread != nil {
		return fmt.Sprintf("Stopped at %s:%d in %s",
			filepath.Base(state.CurrentThread.File),
			state.CurrentThread.Line,
			getFunctionName(state.CurrentThread))
	}
	return "Process is stopped"
}

// createDebugContext creates a debug context from a state
func createDebugContext(state *api.DebuggerState) types.DebugContext {
	context := types.DebugContext{
		Timestamp: time.Now(),
	}
	if state == nil {
		return context
	}

	context.DelveState = state
	context.Status = getStateStatus(state)
	context.Summary = generateStateSummary(state)
	context.StopReason = getStateReason(state)
	context.CurrentPosition = getCurrentLocation(state)

	if state.Exited {
		context.ExitStatus = state.ExitStatus
	}
	if state.CurrentThread != nil && state.CurrentThread.Breakpoint != nil && state.CurrentThread.Breakpoint.ID > 0 {
		context.BreakpointID = state.CurrentThread.Breakpoint.ID
	}
	return context
}

// createContinueResponse creates a ContinueResponse from a DebuggerState
func createContinueResponse(state *api.DebuggerState, err error) types.ContinueResponse {
	context := createDebugContext(state)
	context.Operation = "continue"
	if err != nil {
		context.ErrorMessage = err.Error()
		return types.ContinueResponse{Status: "error", Context: context}
	}
	return types.ContinueResponse{Status: "success", Context: context}
}

// createStepResponse creates a StepResponse from a DebuggerState
func createStepResponse(state *api.DebuggerState, stepType string, fromLocation *types.Location, err error) types.StepResponse {
	context := createDebugContext(state)
	context.Operation = "step " + stepType
	if err != nil {
		context.ErrorMessage = err.Error()
		return types.StepResponse{Status: "error", Context: context, StepType: stepType}
	}

	var toLocation types.Location
	if loc := getCurrentLocation(state); loc != nil {
		toLocation = *loc
	}
	if fromLocation == nil {
		fromLocation = &types.Location{Summary: "unknown location"}
	}

	return types.StepResponse{
		Status:       "success",
		Context:      context,
		StepType:     stepType,
		FromLocation: *fromLocation,
		ToLocation:   toLocation,
	}
}

// getCurrentLocation gets the current location from a DebuggerState
func getCurrentLocation(state *api.DebuggerState) *types.Location {
	if state == nil || state.CurrentThread == nil || state.CurrentThread.File == "" {
		return nil
	}
	loc := locationOf(state.CurrentThread.File, state.CurrentThread.Line, getFunctionName(state.CurrentThread))
	return &loc
}

// createLaunchResponse creates a response for the launch command
func createLaunchResponse(state *api.DebuggerState, program string, args []string) types.LaunchResponse {
	context := createDebugContext(state)
	context.Operation = "launch"
	return types.LaunchResponse{
		Context: &context,
		Program: program,
		Args:    args,
	}
}

// createCloseResponse creates a CloseResponse; state is the last state seen before closing
func createCloseResponse(state *api.DebuggerState, err error) types.CloseResponse {
	context := createDebugContext(state)
	context.Operation = "close"
	if err != nil {
		context.ErrorMessage = err.Error()
		return types.CloseResponse{Status: "error", Context: context}
	}

	exitCode := 0
	if state != nil && state.Exited {
		exitCode = state.ExitStatus
	}
	return types.CloseResponse{
		Status:   "success",
		Context:  context,
		ExitCode: exitCode,
		Summary:  fmt.Sprintf("Debug session closed with exit code %d", exitCode),
	}
}
