package mcp

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfmin/go-debug-worksheets/pkg/config"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

func newTestServer() *WorksheetServer {
	cfg := config.Default()
	cfg.SourceRoot = "../.."
	return NewWorksheetServer("test-version", cfg)
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func getTextContent(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if tc, ok := mcp.AsTextContent(result.Content[0]); ok {
		return tc.Text
	}
	return ""
}

func decode(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError, getTextContent(result))
	require.NoError(t, json.Unmarshal([]byte(getTextContent(result)), v))
}

func TestPing(t *testing.T) {
	server := newTestServer()
	result, err := server.Ping(context.Background(), newRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, getTextContent(result), "Pong! Debugger is not connected")
}

func TestListExercises(t *testing.T) {
	server := newTestServer()
	result, err := server.ListExercises(context.Background(), newRequest(nil))
	require.NoError(t, err)

	var sheets []types.SheetInfo
	decode(t, result, &sheets)
	require.Len(t, sheets, 2)
	assert.Equal(t, "basics", sheets[0].Name)
	assert.Equal(t, "advanced", sheets[1].Name)
	require.Len(t, sheets[1].Exercises, 10)
	assert.Equal(t, 9, sheets[1].Exercises[8].Number)
	assert.True(t, sheets[1].Exercises[8].Disabled)
}

func TestRunSheet(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	result, err := server.RunSheet(ctx, newRequest(map[string]interface{}{"sheet": "advanced"}))
	require.NoError(t, err)
	var run types.RunResponse
	decode(t, result, &run)
	assert.Equal(t, "advanced", run.Sheet)
	assert.Equal(t, "buggy", run.Variant)
	assert.Contains(t, run.Narration, "Minimum value: 50\n")
	assert.Empty(t, run.Panic)

	result, err = server.RunSheet(ctx, newRequest(map[string]interface{}{
		"sheet":   "advanced",
		"variant": "fixed",
	}))
	require.NoError(t, err)
	decode(t, result, &run)
	assert.Contains(t, run.Narration, "Minimum value: 3\n")

	// An opted-in crash path is reported, not propagated
	result, err = server.RunSheet(ctx, newRequest(map[string]interface{}{
		"sheet":  "basics",
		"enable": []interface{}{"fix-the-bug"},
	}))
	require.NoError(t, err)
	decode(t, result, &run)
	assert.Contains(t, run.Panic, "fix-the-bug")
	assert.Contains(t, run.Narration, "panic:")
}

func TestRunSheetRejectsBadArguments(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	for _, args := range []map[string]interface{}{
		{"sheet": "nope"},
		{"variant": "sideways"},
		{"enable": []interface{}{"not-a-switch"}},
		{"sheet": 3.0},
		{"enable": "memory"},
	} {
		result, err := server.RunSheet(ctx, newRequest(args))
		require.NoError(t, err)
		assert.True(t, result.IsError, "%v", args)
		assert.Contains(t, getTextContent(result), "Error: ")
	}
}

func TestCompareVariants(t *testing.T) {
	server := newTestServer()
	result, err := server.CompareVariants(context.Background(), newRequest(map[string]interface{}{
		"sheet":   "advanced",
		"context": 0.0,
	}))
	require.NoError(t, err)

	var diffs []types.CompareResponse
	decode(t, result, &diffs)
	require.Len(t, diffs, 1)
	assert.False(t, diffs[0].Same)
	assert.Contains(t, diffs[0].Diff, "-Minimum value: 50")
	assert.Contains(t, diffs[0].Diff, "+Minimum value: 3")
}

func TestFindMinimum(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()
	numbers := []interface{}{50.0, 10.0, 80.0, 5.0, 90.0, 3.0, 100.0}

	result, err := server.FindMinimum(ctx, newRequest(map[string]interface{}{"numbers": numbers}))
	require.NoError(t, err)
	var res types.ResultResponse
	decode(t, result, &res)
	assert.Equal(t, 50.0, res.Result)
	assert.Equal(t, "buggy", res.Variant)

	result, err = server.FindMinimum(ctx, newRequest(map[string]interface{}{"numbers": numbers, "variant": "fixed"}))
	require.NoError(t, err)
	decode(t, result, &res)
	assert.Equal(t, 3.0, res.Result)

	// An empty list has no minimum and yields 0 in both variants
	for _, variant := range []string{"buggy", "fixed"} {
		result, err = server.FindMinimum(ctx, newRequest(map[string]interface{}{
			"numbers": []interface{}{},
			"variant": variant,
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError, variant)
		decode(t, result, &res)
		assert.Equal(t, 0.0, res.Result, variant)
	}

	result, err = server.FindMinimum(ctx, newRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = server.FindMinimum(ctx, newRequest(map[string]interface{}{"numbers": []interface{}{1.5}}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestReverseStringAndCheckNumber(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	result, err := server.ReverseString(ctx, newRequest(map[string]interface{}{"text": "Hello, World!"}))
	require.NoError(t, err)
	var res types.ResultResponse
	decode(t, result, &res)
	assert.Equal(t, "!dlroW ,olleH", res.Result)

	for n, want := range map[float64]string{5: "Positive", -3: "Negative", 0: "Zero"} {
		result, err = server.CheckNumber(ctx, newRequest(map[string]interface{}{"n": n}))
		require.NoError(t, err)
		decode(t, result, &res)
		assert.Equal(t, want, res.Result)
	}

	result, err = server.CheckNumber(ctx, newRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestDivide(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	result, err := server.Divide(ctx, newRequest(map[string]interface{}{"a": 10.0, "b": 2.0}))
	require.NoError(t, err)
	var res types.ResultResponse
	decode(t, result, &res)
	assert.Equal(t, 5.0, res.Result)

	result, err = server.Divide(ctx, newRequest(map[string]interface{}{"a": 10.0, "b": 0.0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getTextContent(result), "division by zero")

	result, err = server.Divide(ctx, newRequest(map[string]interface{}{"a": 10.0, "b": 0.0, "checked": false}))
	require.NoError(t, err)
	decode(t, result, &res)
	assert.Equal(t, "+Inf", res.Result)
}

func TestDebugToolsWithoutSession(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"set_breakpoint":      server.SetBreakpoint,
		"list_breakpoints":    server.ListBreakpoints,
		"remove_breakpoint":   server.RemoveBreakpoint,
		"continue":            server.Continue,
		"step":                server.Step,
		"step_over":           server.StepOver,
		"step_out":            server.StepOut,
		"examine_variable":    server.ExamineVariable,
		"stacktrace":          server.Stacktrace,
		"get_debugger_output": server.GetDebuggerOutput,
	}
	for name, handler := range handlers {
		result, err := handler(ctx, newRequest(map[string]interface{}{"file": "x.go", "line": 1.0, "id": 1.0, "name": "x"}))
		require.NoError(t, err, name)
		assert.True(t, result.IsError, name)
		assert.Contains(t, getTextContent(result), "no active debug session", name)
	}

	result, err := server.Close(ctx, newRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "No active debug session to close", getTextContent(result))
}

func TestSetMarkerBreakpointUnknownMarker(t *testing.T) {
	server := newTestServer()
	result, err := server.SetMarkerBreakpoint(context.Background(), newRequest(map[string]interface{}{"marker": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, getTextContent(result), "find-minimum")
}

// TestDebugWorksheetSession drives a debug session through the tool handlers.
// Set SKIP_INTEGRATION_TESTS=1 to skip this test
func TestDebugWorksheetSession(t *testing.T) {
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("Skipping integration test")
	}
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	server := newTestServer()
	ctx := context.Background()
	defer server.Close(ctx, newRequest(nil))

	result, err := server.DebugWorksheet(ctx, newRequest(map[string]interface{}{"sheet": "advanced"}))
	require.NoError(t, err)
	require.False(t, result.IsError, getTextContent(result))

	result, err = server.SetMarkerBreakpoint(ctx, newRequest(map[string]interface{}{"marker": "find-minimum"}))
	require.NoError(t, err)
	var bp types.BreakpointResponse
	decode(t, result, &bp)
	assert.Equal(t, "find-minimum", bp.Breakpoint.Description)

	result, err = server.Continue(ctx, newRequest(nil))
	require.NoError(t, err)
	var cont types.ContinueResponse
	decode(t, result, &cont)
	assert.Equal(t, "stopped", cont.Context.Status)

	result, err = server.ExamineVariable(ctx, newRequest(map[string]interface{}{"name": "lowest"}))
	require.NoError(t, err)
	var eval types.EvalVariableResponse
	decode(t, result, &eval)
	assert.Equal(t, "50", eval.Variable.Value)

	result, err = server.Stacktrace(ctx, newRequest(map[string]interface{}{"depth": 5.0}))
	require.NoError(t, err)
	var trace types.StacktraceResponse
	decode(t, result, &trace)
	require.NotEmpty(t, trace.Frames)
	assert.Contains(t, trace.Frames[0].Location.Function, "FindMinimum")
}
