package debugger

import (
	"fmt"
	"time"

	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// GetExecutionPosition returns the current execution position (file, line, function)
func (c *Client) GetExecutionPosition() (*types.Location, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	state, err := c.client.GetState()
	if err != nil {
		return nil, fmt.Errorf("failed to get execution state: %w", err)
	}

	if state.Exited {
		return &types.Location{Summary: "Program has exited"},
			fmt.Errorf("program has exited with status %d", state.ExitStatus)
	}

	// A running program is halted to read its position
	if state.Running {
		logger.Debug("Program is running, halting to read position")
		if _, err := c.client.Halt(); err != nil {
			return nil, fmt.Errorf("program is running but couldn't halt: %w", err)
		}
		state, err = waitForStop(c, 2*time.Second)
		if err != nil {
			return nil, fmt.Errorf("program is running but couldn't get position: %w", err)
		}
	}

	location := getCurrentLocation(state)
	if location == nil {
		return nil, fmt.Errorf("no current thread available")
	}
	return location, nil
}

// Stacktrace returns up to depth frames of the current goroutine, innermost first
func (c *Client) Stacktrace(depth int) ([]types.Frame, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	scope, err := c.scope()
	if err != nil {
		return nil, err
	}

	frames, err := c.client.Stacktrace(scope.GoroutineID, depth, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get stack trace: %w", err)
	}

	out := make([]types.Frame, 0, len(frames))
	for i, f := range frames {
		name := ""
		if f.Function != nil {
			name = f.Function.Name()
		}
		out = append(out, types.Frame{
			Depth:    i,
			Location: locationOf(f.File, f.Line, name),
		})
	}
	return out, nil
}
