package debugger

import (
	"fmt"

	"github.com/go-delve/delve/service/api"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// Continue resumes program execution until next breakpoint or program termination
func (c *Client) Continue() (types.ContinueResponse, error) {
	if c.client == nil {
		err := fmt.Errorf("no active debug session")
		return createContinueResponse(nil, err), err
	}

	logger.Debug("Continuing execution")

	// The channel yields one state per stop and is closed once the program
	// halts for something other than a tracepoint.
	var delveState *api.DebuggerState
	for s := range c.client.Continue() {
		delveState = s
	}
	if delveState == nil {
		err := fmt.Errorf("continue command returned no state")
		return createContinueResponse(nil, err), err
	}
	c.lastState = delveState

	// Delve reports exit through Err as well; exit is not a failure here.
	if delveState.Exited {
		logger.Debug("Program has exited", "status", delveState.ExitStatus)
		return createContinueResponse(delveState, nil), nil
	}
	if delveState.Err != nil {
		err := fmt.Errorf("continue command failed: %w", delveState.Err)
		return createContinueResponse(delveState, err), err
	}

	return createContinueResponse(delveState, nil), nil
}

// Step executes a single line, stepping into function calls
func (c *Client) Step() (types.StepResponse, error) {
	return c.step("into", func() (*api.DebuggerState, error) { return c.client.Step() })
}

// StepOver executes the next line, stepping over function calls
func (c *Client) StepOver() (types.StepResponse, error) {
	return c.step("over", func() (*api.DebuggerState, error) { return c.client.Next() })
}

// StepOut executes until the current function returns
func (c *Client) StepOut() (types.StepResponse, error) {
	return c.step("out", func() (*api.DebuggerState, error) { return c.client.StepOut() })
}

func (c *Client) step(stepType string, do func() (*api.DebuggerState, error)) (types.StepResponse, error) {
	if c.client == nil {
		err := fmt.Errorf("no active debug session")
		return createStepResponse(nil, stepType, nil, err), err
	}

	delveState, err := c.state()
	if err != nil {
		return createStepResponse(nil, stepType, nil, err), err
	}
	if delveState.Exited {
		err := fmt.Errorf("program has exited with status %d", delveState.ExitStatus)
		return createStepResponse(delveState, stepType, nil, err), err
	}
	fromLocation := getCurrentLocation(delveState)

	logger.Debug("Stepping", "type", stepType)
	nextState, err := do()
	if err != nil {
		err = fmt.Errorf("step %s command failed: %w", stepType, err)
		return createStepResponse(nil, stepType, fromLocation, err), err
	}
	c.lastState = nextState

	return createStepResponse(nextState, stepType, fromLocation, nil), nil
}
