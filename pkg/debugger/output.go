package debugger

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// captureOutput copies one output stream of the debugged program until it closes
func (c *Client) captureOutput(reader io.Reader, source string) {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Debug("Program output", "source", source, "line", line)

		c.mu.Lock()
		if source == "stderr" {
			c.stderr.WriteString(line + "\n")
		} else {
			c.stdout.WriteString(line + "\n")
		}
		c.mu.Unlock()
	}
}

// Output returns everything the debugged program wrote so far.
func (c *Client) Output() (stdout, stderr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stdout.String(), c.stderr.String()
}

// GetDebuggerOutput returns the captured stdout and stderr from the debugged program
func (c *Client) GetDebuggerOutput() (*types.DebuggerOutputResponse, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	stdout, stderr := c.Output()
	exited, status := false, 0
	if c.lastState != nil && c.lastState.Exited {
		exited, status = true, c.lastState.ExitStatus
	}

	logger.Debug("Retrieved program output", "stdout", len(stdout), "stderr", len(stderr))
	return &types.DebuggerOutputResponse{
		Status:        "success",
		Stdout:        stdout,
		Stderr:        stderr,
		OutputSummary: generateOutputSummary(stdout, stderr, exited, status),
	}, nil
}

// Helper function to generate a summary of the output
func generateOutputSummary(stdout, stderr string, exited bool, status int) string {
	var summary string
	if exited {
		summary = fmt.Sprintf("Program exited with status %d. ", status)
	}
	if len(stdout) > 0 {
		summary += fmt.Sprintf("Stdout: %d bytes. ", len(stdout))
	}
	if len(stderr) > 0 {
		summary += fmt.Sprintf("Stderr: %d bytes. ", len(stderr))
	}
	if len(summary) == 0 {
		summary = "No output captured"
	}
	return summary
}
