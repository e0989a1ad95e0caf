package debugger

import (
	"fmt"
	"path/filepath"

	"github.com/go-delve/delve/service/api"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
)

// Status is a snapshot of the session for the ping tool
type Status struct {
	Connected  bool   `json:"connected"`
	Target     string `json:"target,omitempty"`
	Running    bool   `json:"running"`
	Exited     bool   `json:"exited"`
	ExitStatus int    `json:"exitStatus,omitempty"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
	Function   string `json:"function,omitempty"`
	Marker     string `json:"marker,omitempty"` // set when stopped on a marker breakpoint
	Error      string `json:"error,omitempty"`
}

// GetStatus reports where the session is. Once the worksheet has exited the
// last state seen is used, since Delve can no longer be asked.
func (c *Client) GetStatus() (*Status, error) {
	status := &Status{Connected: c.client != nil, Target: c.target}
	if !status.Connected {
		return status, nil
	}

	state, err := c.client.GetState()
	if err != nil {
		if c.lastState == nil || !c.lastState.Exited {
			status.Error = err.Error()
			return status, fmt.Errorf("failed to get debugger state: %w", err)
		}
		state = c.lastState
	}
	c.fillStatus(status, state)

	logger.Debug("Debugger status", "target", status.Target, "marker", status.Marker, "exited", status.Exited)
	return status, nil
}

func (c *Client) fillStatus(status *Status, state *api.DebuggerState) {
	status.Running = state.Running
	status.Exited = state.Exited
	if state.Exited {
		status.ExitStatus = state.ExitStatus
		return
	}

	thread := state.CurrentThread
	if state.Running || thread == nil {
		return
	}
	status.File, status.Line = thread.File, thread.Line
	status.Function = getFunctionName(thread)
	if thread.Breakpoint != nil {
		status.Marker, _ = c.MarkerName(thread.Breakpoint.ID)
	}
}

// Ping answers with a one-line description of the session
func (c *Client) Ping() (string, error) {
	status, err := c.GetStatus()
	if err != nil {
		return "", err
	}
	return "Pong! " + describeStatus(status), nil
}

func describeStatus(s *Status) string {
	if !s.Connected {
		return "Debugger is not connected"
	}

	target := "worksheet"
	if s.Target != "" {
		target = filepath.Base(s.Target)
	}
	switch {
	case s.Exited:
		return fmt.Sprintf("%s exited with status %d", target, s.ExitStatus)
	case s.Running:
		return fmt.Sprintf("%s is running", target)
	case s.Marker != "":
		return fmt.Sprintf("%s stopped on marker %s (%s:%d)", target, s.Marker, filepath.Base(s.File), s.Line)
	case s.File != "":
		return fmt.Sprintf("%s stopped at %s:%d in %s", target, filepath.Base(s.File), s.Line, s.Function)
	}
	return fmt.Sprintf("%s is stopped", target)
}
