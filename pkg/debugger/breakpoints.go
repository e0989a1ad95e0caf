package debugger

import (
	"fmt"

	"github.com/go-delve/delve/service/api"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// SetBreakpoint sets a breakpoint at the specified file and line. cond may be empty.
func (c *Client) SetBreakpoint(file string, line int, cond string) (*types.Breakpoint, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	logger.Debug("Setting breakpoint", "file", file, "line", line, "cond", cond)
	bp, err := c.client.CreateBreakpoint(&api.Breakpoint{
		File: file,
		Line: line,
		Cond: cond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set breakpoint at %s:%d: %w", file, line, err)
	}

	breakpoint := c.convertBreakpoint(bp)
	return &breakpoint, nil
}

// SetMarkerBreakpoint sets a breakpoint on a source marker, carrying its
// condition and remembering its name.
func (c *Client) SetMarkerBreakpoint(m Marker) (*types.Breakpoint, error) {
	bp, err := c.SetBreakpoint(m.File, m.Line, m.Condition)
	if err != nil {
		return nil, err
	}
	if c.markers == nil {
		c.markers = make(map[int]string)
	}
	c.markers[bp.ID] = m.Name
	bp.Description = m.Name
	return bp, nil
}

// MarkerName returns the marker a breakpoint was created from.
func (c *Client) MarkerName(id int) (string, bool) {
	name, ok := c.markers[id]
	return name, ok
}

// ListBreakpoints returns all currently set user breakpoints
func (c *Client) ListBreakpoints() ([]types.Breakpoint, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	bps, err := c.client.ListBreakpoints(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list breakpoints: %w", err)
	}

	breakpoints := make([]types.Breakpoint, 0, len(bps))
	for _, bp := range bps {
		// Delve's internal panic/fatal breakpoints have negative IDs
		if bp.ID < 0 {
			continue
		}
		breakpoints = append(breakpoints, c.convertBreakpoint(bp))
	}
	return breakpoints, nil
}

// RemoveBreakpoint removes a breakpoint by its ID
func (c *Client) RemoveBreakpoint(id int) (*types.Breakpoint, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	bp, err := c.client.ClearBreakpoint(id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove breakpoint %d: %w", id, err)
	}
	logger.Debug("Removed breakpoint", "id", id, "file", bp.File, "line", bp.Line)

	removed := c.convertBreakpoint(bp)
	delete(c.markers, id)
	return &removed, nil
}

func (c *Client) convertBreakpoint(bp *api.Breakpoint) types.Breakpoint {
	description := bp.Name
	if name, ok := c.markers[bp.ID]; ok {
		description = name
	}
	return types.Breakpoint{
		DelveBreakpoint: bp,
		ID:              bp.ID,
		Status:          getBreakpointStatus(bp),
		Location:        locationOf(bp.File, bp.Line, bp.FunctionName),
		Description:     description,
		Condition:       bp.Cond,
		HitCount:        bp.TotalHitCount,
	}
}
