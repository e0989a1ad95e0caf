// Package tour walks a worksheet under the debugger, stopping at every source
// marker and recording the watched variables.
package tour

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sunfmin/go-debug-worksheets/pkg/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// Debugger is the part of the debugger client a tour drives.
type Debugger interface {
	BuildAndLaunch(dir, pkg string, args []string) (types.LaunchResponse, error)
	SetMarkerBreakpoint(m debugger.Marker) (*types.Breakpoint, error)
	MarkerName(id int) (string, bool)
	Continue() (types.ContinueResponse, error)
	EvalVariable(name string, depth int) (*types.Variable, error)
	Stacktrace(depth int) ([]types.Frame, error)
	GetDebuggerOutput() (*types.DebuggerOutputResponse, error)
	Close() (types.CloseResponse, error)
}

var _ Debugger = (*debugger.Client)(nil)

// maxStackDepth bounds the frames read to measure call depth.
const maxStackDepth = 64

// Options configures a tour.
type Options struct {
	SourceRoot string // module root holding go.mod
	Package    string // main package to build, relative to SourceRoot
	Sheet      string
	Variant    string
	Enable     []string
	MaxStops   int // 0 means unlimited
	Depth      int // variable load depth
	Watch      map[string][]string
}

// Stop is one breakpoint hit.
type Stop struct {
	Marker   string            `json:"marker,omitempty"`
	File     string            `json:"file"`
	Line     int               `json:"line"`
	Function string            `json:"function"`
	Depth    int               `json:"depth"`
	Hit      int               `json:"hit"`
	Reason   string            `json:"reason,omitempty"`
	Values   map[string]string `json:"values,omitempty"`
	Order    []string          `json:"-"`
}

// Report is the outcome of a tour.
type Report struct {
	Sheet      string `json:"sheet"`
	Variant    string `json:"variant"`
	Markers    int    `json:"markers"`
	Stops      []Stop `json:"stops"`
	Truncated  bool   `json:"truncated,omitempty"`
	Output     string `json:"output"`
	ExitStatus int    `json:"exitStatus"`
}

// Run builds the worksheet binary, places a breakpoint on every marker and
// continues until the program exits, MaxStops is reached or ctx is done.
func Run(ctx context.Context, dbg Debugger, opts Options) (*Report, error) {
	markers, err := debugger.ScanMarkers(filepath.Join(opts.SourceRoot, "pkg"))
	if err != nil {
		return nil, err
	}
	if len(markers) == 0 {
		return nil, fmt.Errorf("no breakpoint markers found under %s", opts.SourceRoot)
	}

	args := []string{"run", opts.Sheet}
	if opts.Variant != "" {
		args = append(args, "--variant", opts.Variant)
	}
	for _, name := range opts.Enable {
		args = append(args, "--enable", name)
	}

	logger.Info("Starting tour", "sheet", opts.Sheet, "package", opts.Package, "markers", len(markers))
	if _, err := dbg.BuildAndLaunch(opts.SourceRoot, opts.Package, args); err != nil {
		return nil, fmt.Errorf("failed to launch worksheet: %w", err)
	}
	defer func() {
		if _, err := dbg.Close(); err != nil {
			logger.Warn("Failed to close debug session", "error", err)
		}
	}()

	byName := make(map[string]debugger.Marker, len(markers))
	for _, m := range markers {
		if _, err := dbg.SetMarkerBreakpoint(m); err != nil {
			logger.Warn("Skipping marker", "marker", m.Name, "error", err)
			continue
		}
		byName[m.Name] = m
	}

	report := &Report{Sheet: opts.Sheet, Variant: opts.Variant, Markers: len(byName)}
	hits := make(map[string]int)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if opts.MaxStops > 0 && len(report.Stops) >= opts.MaxStops {
			report.Truncated = true
			break
		}

		response, err := dbg.Continue()
		if err != nil {
			return report, err
		}
		if response.Context.Status == "exited" {
			report.ExitStatus = response.Context.ExitStatus
			break
		}

		pos := response.Context.CurrentPosition
		if pos == nil {
			return report, fmt.Errorf("stopped without a position: %s", response.Context.StopReason)
		}

		stop := Stop{
			File:     pos.File,
			Line:     pos.Line,
			Function: pos.Function,
			Reason:   response.Context.StopReason,
		}
		if m, ok := markerAt(dbg, byName, response.Context.BreakpointID); ok {
			hits[m.Name]++
			stop.Marker = m.Name
			stop.Hit = hits[m.Name]
			stop.Order = watchList(m, opts.Watch)
			stop.Values = readValues(dbg, stop.Order, opts.Depth)
		}
		if frames, err := dbg.Stacktrace(maxStackDepth); err == nil {
			stop.Depth = len(frames)
		}

		logger.Debug("Tour stop", "marker", stop.Marker, "line", stop.Line, "hit", stop.Hit)
		report.Stops = append(report.Stops, stop)
	}

	if output, err := dbg.GetDebuggerOutput(); err == nil {
		report.Output = output.Stdout
	}
	return report, nil
}

// markerAt resolves the breakpoint a stop was reported for to its marker.
func markerAt(dbg Debugger, byName map[string]debugger.Marker, id int) (debugger.Marker, bool) {
	if id <= 0 {
		return debugger.Marker{}, false
	}
	name, ok := dbg.MarkerName(id)
	if !ok {
		return debugger.Marker{}, false
	}
	m, ok := byName[name]
	return m, ok
}

func watchList(m debugger.Marker, overrides map[string][]string) []string {
	if w, ok := overrides[m.Name]; ok {
		return w
	}
	return m.Watch
}

func readValues(dbg Debugger, names []string, depth int) map[string]string {
	if len(names) == 0 {
		return nil
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		v, err := dbg.EvalVariable(name, depth)
		if err != nil {
			values[name] = "<" + err.Error() + ">"
			continue
		}
		values[name] = v.Value
	}
	return values
}
