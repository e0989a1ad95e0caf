package types

import (
	"time"

	"github.com/go-delve/delve/service/api"
)

// DebugContext provides shared context across all debug responses
type DebugContext struct {
	DelveState      *api.DebuggerState `json:"-"`                         // Internal Delve state
	CurrentPosition *Location          `json:"currentPosition,omitempty"` // Current execution position
	Timestamp       time.Time          `json:"timestamp"`                 // Operation timestamp
	Operation       string             `json:"operation,omitempty"`       // Last debug operation performed
	ErrorMessage    string             `json:"error,omitempty"`           // Error message if any
	Status          string             `json:"status,omitempty"`          // stopped, running, exited, stepping
	Summary         string             `json:"summary,omitempty"`         // Summary of the current state
	ExitStatus      int                `json:"exitStatus,omitempty"`      // Exit status once Status is "exited"
	BreakpointID    int                `json:"breakpointId,omitempty"`    // Breakpoint that stopped the program

	StopReason string `json:"stopReason,omitempty"` // Why the program stopped, in human terms
}

// Location represents a source code location in human-readable format
type Location struct {
	File     string `json:"file"`               // Source file path
	Line     int    `json:"line"`               // Line number
	Function string `json:"function,omitempty"` // Function name
	Package  string `json:"package,omitempty"`  // Package path
	Summary  string `json:"summary,omitempty"`  // Human-readable location description
}

// Variable represents a program variable
type Variable struct {
	DelveVar *api.Variable `json:"-"`

	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Type     string     `json:"type"`
	Kind     string     `json:"kind"`
	Length   int64      `json:"length,omitempty"`
	Children []Variable `json:"children,omitempty"`
}

// Breakpoint represents a breakpoint
type Breakpoint struct {
	DelveBreakpoint *api.Breakpoint `json:"-"`

	ID          int      `json:"id"`
	Status      string   `json:"status"`              // enabled, disabled, hit
	Location    Location `json:"location"`            // Breakpoint location
	Description string   `json:"description"`         // Marker name or Delve breakpoint name
	Condition   string   `json:"condition,omitempty"` // Condition expression
	HitCount    uint64   `json:"hitCount"`            // Number of times breakpoint was hit
}

// Frame is one entry of a goroutine stack trace
type Frame struct {
	Depth    int      `json:"depth"`
	Location Location `json:"location"`
}

// Operation-specific responses

type LaunchResponse struct {
	Context     *DebugContext `json:"context"`
	Program     string        `json:"program"`
	Args        []string      `json:"args"`
	DebugBinary string        `json:"debugBinary,omitempty"` // Set when the program was built for the session
}

type BreakpointResponse struct {
	Status         string       `json:"status"`
	Context        DebugContext `json:"context"`
	Breakpoint     Breakpoint   `json:"breakpoint"`               // The affected breakpoint
	AllBreakpoints []Breakpoint `json:"allBreakpoints,omitempty"` // All current breakpoints
}

type StepResponse struct {
	Status       string       `json:"status"`
	Context      DebugContext `json:"context"`
	StepType     string       `json:"stepType"` // "into", "over", or "out"
	FromLocation Location     `json:"from"`     // Starting location
	ToLocation   Location     `json:"to"`       // Ending location
}

type EvalVariableResponse struct {
	Status   string       `json:"status"`
	Context  DebugContext `json:"context"`
	Variable Variable     `json:"variable"`
}

type ContinueResponse struct {
	Status  string       `json:"status"`
	Context DebugContext `json:"context"`
}

type StacktraceResponse struct {
	Status string  `json:"status"`
	Frames []Frame `json:"frames"`
}

type CloseResponse struct {
	Status   string       `json:"status"`
	Context  DebugContext `json:"context"`
	ExitCode int          `json:"exitCode"`
	Summary  string       `json:"summary"`
}

type DebuggerOutputResponse struct {
	Status        string `json:"status"`
	Stdout        string `json:"stdout"`        // Captured standard output
	Stderr        string `json:"stderr"`        // Captured standard error
	OutputSummary string `json:"outputSummary"` // Brief summary of output
}
