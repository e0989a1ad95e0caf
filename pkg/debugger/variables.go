package debugger

import (
	"fmt"

	"github.com/go-delve/delve/service/api"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// ScopeVariables represents the variables visible in the current frame
type ScopeVariables struct {
	Local []types.Variable `json:"local"`
	Args  []types.Variable `json:"args"`
}

func loadConfig(depth int) api.LoadConfig {
	return api.LoadConfig{
		FollowPointers:     true,
		MaxVariableRecurse: depth,
		MaxStringLen:       100,
		MaxArrayValues:     100,
		MaxStructFields:    -1,
	}
}

// scope returns the eval scope of the current goroutine's top frame.
func (c *Client) scope() (api.EvalScope, error) {
	state, err := c.state()
	if err != nil {
		return api.EvalScope{}, err
	}
	if state.Exited {
		return api.EvalScope{}, fmt.Errorf("program has exited with status %d", state.ExitStatus)
	}
	if state.CurrentThread == nil {
		return api.EvalScope{}, fmt.Errorf("no current thread available for evaluating variables")
	}

	logger.Debug("Evaluation position", "file", state.CurrentThread.File, "line", state.CurrentThread.Line)
	return api.EvalScope{GoroutineID: state.CurrentThread.GoroutineID, Frame: 0}, nil
}

// EvalVariable evaluates an expression in the current frame
func (c *Client) EvalVariable(name string, depth int) (*types.Variable, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	logger.Debug("Examining variable", "name", name, "depth", depth)
	scope, err := c.scope()
	if err != nil {
		return nil, err
	}

	v, err := c.client.EvalVariable(scope, name, loadConfig(depth))
	if err != nil {
		return nil, fmt.Errorf("failed to examine variable %s: %w", name, err)
	}

	variable := convertVariable(v, depth)
	return &variable, nil
}

// ListScopeVariables lists the locals and arguments of the current frame
func (c *Client) ListScopeVariables(depth int) (*ScopeVariables, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no active debug session")
	}

	scope, err := c.scope()
	if err != nil {
		return nil, err
	}

	locals, err := c.client.ListLocalVariables(scope, loadConfig(depth))
	if err != nil {
		return nil, fmt.Errorf("failed to list local variables: %w", err)
	}
	args, err := c.client.ListFunctionArgs(scope, loadConfig(depth))
	if err != nil {
		return nil, fmt.Errorf("failed to list function arguments: %w", err)
	}

	result := &ScopeVariables{
		Local: make([]types.Variable, 0, len(locals)),
		Args:  make([]types.Variable, 0, len(args)),
	}
	for i := range locals {
		result.Local = append(result.Local, convertVariable(&locals[i], depth))
	}
	for i := range args {
		result.Args = append(result.Args, convertVariable(&args[i], depth))
	}
	return result, nil
}

// convertVariable converts a Delve API variable, keeping children down to depth
func convertVariable(v *api.Variable, depth int) types.Variable {
	out := types.Variable{
		DelveVar: v,
		Name:     v.Name,
		Type:     v.Type,
		Value:    v.SinglelineString(),
		Kind:     v.Kind.String(),
		Length:   v.Len,
	}
	if v.Unreadable != "" {
		out.Value = "unreadable: " + v.Unreadable
	}

	if depth > 0 && len(v.Children) > 0 {
		out.Children = make([]types.Variable, 0, len(v.Children))
		for i := range v.Children {
			out.Children = append(out.Children, convertVariable(&v.Children[i], depth-1))
		}
	}
	return out
}
