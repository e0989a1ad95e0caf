package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool arguments arrive as decoded JSON: numbers are float64 and arrays are
// []interface{}. These helpers never panic on a missing or mistyped argument.

func stringArg(request mcp.CallToolRequest, name, def string) (string, error) {
	v, ok := request.Params.Arguments[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", name, v)
	}
	return s, nil
}

func requiredString(request mcp.CallToolRequest, name string) (string, error) {
	s, err := stringArg(request, name, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("argument %q is required", name)
	}
	return s, nil
}

func numberArg(request mcp.CallToolRequest, name string) (float64, bool, error) {
	v, ok := request.Params.Arguments[name]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	}
	return 0, false, fmt.Errorf("argument %q must be a number, got %T", name, v)
}

func requiredNumber(request mcp.CallToolRequest, name string) (float64, error) {
	n, ok, err := numberArg(request, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("argument %q is required", name)
	}
	return n, nil
}

func intArg(request mcp.CallToolRequest, name string, def int) (int, error) {
	n, ok, err := numberArg(request, name)
	if err != nil || !ok {
		return def, err
	}
	if n != float64(int(n)) {
		return 0, fmt.Errorf("argument %q must be a whole number, got %v", name, n)
	}
	return int(n), nil
}

func boolArg(request mcp.CallToolRequest, name string, def bool) (bool, error) {
	v, ok := request.Params.Arguments[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean, got %T", name, v)
	}
	return b, nil
}

func stringSliceArg(request mcp.CallToolRequest, name string) ([]string, error) {
	v, ok := request.Params.Arguments[name]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array, got %T", name, v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out, nil
}

func intSliceArg(request mcp.CallToolRequest, name string) ([]int, error) {
	v, ok := request.Params.Arguments[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("argument %q is required", name)
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array, got %T", name, v)
	}
	out := make([]int, 0, len(items))
	for i, item := range items {
		n, ok := item.(float64)
		if !ok || n != float64(int(n)) {
			return nil, fmt.Errorf("argument %q: element %d is not an integer: %v", name, i, item)
		}
		out = append(out, int(n))
	}
	return out, nil
}
