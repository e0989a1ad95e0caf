package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sunfmin/go-debug-worksheets/pkg/advanced"
	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/tour"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

func (s *WorksheetServer) addListExercisesTool() {
	tool := mcp.NewTool("list_exercises",
		mcp.WithDescription("List the worksheets, their exercises and the opt-in switches"),
	)

	s.server.AddTool(tool, s.ListExercises)
}

func (s *WorksheetServer) addRunSheetTool() {
	tool := mcp.NewTool("run_sheet",
		mcp.WithDescription("Run a worksheet and return its narration"),
		mcp.WithString("sheet",
			mcp.Description("Worksheet name: basics, advanced or all"),
		),
		mcp.WithString("variant",
			mcp.Description("buggy (default) or fixed"),
		),
		mcp.WithArray("enable",
			mcp.Description("Disabled exercises or crash paths to opt into"),
		),
	)

	s.server.AddTool(tool, s.RunSheet)
}

func (s *WorksheetServer) addCompareVariantsTool() {
	tool := mcp.NewTool("compare_variants",
		mcp.WithDescription("Diff the narration of the buggy and fixed variants of a worksheet"),
		mcp.WithString("sheet",
			mcp.Description("Worksheet name: basics, advanced or all"),
		),
		mcp.WithArray("enable",
			mcp.Description("Disabled exercises or crash paths to opt into"),
		),
		mcp.WithNumber("context",
			mcp.Description("Lines of context around each change (default 3)"),
		),
	)

	s.server.AddTool(tool, s.CompareVariants)
}

func (s *WorksheetServer) addFindMinimumTool() {
	tool := mcp.NewTool("find_minimum",
		mcp.WithDescription("Call the minimum finder on a list of integers"),
		mcp.WithArray("numbers",
			mcp.Required(),
			mcp.Description("Integers to search"),
		),
		mcp.WithString("variant",
			mcp.Description("buggy (default) or fixed"),
		),
	)

	s.server.AddTool(tool, s.FindMinimum)
}

func (s *WorksheetServer) addReverseStringTool() {
	tool := mcp.NewTool("reverse_string",
		mcp.WithDescription("Reverse a string"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to reverse"),
		),
	)

	s.server.AddTool(tool, s.ReverseString)
}

func (s *WorksheetServer) addCheckNumberTool() {
	tool := mcp.NewTool("check_number",
		mcp.WithDescription("Classify an integer as positive, negative or zero"),
		mcp.WithNumber("n",
			mcp.Required(),
			mcp.Description("Integer to classify"),
		),
	)

	s.server.AddTool(tool, s.CheckNumber)
}

func (s *WorksheetServer) addDivideTool() {
	tool := mcp.NewTool("divide",
		mcp.WithDescription("Divide two numbers, checked by default"),
		mcp.WithNumber("a",
			mcp.Required(),
			mcp.Description("Dividend"),
		),
		mcp.WithNumber("b",
			mcp.Required(),
			mcp.Description("Divisor"),
		),
		mcp.WithBoolean("checked",
			mcp.Description("Reject a zero divisor (default true); unchecked yields IEEE infinity or NaN"),
		),
	)

	s.server.AddTool(tool, s.Divide)
}

func (s *WorksheetServer) addTourTool() {
	tool := mcp.NewTool("tour",
		mcp.WithDescription("Run a worksheet under the debugger, stopping at every breakpoint marker"),
		mcp.WithString("sheet",
			mcp.Description("Worksheet name: basics, advanced or all"),
		),
		mcp.WithString("variant",
			mcp.Description("buggy (default) or fixed"),
		),
		mcp.WithNumber("max_stops",
			mcp.Description("Stop the tour after this many breakpoint hits"),
		),
	)

	s.server.AddTool(tool, s.Tour)
}

// runOptions reads the sheet/variant/enable arguments shared by several tools
func (s *WorksheetServer) runOptions(request mcp.CallToolRequest) ([]worksheet.Sheet, worksheet.RunOptions, error) {
	name, err := stringArg(request, "sheet", catalog.All)
	if err != nil {
		return nil, worksheet.RunOptions{}, err
	}
	sheets, err := catalog.Lookup(name)
	if err != nil {
		return nil, worksheet.RunOptions{}, err
	}

	variantName, err := stringArg(request, "variant", s.cfg.Variant)
	if err != nil {
		return nil, worksheet.RunOptions{}, err
	}
	variant, err := worksheet.ParseVariant(variantName)
	if err != nil {
		return nil, worksheet.RunOptions{}, err
	}

	enable, err := stringSliceArg(request, "enable")
	if err != nil {
		return nil, worksheet.RunOptions{}, err
	}
	if enable == nil {
		enable = s.cfg.Enable
	}
	if err := catalog.ValidateEnable(enable); err != nil {
		return nil, worksheet.RunOptions{}, err
	}

	return sheets, worksheet.RunOptions{Variant: variant, Enable: enable}, nil
}

// ListExercises handles the list_exercises command
func (s *WorksheetServer) ListExercises(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received list_exercises request")

	var sheets []types.SheetInfo
	for _, sheet := range catalog.Sheets() {
		info := types.SheetInfo{Name: sheet.Name, Title: sheet.Title}
		for i, ex := range sheet.Exercises {
			info.Exercises = append(info.Exercises, types.ExerciseInfo{
				Number:   i + 1,
				Name:     ex.Name,
				Title:    ex.Title,
				Disabled: ex.Disabled,
				Paths:    ex.Paths,
			})
		}
		sheets = append(sheets, info)
	}

	return newToolResultJSON(sheets)
}

// RunSheet handles the run_sheet command
func (s *WorksheetServer) RunSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received run_sheet request")

	sheets, opts, err := s.runOptions(request)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	var (
		names     []string
		narration strings.Builder
		crashed   string
	)
	for _, sheet := range sheets {
		names = append(names, sheet.Name)
		out, err := worksheet.RunCaptured(sheet, opts)
		narration.WriteString(out)

		var pe *worksheet.PanicError
		if errors.As(err, &pe) {
			// The real program would have died here
			crashed = pe.Error()
			break
		}
		if err != nil {
			logger.Error("Failed to run worksheet", "sheet", sheet.Name, "error", err)
			return newErrorResult("failed to run %s: %v", sheet.Name, err), nil
		}
	}

	return newToolResultJSON(types.RunResponse{
		Sheet:     strings.Join(names, ","),
		Variant:   opts.Variant.String(),
		Enable:    opts.Enable,
		Narration: narration.String(),
		Panic:     crashed,
	})
}

// CompareVariants handles the compare_variants command
func (s *WorksheetServer) CompareVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received compare_variants request")

	sheets, opts, err := s.runOptions(request)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	contextLines, err := intArg(request, "context", 3)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	var responses []types.CompareResponse
	for _, sheet := range sheets {
		diff, err := worksheet.Compare(sheet, opts.Enable, contextLines)
		if err != nil {
			return newErrorResult("failed to compare %s: %v", sheet.Name, err), nil
		}
		responses = append(responses, types.CompareResponse{Sheet: sheet.Name, Diff: diff, Same: diff == ""})
	}

	return newToolResultJSON(responses)
}

// FindMinimum handles the find_minimum command
func (s *WorksheetServer) FindMinimum(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nums, err := intSliceArg(request, "numbers")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	variantName, err := stringArg(request, "variant", s.cfg.Variant)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	variant, err := worksheet.ParseVariant(variantName)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	find := advanced.FindMinimum
	if variant == worksheet.Fixed {
		find = advanced.FindMinimumFixed
	}

	return newToolResultJSON(types.ResultResponse{
		Function: "find_minimum",
		Variant:  variant.String(),
		Result:   find(nums),
	})
}

// ReverseString handles the reverse_string command
func (s *WorksheetServer) ReverseString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := stringArg(request, "text", "")
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.ResultResponse{
		Function: "reverse_string",
		Result:   advanced.ReverseString(text),
	})
}

// CheckNumber handles the check_number command
func (s *WorksheetServer) CheckNumber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := requiredNumber(request, "n"); err != nil {
		return newErrorResult("%v", err), nil
	}
	n, err := intArg(request, "n", 0)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	return newToolResultJSON(types.ResultResponse{
		Function: "check_number",
		Result:   advanced.CheckNumber(n),
	})
}

// Divide handles the divide command
func (s *WorksheetServer) Divide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := requiredNumber(request, "a")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	b, err := requiredNumber(request, "b")
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	checked, err := boolArg(request, "checked", true)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	if !checked {
		// JSON has no infinity or NaN, so the result is rendered as text
		return newToolResultJSON(types.ResultResponse{
			Function: "unchecked_divide",
			Result:   fmt.Sprintf("%g", advanced.UncheckedDivide(a, b)),
		})
	}

	q, err := advanced.SafeDivide(a, b)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	return newToolResultJSON(types.ResultResponse{
		Function: "safe_divide",
		Result:   q,
	})
}

// Tour handles the tour command. It uses its own debug session.
func (s *WorksheetServer) Tour(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("Received tour request")

	sheet, err := stringArg(request, "sheet", catalog.All)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if _, err := catalog.Lookup(sheet); err != nil {
		return newErrorResult("%v", err), nil
	}
	variant, err := stringArg(request, "variant", s.cfg.Variant)
	if err != nil {
		return newErrorResult("%v", err), nil
	}
	if _, err := worksheet.ParseVariant(variant); err != nil {
		return newErrorResult("%v", err), nil
	}
	maxStops, err := intArg(request, "max_stops", s.cfg.Tour.MaxStops)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	report, err := tour.Run(ctx, debugger.NewClient(), tour.Options{
		SourceRoot: s.cfg.SourceRoot,
		Package:    s.cfg.Tour.Package,
		Sheet:      sheet,
		Variant:    variant,
		Enable:     s.cfg.Enable,
		MaxStops:   maxStops,
		Depth:      s.cfg.Tour.Depth,
		Watch:      s.cfg.Tour.Watch,
	})
	if err != nil {
		logger.Error("Tour failed", "error", err)
		return newErrorResult("tour failed: %v", err), nil
	}

	return newToolResultJSON(report)
}
