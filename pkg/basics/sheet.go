package basics

import "github.com/sunfmin/go-debug-worksheets/pkg/worksheet"

// Sheet returns the basics worksheet.
func Sheet() worksheet.Sheet {
	return worksheet.Sheet{
		Name:  "basics",
		Title: "Debugging Basics Worksheet",
		Exercises: []worksheet.Exercise{
			{Name: "stepping", Title: "Stepping", Run: runStepping},
			{Name: "loops", Title: "Loop Debugging", Run: runLoops},
			{Name: "functions", Title: "Function Calls", Run: runFunctions},
			{Name: "conditionals", Title: "Conditional Breakpoints", Run: runConditionals},
			{Name: "fix-the-bug", Title: "Fix the Bug", Disabled: true, Run: runFixTheBug},
		},
	}
}

func runStepping(p *worksheet.Printer, _ worksheet.Env) {
	sum, product := Stepping(5, 10)
	p.Linef("Sum: %d", sum)
	p.Linef("Product: %d", product)
}

func runLoops(p *worksheet.Printer, _ worksheet.Env) {
	p.Linef("Total: %d", SumAll([]int{2, 4, 6, 8, 10}))
}

func runFunctions(p *worksheet.Printer, _ worksheet.Env) {
	p.Linef("Result: %d", Multiply(7, 3))
}

func runConditionals(p *worksheet.Printer, _ worksheet.Env) {
	for _, i := range CountTo(10) {
		p.Linef("i = %d", i)
	}
}

func runFixTheBug(p *worksheet.Printer, env worksheet.Env) {
	if env.Variant == worksheet.Fixed {
		for _, b := range []int{2, 0} {
			q, err := CheckedDivide(10, b)
			if err != nil {
				p.Linef("10 / %d = error: %v", b, err)
				continue
			}
			p.Linef("10 / %d = %d", b, q)
		}
		return
	}
	p.Linef("10 / 2 = %d", Divide(10, 2))
	p.Linef("10 / 0 = %d", Divide(10, 0))
}
