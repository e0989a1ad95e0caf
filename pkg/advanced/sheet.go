package advanced

import "github.com/sunfmin/go-debug-worksheets/pkg/worksheet"

// Opt-in paths inside enabled exercises.
const (
	PathOutOfBounds       = "out-of-bounds"
	PathDangling          = "dangling"
	PathMatrixOutOfBounds = "matrix-out-of-bounds"
)

// Sheet returns the advanced worksheet.
func Sheet() worksheet.Sheet {
	return worksheet.Sheet{
		Name:  "advanced",
		Title: "Advanced Debugging Worksheet",
		Exercises: []worksheet.Exercise{
			{Name: "pointers", Title: "Pointer Issues", Run: runPointers},
			{Name: "array-bounds", Title: "Array Bounds", Paths: []string{PathOutOfBounds}, Run: runArrayBounds},
			{Name: "logic-error", Title: "Logic Error", Run: runLogicError},
			{Name: "lifetime", Title: "Variable Lifetime", Paths: []string{PathDangling}, Run: runLifetime},
			{Name: "nested-loops", Title: "Nested Loops", Paths: []string{PathMatrixOutOfBounds}, Run: runNestedLoops},
			{Name: "strings", Title: "String Debugging", Run: runStrings},
			{Name: "memory", Title: "Memory Management", Run: runMemory},
			{Name: "conditionals", Title: "Conditional Logic", Run: runConditionals},
			{Name: "safe-division", Title: "Safe Division", Disabled: true, Run: runSafeDivision},
			{Name: "call-stack", Title: "Call Stack", Run: runCallStack},
		},
		Outro: []string{
			"",
			"Pro tip: build without optimizations before stepping:",
			"  go build -gcflags='all=-N -l' -o worksheet ./cmd/worksheet",
			"  dlv exec ./worksheet -- run advanced",
		},
	}
}

func runPointers(p *worksheet.Printer, _ worksheet.Env) {
	var ptr1 *int
	value := 42
	ptr2 := &value

	p.Line(DescribePointer("ptr1", ptr1))
	p.Line(DescribePointer("ptr2", ptr2))
}

func runArrayBounds(p *worksheet.Printer, env worksheet.Env) {
	numbers := []int{10, 20, 30, 40, 50}
	for _, e := range Elements(numbers) {
		p.Linef("numbers[%d] = %d", e.Index, e.Value)
	}

	if !env.Enabled(PathOutOfBounds) {
		return
	}
	if env.Variant == worksheet.Fixed {
		if _, err := At(numbers, 10); err != nil {
			p.Linef("numbers[10] unavailable: %v", err)
		}
		return
	}
	p.Linef("numbers[10] = %d", UncheckedAt(numbers, 10))
}

func runLogicError(p *worksheet.Printer, env worksheet.Env) {
	values := []int{50, 10, 80, 5, 90, 3, 100}
	minimum := FindMinimum(values)
	if env.Variant == worksheet.Fixed {
		minimum = FindMinimumFixed(values)
	}

	p.Linef("Minimum value: %d", minimum)
	p.Line("(Should be 3, but might be wrong!)")
}

func runLifetime(p *worksheet.Printer, env worksheet.Env) {
	if env.Enabled(PathDangling) && env.Variant == worksheet.Buggy {
		f := NewFrame(4)
		bad := DanglingLocal(f)
		p.Linef("Dangling pointer value: %d", *bad)
		Clobber(f, 7)
		p.Linef("Dangling pointer after another call: %d", *bad)
	}

	good := NewOwned(100)
	defer good.Release()
	v, err := good.Value()
	if err != nil {
		p.Linef("Owned value unavailable: %v", err)
		return
	}
	p.Linef("Owned value: %d", v)
}

func runNestedLoops(p *worksheet.Printer, env worksheet.Env) {
	matrix := [][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}

	steps, total := SumMatrix(matrix)
	for _, s := range steps {
		p.Linef("matrix[%d][%d] = %d, sum = %d", s.Row, s.Col, s.Value, s.Sum)
	}
	p.Linef("Total sum: %d", total)

	if !env.Enabled(PathMatrixOutOfBounds) {
		return
	}
	if env.Variant == worksheet.Fixed {
		if _, err := At(matrix, 3); err != nil {
			p.Linef("matrix[3] unavailable: %v", err)
		}
		return
	}
	p.Linef("matrix[3][0] = %d", UncheckedAt(matrix, 3)[0])
}

func runStrings(p *worksheet.Printer, _ worksheet.Env) {
	text := "Debug"
	p.Linef("Original: %s", text)
	p.Linef("Reversed: %s", ReverseString(text))
	p.Linef("Empty reversed: '%s'", ReverseString(""))
}

func runMemory(p *worksheet.Printer, _ worksheet.Env) {
	safe := NewOwnedBuffer(100)
	defer safe.Release()

	buf, err := safe.Value()
	if err != nil {
		p.Linef("Owned buffer unavailable: %v", err)
		return
	}
	p.Linef("Owned buffer example: safe[50] = %d", buf[50])
}

func runConditionals(p *worksheet.Printer, _ worksheet.Env) {
	for _, n := range []int{5, -3, 0} {
		p.Linef("%d is: %s", n, CheckNumber(n))
	}
}

func runSafeDivision(p *worksheet.Printer, env worksheet.Env) {
	for _, b := range []float64{2, 0} {
		if env.Variant == worksheet.Fixed {
			q, err := SafeDivide(10, b)
			if err != nil {
				p.Linef("10 / %g = error: %v", b, err)
				continue
			}
			p.Linef("10 / %g = %g", b, q)
			continue
		}
		p.Linef("10 / %g = %g", b, UncheckedDivide(10, b))
	}
}

func runCallStack(p *worksheet.Printer, _ worksheet.Env) {
	for _, line := range CallChain().Lines {
		p.Line(line)
	}
}
