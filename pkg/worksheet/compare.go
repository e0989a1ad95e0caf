package worksheet

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// PanicError carries a panic raised by an exercise during a captured run.
type PanicError struct {
	Exercise string
	Value    any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("exercise %s panicked: %v", e.Exercise, e.Value)
}

// RunCaptured runs the sheet into a string. Unlike RunAll it survives a
// panicking exercise: the narration up to the crash is kept, a "panic:" line is
// appended and a *PanicError is returned.
func RunCaptured(s Sheet, opts RunOptions) (out string, err error) {
	var buf bytes.Buffer
	current := ""

	wrapped := s
	wrapped.Exercises = make([]Exercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		ex := ex
		run := ex.Run
		ex.Run = func(p *Printer, env Env) {
			current = ex.Name
			run(p, env)
		}
		wrapped.Exercises[i] = ex
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(&buf, "panic: %v\n", r)
			out = buf.String()
			err = &PanicError{Exercise: current, Value: r}
		}
	}()

	err = wrapped.RunAll(&buf, opts)
	return buf.String(), err
}

// Compare runs the sheet in both variants and returns a unified diff of the
// narrations, buggy first. An empty diff means both variants print the same.
func Compare(s Sheet, enable []string, context int) (string, error) {
	buggy, err := RunCaptured(s, RunOptions{Variant: Buggy, Enable: enable})
	if err != nil && !isPanic(err) {
		return "", fmt.Errorf("buggy run: %w", err)
	}
	fixed, err := RunCaptured(s, RunOptions{Variant: Fixed, Enable: enable})
	if err != nil && !isPanic(err) {
		return "", fmt.Errorf("fixed run: %w", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(buggy),
		B:        difflib.SplitLines(fixed),
		FromFile: s.Name + " (buggy)",
		ToFile:   s.Name + " (fixed)",
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", s.Name, err)
	}
	return text, nil
}

func isPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
