package advanced

import "runtime"

// Trace collects what each level of the call chain saw.
type Trace struct {
	Lines  []string
	Frames []string // function name of the recording frame
	Depths []int    // stack depth at the time of recording
}

// record must be called directly from the level function.
func (t *Trace) record(line string) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	frame, more := frames.Next()
	depth := 1
	for more {
		_, more = frames.Next()
		depth++
	}

	t.Lines = append(t.Lines, line)
	t.Frames = append(t.Frames, frame.Function)
	t.Depths = append(t.Depths, depth)
}

// Level1 is the outermost link.
func Level1(t *Trace) {
	t.record("Level 1 calling level 2...")
	Level2(t)
}

// Level2 is the middle link.
func Level2(t *Trace) {
	t.record("Level 2 calling level 3...")
	Level3(t)
}

// Level3 is the innermost link; inspect the call stack here.
func Level3(t *Trace) {
	t.record("Level 3 reached") // BREAKPOINT: level3 watch=t
}

// CallChain runs Level1 -> Level2 -> Level3 once.
func CallChain() *Trace {
	t := &Trace{}
	Level1(t)
	return t
}
