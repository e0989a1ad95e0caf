// Package worksheet runs debugging exercises and narrates their results.
//
// Exercises keep their logic in pure functions; this package owns the console
// narration around them: banners, per-exercise headers, and the switch between
// the buggy default path and the opt-in corrected path.
package worksheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Variant selects which version of each exercise runs.
type Variant int

const (
	// Buggy reproduces every intentional defect. It is the default.
	Buggy Variant = iota
	// Fixed runs the corrected counterparts.
	Fixed
)

func (v Variant) String() string {
	switch v {
	case Buggy:
		return "buggy"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ErrUnknownVariant is returned by ParseVariant.
var ErrUnknownVariant = errors.New("unknown variant")

// ParseVariant accepts "buggy", "fixed" or the empty string (buggy).
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "buggy":
		return Buggy, nil
	case "fixed":
		return Fixed, nil
	}
	return Buggy, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Env is what an exercise sees while it runs.
type Env struct {
	Variant Variant
	enabled map[string]bool
}

// NewEnv builds an Env with the given opt-in names switched on.
func NewEnv(v Variant, enable ...string) Env {
	e := Env{Variant: v, enabled: make(map[string]bool, len(enable))}
	for _, name := range enable {
		e.enabled[name] = true
	}
	return e
}

// Enabled reports whether a disabled-by-default exercise or path was opted in.
func (e Env) Enabled(name string) bool {
	return e.enabled[name]
}

// Exercise is one self-contained demonstration.
type Exercise struct {
	Name     string
	Title    string
	Disabled bool     // skipped unless Name is enabled
	Paths    []string // opt-in alternate paths inside the exercise
	Run      func(p *Printer, env Env)
}

// Sheet is an ordered set of exercises with a banner.
type Sheet struct {
	Name      string
	Title     string
	Exercises []Exercise
	Outro     []string
}

// RunOptions controls a sheet run.
type RunOptions struct {
	Variant Variant
	Enable  []string
}

// Switches lists every name that RunOptions.Enable accepts for the sheet.
func (s Sheet) Switches() []string {
	var names []string
	for _, ex := range s.Exercises {
		if ex.Disabled {
			names = append(names, ex.Name)
		}
		names = append(names, ex.Paths...)
	}
	return names
}

// Exercise looks an exercise up by name.
func (s Sheet) Exercise(name string) (Exercise, bool) {
	for _, ex := range s.Exercises {
		if ex.Name == name {
			return ex, true
		}
	}
	return Exercise{}, false
}

// RunAll narrates every enabled exercise in order. A panicking exercise is not
// recovered: the disabled crash paths terminate the process when opted in.
func (s Sheet) RunAll(w io.Writer, opts RunOptions) error {
	p := NewPrinter(w)
	env := NewEnv(opts.Variant, opts.Enable...)

	p.Banner(s.Title)
	for i, ex := range s.Exercises {
		if ex.Disabled && !env.Enabled(ex.Name) {
			continue
		}
		p.Blank()
		p.Linef("=== Exercise %d: %s ===", i+1, ex.Title)
		ex.Run(p, env)
	}
	p.Blank()
	p.Line("✓ All exercises complete!")
	for _, line := range s.Outro {
		p.Line(line)
	}
	return p.Err()
}

// Printer writes narration lines and keeps the first write error.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter wraps w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Line writes s followed by a newline.
func (p *Printer) Line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s+"\n")
}

// Linef formats and writes one line.
func (p *Printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	p.Line("")
}

// Banner draws a box around title.
func (p *Printer) Banner(title string) {
	width := utf8.RuneCountInString(title) + 4
	bar := strings.Repeat("═", width)
	p.Blank()
	p.Line("╔" + bar + "╗")
	p.Line("║  " + title + "  ║")
	p.Line("╚" + bar + "╝")
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}
