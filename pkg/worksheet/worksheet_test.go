package worksheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet() Sheet {
	return Sheet{
		Name:  "demo",
		Title: "Demo Worksheet",
		Exercises: []Exercise{
			{
				Name:  "hello",
				Title: "Hello",
				Run: func(p *Printer, env Env) {
					if env.Variant == Fixed {
						p.Line("hello, fixed")
						return
					}
					p.Line("hello, buggy")
				},
			},
			{
				Name:     "crash",
				Title:    "Crash",
				Disabled: true,
				Run: func(p *Printer, env Env) {
					p.Line("about to crash")
					if env.Variant == Buggy {
						var m map[string]int
						m["boom"] = 1
					}
					p.Line("survived")
				},
			},
			{
				Name:  "optional",
				Title: "Optional Path",
				Paths: []string{"extra"},
				Run: func(p *Printer, env Env) {
					p.Line("always")
					if env.Enabled("extra") {
						p.Line("extra path")
					}
				},
			},
		},
		Outro: []string{"bye"},
	}
}

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", Buggy, false},
		{"buggy", Buggy, false},
		{" Fixed ", Fixed, false},
		{"broken", Buggy, true},
	}

	for _, tc := range cases {
		got, err := ParseVariant(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrUnknownVariant)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestRunAllSkipsDisabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testSheet().RunAll(&buf, RunOptions{}))

	out := buf.String()
	assert.Contains(t, out, "║  Demo Worksheet  ║")
	assert.Contains(t, out, "=== Exercise 1: Hello ===")
	assert.NotContains(t, out, "Exercise 2")
	assert.Contains(t, out, "=== Exercise 3: Optional Path ===")
	assert.NotContains(t, out, "extra path")
	assert.True(t, strings.HasSuffix(out, "✓ All exercises complete!\nbye\n"))
}

func TestRunAllEnabledPath(t *testing.T) {
	var buf bytes.Buffer
	err := testSheet().RunAll(&buf, RunOptions{Variant: Fixed, Enable: []string{"crash", "extra"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "hello, fixed")
	assert.Contains(t, out, "=== Exercise 2: Crash ===")
	assert.Contains(t, out, "survived")
	assert.Contains(t, out, "extra path")
}

func TestRunAllPanicsOnEnabledCrash(t *testing.T) {
	assert.Panics(t, func() {
		_ = testSheet().RunAll(&bytes.Buffer{}, RunOptions{Enable: []string{"crash"}})
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRunAllReportsWriteError(t *testing.T) {
	err := testSheet().RunAll(failingWriter{}, RunOptions{})
	assert.EqualError(t, err, "closed")
}

func TestRunCapturedRecoversPanic(t *testing.T) {
	out, err := RunCaptured(testSheet(), RunOptions{Enable: []string{"crash"}})

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "crash", pe.Exercise)
	assert.Contains(t, out, "about to crash")
	assert.Contains(t, out, "panic: assignment to entry in nil map")
	assert.NotContains(t, out, "survived")
}

func TestCompare(t *testing.T) {
	diff, err := Compare(testSheet(), []string{"crash"}, 1)
	require.NoError(t, err)

	assert.Contains(t, diff, "--- demo (buggy)")
	assert.Contains(t, diff, "+++ demo (fixed)")
	assert.Contains(t, diff, "-hello, buggy")
	assert.Contains(t, diff, "+hello, fixed")
	assert.Contains(t, diff, "+survived")
}

func TestCompareIdentical(t *testing.T) {
	s := Sheet{
		Name:  "same",
		Title: "Same",
		Exercises: []Exercise{{
			Name:  "one",
			Title: "One",
			Run:   func(p *Printer, env Env) { p.Line("constant") },
		}},
	}

	diff, err := Compare(s, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestSwitches(t *testing.T) {
	assert.Equal(t, []string{"crash", "extra"}, testSheet().Switches())
}
