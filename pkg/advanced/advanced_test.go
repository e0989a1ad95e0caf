package advanced

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

func TestFindMinimumKeepsBug(t *testing.T) {
	assert.Equal(t, 50, FindMinimum([]int{50, 10, 80, 5, 90, 3, 100}))
	assert.Equal(t, 0, FindMinimum(nil))
	assert.Equal(t, 0, FindMinimum([]int{}))
}

func TestFindMinimumAtFirstIndex(t *testing.T) {
	cases := [][]int{
		{1},
		{1, 5, 3},
		{-7, 0, 7, -7},
		{4, 4, 4},
	}

	for _, nums := range cases {
		assert.Equal(t, FindMinimumFixed(nums), FindMinimum(nums), "FindMinimum(%v)", nums)
	}
}

func TestFindMinimumFixed(t *testing.T) {
	cases := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{50, 10, 80, 5, 90, 3, 100}, 3},
		{[]int{9, 8, 7}, 7},
		{[]int{-1, -5, 2}, -5},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FindMinimumFixed(tc.in), "FindMinimumFixed(%v)", tc.in)
	}
}

func TestReverseString(t *testing.T) {
	assert.Equal(t, "gubeD", ReverseString("Debug"))
	assert.Equal(t, "", ReverseString(""))
	assert.Equal(t, "a", ReverseString("a"))
	assert.Equal(t, "çba", ReverseString("abç"))
}

func TestReverseStringInvolution(t *testing.T) {
	inputs := []string{
		"", "x", "Debug", "racecar", "hello, world", "日本語", strings.Repeat("ab", 50),
		// not valid UTF-8
		"\xff", "a\xffb", "\xe6\x97",
		// 日 and 日本 stored back to front
		"\xa5\x97\xe6", "\xac\x9c\xe6\xa5\x97\xe6",
	}
	for _, s := range inputs {
		assert.Equal(t, s, ReverseString(ReverseString(s)), "%q", s)
	}
}

func TestReverseStringInvalidUTF8(t *testing.T) {
	assert.Equal(t, "\xff", ReverseString("\xff"))
	assert.Equal(t, "b\xffa", ReverseString("a\xffb"))
	assert.Equal(t, "\x97\xe6", ReverseString("\xe6\x97"))
	assert.Equal(t, "\xac\x9c\xe6\xa5\x97\xe6", ReverseString("\xa5\x97\xe6\xac\x9c\xe6"))
}

func TestCheckNumber(t *testing.T) {
	assert.Equal(t, "Positive", CheckNumber(5))
	assert.Equal(t, "Negative", CheckNumber(-3))
	assert.Equal(t, "Zero", CheckNumber(0))

	for _, n := range []int{math.MinInt, -1, 0, 1, math.MaxInt} {
		assert.NotEqual(t, "Unknown", CheckNumber(n))
	}
}

func TestSafeDivide(t *testing.T) {
	q, err := SafeDivide(10, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, q)

	_, err = SafeDivide(10, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestUncheckedDivide(t *testing.T) {
	assert.Equal(t, 5.0, UncheckedDivide(10, 2))
	assert.True(t, math.IsInf(UncheckedDivide(10, 0), 1))
	assert.True(t, math.IsInf(UncheckedDivide(-10, 0), -1))
	assert.True(t, math.IsNaN(UncheckedDivide(0, 0)))
}

func TestAt(t *testing.T) {
	nums := []int{10, 20, 30}

	v, err := At(nums, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	_, err = At(nums, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = At(nums, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Panics(t, func() { UncheckedAt(nums, 10) })
}

func TestElements(t *testing.T) {
	got := Elements([]int{10, 20})
	assert.Equal(t, []Element{{Index: 0, Value: 10}, {Index: 1, Value: 20}}, got)
	assert.Empty(t, Elements(nil))
}

func TestSumMatrix(t *testing.T) {
	steps, total := SumMatrix([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	assert.Equal(t, 45, total)
	require.Len(t, steps, 9)
	assert.Equal(t, MatrixStep{Row: 1, Col: 1, Value: 5, Sum: 15}, steps[4])
	assert.Equal(t, MatrixStep{Row: 2, Col: 2, Value: 9, Sum: 45}, steps[8])

	steps, total = SumMatrix([][]int{{1}, {}, {2, 3}})
	assert.Equal(t, 6, total)
	assert.Len(t, steps, 3)
}

func TestDescribePointer(t *testing.T) {
	v := 42
	assert.Equal(t, "ptr1 is null", DescribePointer("ptr1", nil))
	assert.Equal(t, "ptr2: 42", DescribePointer("ptr2", &v))
}

func TestDanglingLocalIsOverwritten(t *testing.T) {
	f := NewFrame(4)
	p := DanglingLocal(f)
	assert.Equal(t, 100, *p)

	assert.Equal(t, 7, Clobber(f, 7))
	assert.Equal(t, 7, *p, "the slot behind the returned pointer was reused")
}

func TestOwned(t *testing.T) {
	o := NewOwned(100)
	v, err := o.Value()
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	o.Release()
	o.Release()
	_, err = o.Value()
	assert.ErrorIs(t, err, ErrReleased)

	var missing *Owned[int]
	missing.Release()
	_, err = missing.Value()
	assert.ErrorIs(t, err, ErrReleased)
}

func TestOwnedBuffer(t *testing.T) {
	o := NewOwnedBuffer(100)
	defer o.Release()

	buf, err := o.Value()
	require.NoError(t, err)
	assert.Len(t, buf, 100)
	assert.Equal(t, 50, buf[50])
	assert.Equal(t, 99, buf[99])
}

func TestCallChain(t *testing.T) {
	tr := CallChain()
	assert.Equal(t, []string{
		"Level 1 calling level 2...",
		"Level 2 calling level 3...",
		"Level 3 reached",
	}, tr.Lines)

	require.Len(t, tr.Frames, 3)
	assert.True(t, strings.HasSuffix(tr.Frames[0], ".Level1"), tr.Frames[0])
	assert.True(t, strings.HasSuffix(tr.Frames[1], ".Level2"), tr.Frames[1])
	assert.True(t, strings.HasSuffix(tr.Frames[2], ".Level3"), tr.Frames[2])

	require.Len(t, tr.Depths, 3)
	assert.Equal(t, tr.Depths[0]+1, tr.Depths[1])
	assert.Equal(t, tr.Depths[1]+1, tr.Depths[2])
}

func TestSheetBuggyRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Sheet().RunAll(&buf, worksheet.RunOptions{}))

	out := buf.String()
	for _, want := range []string{
		"=== Exercise 1: Pointer Issues ===\nptr1 is null\nptr2: 42\n",
		"numbers[4] = 50\n",
		"Minimum value: 50\n",
		"Owned value: 100\n",
		"matrix[2][2] = 9, sum = 45\nTotal sum: 45\n",
		"Original: Debug\nReversed: gubeD\nEmpty reversed: ''\n",
		"Owned buffer example: safe[50] = 50\n",
		"5 is: Positive\n-3 is: Negative\n0 is: Zero\n",
		"=== Exercise 10: Call Stack ===\nLevel 1 calling level 2...\nLevel 2 calling level 3...\nLevel 3 reached\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Safe Division")
	assert.NotContains(t, out, "Dangling")
}

func TestSheetFixedRun(t *testing.T) {
	var buf bytes.Buffer
	opts := worksheet.RunOptions{
		Variant: worksheet.Fixed,
		Enable:  []string{"safe-division", PathOutOfBounds, PathMatrixOutOfBounds, PathDangling},
	}
	require.NoError(t, Sheet().RunAll(&buf, opts))

	out := buf.String()
	assert.Contains(t, out, "Minimum value: 3\n")
	assert.Contains(t, out, "numbers[10] unavailable: index out of range: index 10 with length 5\n")
	assert.Contains(t, out, "matrix[3] unavailable: index out of range: index 3 with length 3\n")
	assert.Contains(t, out, "=== Exercise 9: Safe Division ===\n10 / 2 = 5\n10 / 0 = error: 10 / 0: division by zero\n")
	assert.NotContains(t, out, "Dangling")
}

func TestSheetBuggyOptInPaths(t *testing.T) {
	var buf bytes.Buffer
	opts := worksheet.RunOptions{Enable: []string{"safe-division", PathDangling}}
	require.NoError(t, Sheet().RunAll(&buf, opts))

	out := buf.String()
	assert.Contains(t, out, "Dangling pointer value: 100\nDangling pointer after another call: 7\n")
	assert.Contains(t, out, "10 / 0 = +Inf\n")

	for _, path := range []string{PathOutOfBounds, PathMatrixOutOfBounds} {
		opts := worksheet.RunOptions{Enable: []string{path}}
		assert.Panics(t, func() { _ = Sheet().RunAll(&bytes.Buffer{}, opts) }, path)
	}
}
