package debugger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarker(t *testing.T) {
	m, ok, err := ParseMarker("\t\tseen = append(seen, i) // BREAKPOINT: count-loop if=i==5 watch=i,seen")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "count-loop", m.Name)
	assert.Equal(t, "i==5", m.Condition)
	assert.Equal(t, []string{"i", "seen"}, m.Watch)

	_, ok, err = ParseMarker("x := 1 // plain comment")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParseMarker("x := 1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParseMarker("// BREAKPOINT:")
	assert.True(t, ok)
	assert.ErrorContains(t, err, "without a name")

	_, _, err = ParseMarker("// BREAKPOINT: x colour=red")
	assert.ErrorContains(t, err, "unknown option")

	_, _, err = ParseMarker("// BREAKPOINT: x stray")
	assert.ErrorContains(t, err, "malformed option")
}

func TestScanMarkedFixture(t *testing.T) {
	markers, err := ScanMarkers(filepath.Join("testdata", "marked"))
	require.NoError(t, err)
	require.Len(t, markers, 2)

	// A comment-only marker lands on the next line of code
	assert.Equal(t, "loop-body", markers[0].Name)
	assert.Equal(t, 16, markers[0].Line)
	assert.True(t, filepath.IsAbs(markers[0].File))

	assert.Equal(t, "report", markers[1].Name)
	assert.Equal(t, 20, markers[1].Line)
	assert.Equal(t, "total>0", markers[1].Condition)

	m, ok := FindMarker(markers, "report")
	assert.True(t, ok)
	assert.Equal(t, []string{"total"}, m.Watch)
	_, ok = FindMarker(markers, "missing")
	assert.False(t, ok)
}

func TestScanMarkersSkipsTestsAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	write := func(rel, body string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("a.go", "package a\n\nfunc A() int {\n\treturn 1 // BREAKPOINT: a\n}\n")
	write("a_test.go", "package a\n\n// BREAKPOINT: in-test\nvar x = 1\n")
	write("testdata/t.go", "package t\n\nvar y = 1 // BREAKPOINT: in-testdata\n")
	write("_skip/s.go", "package s\n\nvar z = 1 // BREAKPOINT: underscored\n")
	write("sub/b.go", "package sub\n\nvar w = 2 // BREAKPOINT: b\n")

	markers, err := ScanMarkers(root)
	require.NoError(t, err)
	var names []string
	for _, m := range markers {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestScanFileDanglingMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.go")
	require.NoError(t, os.WriteFile(path, []byte("package d\n\n// BREAKPOINT: orphan\n"), 0o644))
	_, err := ScanFile(path)
	assert.ErrorContains(t, err, "not followed by code")
}

func TestScanRepositoryMarkers(t *testing.T) {
	markers, err := ScanMarkers(filepath.Join("..", ".."))
	require.NoError(t, err)

	for _, name := range []string{"find-minimum", "dangling-return", "level3", "count-loop", "sum-loop"} {
		_, ok := FindMarker(markers, name)
		assert.True(t, ok, "marker %s", name)
	}
}
