package debugger

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const markerTag = "BREAKPOINT:"

// Marker is a named breakpoint location declared in source with a comment of the form
//
//	// BREAKPOINT: name [watch=a,b] [if=expr]
//
// A marker trailing code applies to that line. A marker on a comment-only line
// applies to the next non-blank line.
type Marker struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`
	Line      int      `json:"line"`
	Watch     []string `json:"watch,omitempty"`
	Condition string   `json:"condition,omitempty"`
}

// ParseMarker parses the comment text of a marker line. ok is false when the
// line carries no marker.
func ParseMarker(text string) (m Marker, ok bool, err error) {
	idx := strings.Index(text, "//")
	if idx < 0 {
		return Marker{}, false, nil
	}
	comment := strings.TrimSpace(text[idx+2:])
	if !strings.HasPrefix(comment, markerTag) {
		return Marker{}, false, nil
	}

	fields := strings.Fields(strings.TrimPrefix(comment, markerTag))
	if len(fields) == 0 {
		return Marker{}, true, fmt.Errorf("marker without a name")
	}
	m.Name = fields[0]
	for _, f := range fields[1:] {
		key, value, found := strings.Cut(f, "=")
		if !found {
			return m, true, fmt.Errorf("marker %s: malformed option %q", m.Name, f)
		}
		switch key {
		case "watch":
			for _, w := range strings.Split(value, ",") {
				if w != "" {
					m.Watch = append(m.Watch, w)
				}
			}
		case "if":
			m.Condition = value
		default:
			return m, true, fmt.Errorf("marker %s: unknown option %q", m.Name, key)
		}
	}
	return m, true, nil
}

// ScanFile returns the markers declared in one Go source file.
func ScanFile(path string) ([]Marker, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		markers []Marker
		pending []Marker
		lineNo  int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		m, ok, err := ParseMarker(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", abs, lineNo, err)
		}
		commentOnly := strings.HasPrefix(trimmed, "//")
		if ok && commentOnly {
			m.File = abs
			pending = append(pending, m)
			continue
		}
		if commentOnly {
			continue
		}

		for _, p := range pending {
			p.Line = lineNo
			markers = append(markers, p)
		}
		pending = nil
		if ok {
			m.File, m.Line = abs, lineNo
			markers = append(markers, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%s: marker %s is not followed by code", abs, pending[0].Name)
	}
	return markers, nil
}

// ScanMarkers walks root and returns every marker in its non-test Go files,
// ordered by file and line. testdata, vendor and directories starting with
// "_" or "." are skipped.
func ScanMarkers(root string) ([]Marker, error) {
	var markers []Marker
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "testdata" || name == "vendor" ||
				strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		found, err := ScanFile(path)
		if err != nil {
			return err
		}
		markers = append(markers, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan markers under %s: %w", root, err)
	}

	sort.Slice(markers, func(i, j int) bool {
		if markers[i].File != markers[j].File {
			return markers[i].File < markers[j].File
		}
		return markers[i].Line < markers[j].Line
	})
	return markers, nil
}

// FindMarker returns the marker with the given name.
func FindMarker(markers []Marker, name string) (Marker, bool) {
	for _, m := range markers {
		if m.Name == name {
			return m, true
		}
	}
	return Marker{}, false
}
