package tour

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Write prints the report as one line per stop.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Tour of %s (%s): %d markers, %d stops\n", r.Sheet, r.Variant, r.Markers, len(r.Stops))
	for i, s := range r.Stops {
		name := s.Marker
		if name == "" {
			name = s.Reason
		}
		fmt.Fprintf(&b, "%3d. %-18s %s:%d depth=%d", i+1, name, filepath.Base(s.File), s.Line, s.Depth)
		if s.Hit > 1 {
			fmt.Fprintf(&b, " hit=%d", s.Hit)
		}
		for _, v := range s.Order {
			fmt.Fprintf(&b, " %s=%s", v, s.Values[v])
		}
		b.WriteString("\n")
	}
	if r.Truncated {
		b.WriteString("... stopped early, max stops reached\n")
	} else {
		fmt.Fprintf(&b, "Program exited with status %d\n", r.ExitStatus)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
