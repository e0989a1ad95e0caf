package advanced

import "fmt"

// DescribePointer narrates a possibly nil pointer.
func DescribePointer(name string, p *int) string {
	if p == nil { // BREAKPOINT: pointer-check watch=name,p
		return name + " is null"
	}
	return fmt.Sprintf("%s: %d", name, *p)
}
