package main

import "fmt"

// Program with an off-by-one loop for exercising the debugger
func main() {
	fmt.Println("Starting marked program...")

	count := 0
	limit := 4
	numbers := []int{1, 2, 3, 4, 5}

	total := 0
	for count <= limit {
		// BREAKPOINT: loop-body watch=count,total
		total += numbers[count]
		count++
	}

	fmt.Printf("Total is: %d\n", total) // BREAKPOINT: report if=total>0 watch=total
	fmt.Println("Program completed")
}
