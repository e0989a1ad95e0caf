package advanced

// CheckNumber classifies n by sign. The final return is unreachable for any int.
func CheckNumber(n int) string {
	if n > 0 { // BREAKPOINT: check-number watch=n
		return "Positive"
	} else if n < 0 {
		return "Negative"
	} else if n == 0 {
		return "Zero"
	}
	return "Unknown"
}
