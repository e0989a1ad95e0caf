package advanced

import "unicode/utf8"

// ReverseString returns s with its characters in reverse order. Text that is
// not valid UTF-8 is reversed byte by byte, so ReverseString(ReverseString(s))
// is s for every string.
func ReverseString(s string) string {
	if s == "" {
		return ""
	}
	if utf8.ValidString(s) {
		return reverseRunes(s)
	}

	b := reverseBytes(s)
	if !utf8.ValidString(b) {
		return b
	}
	// s is UTF-8 written back to front: reverse the characters but keep each
	// one's bytes mirrored, so the result stays in the same invalid form.
	return reverseBytes(reverseRunes(b))
}

func reverseRunes(s string) string {
	runes := []rune(s)
	result := make([]rune, 0, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		result = append(result, runes[i]) // BREAKPOINT: reverse-loop watch=i,result
	}
	return string(result)
}

func reverseBytes(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
