package domain

import "strings"

// NormalizeNationalID strips separators and left-pads the id to nine digits.
// Returns false if the result is not a nine-digit string.
func NormalizeNationalID(id string) (string, bool) {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '.':
			// separator, skip
		default:
			return "", false
		}
	}
	s := b.String()
	if s == "" || len(s) > 9 {
		return "", false
	}
	return strings.Repeat("0", 9-len(s)) + s, true
}

// ValidNationalID checks the Israeli national-id check digit: digits are
// weighted 1,2,1,2,... left to right, two-digit products are reduced by
// summing their digits, and the total must be divisible by 10.
func ValidNationalID(id string) bool {
	s, ok := NormalizeNationalID(id)
	if !ok {
		return false
	}
	sum := 0
	for i, r := range s {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 2
		}
		if d > 9 {
			d -= 9
		}
		sum += d
	}
	return sum%10 == 0
}
