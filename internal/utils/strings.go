package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeatLabels trims, uppercases and drops empty seat labels.
func NormalizeSeatLabels(arr []string) []string {
	out := make([]string, 0, len(arr))
	for _, s := range arr {
		x := strings.ToUpper(strings.TrimSpace(s))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

// HasDuplicates reports whether the slice contains a repeated value
// after trim/uppercase normalization.
func HasDuplicates(arr []string) bool {
	seen := map[string]bool{}
	for _, v := range arr {
		k := strings.ToUpper(strings.TrimSpace(v))
		if k == "" {
			continue
		}
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

// JoinSeatNumbers renders the seat snapshot stored on a booking row.
func JoinSeatNumbers(seats []string) string {
	return strings.Join(seats, ",")
}

// SplitSeatNumbers is the inverse of JoinSeatNumbers.
func SplitSeatNumbers(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
