package task

import "strconv"

// FormatValue renders a float the shortest way that round-trips. Violation
// messages are deduplicated by exact text, so every numeric value in a
// message must go through this one formatter.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
