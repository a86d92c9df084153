package components

import "strconv"

// FormatHours prints hours without trailing zeros: 3, 3.5, 2.25.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
