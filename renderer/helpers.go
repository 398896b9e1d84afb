package renderer

import "strings"

// Bar returns a proportional bar of the given width. Width zero
// renders as empty, not as a sliver, so unpriced native categories
// carry no bar at all.
func Bar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}
