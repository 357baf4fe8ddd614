package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to width terminal cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Wrap soft-wraps s at width cells and prefixes every line with indent.
func Wrap(s string, width int, indent string) string {
	if width < 8 {
		width = 8
	}
	wrapped := ansi.Wordwrap(s, width, "")
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

// RelativeTime renders t as "5m", "3h", "2d" relative to now. Older
// timestamps fall back to a date.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	default:
		return t.Format("Jan 02 2006")
	}
}

// CompactCount renders vote counters: 999, 1.2K, 34K, 1.1M.
func CompactCount(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	switch {
	case n < 1000:
		return fmt.Sprintf("%s%d", sign, n)
	case n < 10000:
		return fmt.Sprintf("%s%.1fK", sign, float64(n)/1000)
	case n < 1000000:
		return fmt.Sprintf("%s%dK", sign, n/1000)
	default:
		return fmt.Sprintf("%s%.1fM", sign, float64(n)/1000000)
	}
}
