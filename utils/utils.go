// Package utils holds helpers shared by the command line tools.
package utils

import (
	"fmt"
	"math"
	"time"
)

// FormatTime formats a duration into a short human readable value.
// Durations under a second are shown in milliseconds.
func FormatTime(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(math.Mod(d.Seconds(), 60)))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh:%dm:%ds",
			int64(d.Hours()), int64(math.Mod(d.Minutes(), 60)), int64(math.Mod(d.Seconds(), 60)))
	}
	return fmt.Sprintf("%dd:%dh:%dm:%ds",
		int64(d.Hours()/24), int64(math.Mod(d.Hours(), 24)),
		int64(math.Mod(d.Minutes(), 60)), int64(math.Mod(d.Seconds(), 60)))
}

// Decorate wraps s in color when enabled is true.
func Decorate(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + DefaultColor
}
