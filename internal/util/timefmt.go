package util

import (
	"fmt"
	"time"
)

// FormatCountdown renders a remaining duration as H:M:S the way the mobile
// client expects ("96:0:0" for exactly four days). Negative durations clamp
// to zero.
func FormatCountdown(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	hours := secs / 3600
	secs %= 3600
	minutes := secs / 60
	seconds := secs % 60
	return fmt.Sprintf("%d:%d:%d", hours, minutes, seconds)
}
