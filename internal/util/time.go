package util

import "time"

// Now returns the current Unix timestamp in seconds
func Now() uint64 {
	return uint64(time.Now().Unix())
}

// FormatDuration formats a duration in human-readable form, rounding to
// a resolution appropriate for its magnitude.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Hour {
		return d.Round(time.Second).String()
	}
	return d.Round(time.Minute).String()
}
