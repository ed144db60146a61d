package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration normalizes a stored episode duration for the
// itunes:duration tag. Accepted inputs: a bare integer (seconds), "MM:SS"
// (one colon), or "HH:MM:SS" (two colons, passed through unchanged). Missing
// or unrecognized values render as "00:00:00"; the validator flags those so
// they are not silently mis-formatted.
func FormatDuration(d *string) string {
	if d == nil {
		return "00:00:00"
	}
	s := strings.TrimSpace(*d)
	if s == "" {
		return "00:00:00"
	}

	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return "00:00:00"
		}
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, errM := strconv.Atoi(parts[0])
		sec, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil || m < 0 || sec < 0 {
			return "00:00:00"
		}
		return fmt.Sprintf("00:%02d:%02d", m, sec)
	case 3:
		return s
	}
	return "00:00:00"
}

// wellFormedDuration reports whether a duration string is one of the
// accepted shapes. Used by the validator to warn on divergent input.
func wellFormedDuration(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return secs >= 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return false
		}
	}
	return true
}
