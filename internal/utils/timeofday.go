package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// MinutesToHHMM renders minutes-since-midnight as "HH:MM".
func MinutesToHHMM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// HHMMToMinutes parses "HH:MM" into minutes-since-midnight.
func HHMMToMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return h*60 + m, nil
}
