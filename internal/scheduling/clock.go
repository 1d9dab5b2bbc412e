package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DailyLimitMinutes is the legal cap on a driver's cumulative assigned
// shift time for one calendar date (7.5 hours).
const DailyLimitMinutes = 450

// ParseClock converts an "HH:MM" 24h start time into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid start time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid start time %q, hour out of range", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid start time %q, minute out of range", s)
	}
	return hour*60 + minute, nil
}

var legacyDuration = regexp.MustCompile(`^(\d+)h(?:\s*(\d+)m?)?$`)

// ParseLegacyDuration converts the "1h 30m" route duration strings used by
// the reference data into minutes. This is the only place such strings are
// interpreted; internal code carries minutes.
func ParseLegacyDuration(s string) (int, error) {
	m := legacyDuration.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q, expected forms like \"2h\" or \"1h 30m\"", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	if minutes > 59 {
		return 0, fmt.Errorf("invalid duration %q, minute part out of range", s)
	}
	total := hours*60 + minutes
	if total == 0 {
		return 0, fmt.Errorf("invalid duration %q, must be positive", s)
	}
	return total, nil
}

// overlaps reports whether two half-open windows [s1,e1) and [s2,e2) on the
// same date's minute axis intersect. Touching endpoints do not conflict.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}
