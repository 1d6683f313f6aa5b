package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimeOnDate combines a base date with a time-of-day string
// (e.g. "08:00", "08:00:00" or "08:00:00.0000000" as stored by the
// access control system; the fractional part is dropped).
func ParseTimeOnDate(baseDate time.Time, timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)
	if i := strings.Index(timeStr, "."); i >= 0 {
		timeStr = timeStr[:i]
	}

	t, err := time.Parse("15:04:05", timeStr)
	if err != nil {
		t, err = time.Parse("15:04", timeStr)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time of day: %v", timeStr)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}

// DateOf truncates a timestamp to midnight of its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}
