package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts everything time.ParseDuration does plus day ("7d")
// and week ("2w") suffixes.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	if dur, err := time.ParseDuration(s); err == nil {
		return dur, nil
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	numStr := s[:len(s)-1]
	unit := s[len(s)-1:]

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", numStr)
	}

	switch unit {
	case "d":
		return time.Duration(num) * 24 * time.Hour, nil
	case "w":
		return time.Duration(num) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an absolute timestamp in RFC3339, "YYYY-MM-DD HH:MM:SS"
// or "YYYY-MM-DD" form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", s)
}

// ParseRelativeTime parses either an absolute date or a signed offset from
// now ("-30d", "+1h").
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time string")
	}

	if t, err := ParseDate(s); err == nil {
		return t, nil
	}

	if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+") {
		return time.Time{}, fmt.Errorf("relative time must start with + or -: %s", s)
	}

	isNegative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")

	dur, err := ParseDuration(s)
	if err != nil {
		return time.Time{}, err
	}

	if isNegative {
		return now.Add(-dur), nil
	}
	return now.Add(dur), nil
}

// Sequence emits the first n timestamps of the arithmetic progression
// starting at start with the given step. Always ascending for step > 0.
func Sequence(start time.Time, step time.Duration, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out
}

// Spaced emits n timestamps evenly spaced over [start, end] inclusive of
// both bounds. n == 1 yields just start.
func Spaced(start, end time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := end.Sub(start) / time.Duration(n-1)
	for i := 0; i < n-1; i++ {
		out[i] = start.Add(time.Duration(i) * step)
	}
	out[n-1] = end
	return out
}
