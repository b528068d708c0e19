package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?\s*([AaPp]\.?[Mm]\.?)?$`)

// ParseClock accepts "14:30", "2:30 PM", "12 AM" and returns the 24-hour
// hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, NewValidationError("time", "unrecognised clock value "+strconv.Quote(s))
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, 0, NewValidationError("time", "minute out of range in "+strconv.Quote(s))
	}

	suffix := strings.ToUpper(strings.ReplaceAll(m[4], ".", ""))
	switch suffix {
	case "":
		if hour > 23 {
			return 0, 0, NewValidationError("time", "hour out of range in "+strconv.Quote(s))
		}
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, NewValidationError("time", "12-hour clock hour out of range in "+strconv.Quote(s))
		}
		hour = To24Hour(hour, suffix == "PM")
	}
	return hour, minute, nil
}

// To24Hour: 12 AM is 0, 12 PM stays 12, other PM hours add 12.
func To24Hour(hour int, pm bool) int {
	switch {
	case hour == 12 && !pm:
		return 0
	case hour == 12 && pm:
		return 12
	case pm:
		return hour + 12
	}
	return hour
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02/01/2006"}

// ParseDate reads a calendar date. Any time-of-day component is discarded.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, NewValidationError("date", "invalid date format "+strconv.Quote(s))
}

// ParseInstant reads either a full RFC3339 timestamp or a bare date
// (midnight UTC).
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// CombineDateClock joins a calendar date and a 12h or 24h clock value into
// one instant in loc.
func CombineDateClock(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}
