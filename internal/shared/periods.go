package shared

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// MonthStart returns the first instant of t's month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateRange bounds a query on an inclusive interval. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange parses start/end query values. Both accept RFC3339 or
// YYYY-MM-DD; a date-only end covers the whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var rng DateRange
	if start = strings.TrimSpace(start); start != "" {
		from, _, err := parseInstant(start)
		if err != nil {
			return DateRange{}, BadRequest("invalid start_date %q", start)
		}
		rng.From = &from
	}
	if end = strings.TrimSpace(end); end != "" {
		to, dateOnly, err := parseInstant(end)
		if err != nil {
			return DateRange{}, BadRequest("invalid end_date %q", end)
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		rng.To = &to
	}
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return DateRange{}, BadRequest("end_date must not precede start_date")
	}
	return rng, nil
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

func parseInstant(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}

// ParseTimestamp parses an RFC3339 instant or a YYYY-MM-DD date (midnight UTC).
func ParseTimestamp(value string) (time.Time, error) {
	t, _, err := parseInstant(strings.TrimSpace(value))
	return t, err
}
