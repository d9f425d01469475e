// Package timerange resolves the CLI's time-selection flags into the
// inclusive search window the camera index is queried with.
package timerange

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"camctl/internal/services"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

var sinceRe = regexp.MustCompile(`^(\d+)([mhd])$`)

// ParseSince resolves a relative period like "30m", "2h" or "3d" into a
// window ending now.
func ParseSince(since string, now time.Time) (Window, error) {
	match := sinceRe.FindStringSubmatch(since)
	if match == nil {
		return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse since",
			fmt.Sprintf("invalid period %q, use e.g. 30m, 2h, 3d", since), nil)
	}
	amount, err := strconv.Atoi(match[1])
	if err != nil || amount <= 0 {
		return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse since",
			fmt.Sprintf("period must be positive, got %q", since), nil)
	}

	var unit time.Duration
	switch match[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	return Window{Start: now.Add(-time.Duration(amount) * unit), End: now}, nil
}

// ParseDate resolves "today", "yesterday" or a YYYY-MM-DD date into a
// full-day window, 00:00:00 through 23:59:59 inclusive.
func ParseDate(date string, now time.Time) (Window, error) {
	var day time.Time
	switch date {
	case "today":
		day = now
	case "yesterday":
		day = now.AddDate(0, 0, -1)
	default:
		parsed, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse date",
				fmt.Sprintf("invalid date %q, use YYYY-MM-DD, today or yesterday", date), nil)
		}
		day = parsed
	}
	return dayWindow(day, day), nil
}

// ParseRange resolves a --from/--to date pair into a window spanning both
// full days.
func ParseRange(from, to string, loc *time.Location) (Window, error) {
	start, err := time.ParseInLocation("2006-01-02", from, loc)
	if err != nil {
		return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse range",
			fmt.Sprintf("invalid start date %q", from), nil)
	}
	end, err := time.ParseInLocation("2006-01-02", to, loc)
	if err != nil {
		return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse range",
			fmt.Sprintf("invalid end date %q", to), nil)
	}
	if end.Before(start) {
		return Window{}, services.Wrap(services.ErrValidation, "timerange", "parse range",
			fmt.Sprintf("end date %q precedes start date %q", to, from), nil)
	}
	return dayWindow(start, end), nil
}

func dayWindow(first, last time.Time) Window {
	loc := first.Location()
	return Window{
		Start: time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc),
	}
}
