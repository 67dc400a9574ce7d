package utils

import (
	"fmt"
	"strings"
	"time"
)

// CalendarDateLayout is the wire format for every start_date/end_date query
// parameter.
const CalendarDateLayout = "2006-01-02"

// InvalidDateError reports a date string that could not be parsed, or a date
// outside the representable range.
type InvalidDateError struct {
	Value  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

// InvalidRangeError reports an end date earlier than the start date.
type InvalidRangeError struct {
	StartDate time.Time
	EndDate   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end date %s is before start date %s",
		e.EndDate.Format(CalendarDateLayout), e.StartDate.Format(CalendarDateLayout))
}

// ParseCalendarDate parses an ISO calendar date and truncates it to UTC
// midnight.
func ParseCalendarDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, &InvalidDateError{Value: value, Reason: "empty"}
	}
	t, err := time.Parse(CalendarDateLayout, v)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: value, Reason: err.Error()}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateDateRange rejects ranges whose end precedes their start. Equal start
// and end is a valid one-day range.
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return &InvalidRangeError{StartDate: startDate, EndDate: endDate}
	}
	return nil
}

// TruncateToDay normalizes a timestamp to its UTC calendar date.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
