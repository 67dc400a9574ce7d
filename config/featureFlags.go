package config

import (
	"os"
	"strings"
)

// FillEmptyCalendarDays controls whether day-bucketed reporting queries emit a
// zero row for every in-range day with no activity. The compatible default is
// sparse output (only days with activity).
//
// Set via env:
// - REPORTING_FILL_EMPTY_DAYS=true
func FillEmptyCalendarDays() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("REPORTING_FILL_EMPTY_DAYS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// InboxDirectProcessing controls the background inbox processor that applies
// events recorded by the Pub/Sub push endpoint.
//
// Set via env:
// - INBOX_DIRECT_PROCESSING=false to disable (default: enabled as a safety net).
func InboxDirectProcessing() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("INBOX_DIRECT_PROCESSING")))
	if v == "false" || v == "0" || v == "no" || v == "n" {
		return false
	}
	return true
}
