package sqlite

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return t, nil
}

// formatDay truncates to the calendar day; usage records carry no time
// component.
func formatDay(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

func parseDay(value string) (time.Time, error) {
	t, err := time.Parse(dayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse day %q: %w", value, err)
	}
	return t, nil
}
