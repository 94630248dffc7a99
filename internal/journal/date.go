package journal

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for entry identity and filenames.
const DateLayout = "2006-01-02"

// ParseDate parses a caller-supplied YYYY-MM-DD string. Unparsable input is
// rejected; it is never silently defaulted.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

// FormatDate renders a time as the entry identity key.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
