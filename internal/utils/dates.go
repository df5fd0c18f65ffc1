package utils

import "time"

// DateString formats a time as the "YYYY-MM-DD" key used for log queries.
// All date comparisons in the system are string comparisons on this format,
// so generation must be consistent at write and read time.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// LastNDates returns n date strings starting at "from" and walking
// backwards one calendar day at a time, most recent first.
func LastNDates(n int, from time.Time) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, DateString(from.AddDate(0, 0, -i)))
	}
	return dates
}

// ClockString formats a time as "HH:MM" for display next to log actions
func ClockString(t time.Time) string {
	return t.Format("15:04")
}
