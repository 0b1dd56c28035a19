package billing

import "time"

// dueDateOffsetDays is added after one month to compute a bill's due date,
// landing on the 15th of the month following the billed one.
const dueDateOffsetDays = 14

// MonthStart truncates a date to the first day of its month (UTC midnight)
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month following t's month
func NextMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// PreviousMonth returns the first day of the month preceding t's month
func PreviousMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, -1, 0)
}

// DueDate computes a bill's payment deadline: one month plus fourteen days
// after the billing month start.
func DueDate(month time.Time) time.Time {
	return MonthStart(month).AddDate(0, 1, dueDateOffsetDays)
}

// ParseMonth parses a YYYY-MM or YYYY-MM-DD string to a month start
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return MonthStart(t), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return MonthStart(t), nil
}
