package stats

import "time"

// DateLayout is the calendar-day key format used throughout storage and the API.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// AddDays moves a calendar day forward or back, ignoring DST since days are UTC.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// WeekStart returns the Monday of the week containing t. Sunday belongs to the
// week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDates lists the seven YYYY-MM-DD dates of the Monday-start week containing anchor.
func WeekDates(anchor time.Time) []string {
	start := WeekStart(anchor)
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

// IsConsecutive reports whether later is exactly one calendar day after earlier.
func IsConsecutive(later, earlier string) bool {
	l, err := ParseDate(later)
	if err != nil {
		return false
	}
	e, err := ParseDate(earlier)
	if err != nil {
		return false
	}
	return l.Sub(e) == 24*time.Hour
}
