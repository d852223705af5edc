// Package calendar provides the business-day arithmetic underneath all
// timeline scheduling. A business day is Monday through Friday; there
// is no holiday table.
package calendar

import "time"

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays advances date one calendar day at a time, counting a
// day only when it lands on a weekday, until n business days have been
// counted. n = 0 returns date unchanged, even on a weekend; there is no
// skip-forward-to-next-business-day behavior. Negative n walks backward
// symmetrically.
func AddBusinessDays(date time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	d := date
	for n > 0 {
		d = d.AddDate(0, 0, step)
		if IsBusinessDay(d) {
			n--
		}
	}
	return d
}

// CountBusinessDays counts weekdays in the half-open range [start, end).
// Returns 0 when end is not after start.
func CountBusinessDays(start, end time.Time) int {
	count := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// DiffCalendarDays returns the plain calendar-day difference b - a.
// The time axis of the chart is linear in calendar days, so this is
// what pixel-to-date conversion uses, not business days.
func DiffCalendarDays(a, b time.Time) int {
	const day = 24 * time.Hour
	return int(b.Truncate(day).Sub(a.Truncate(day)) / day)
}

// ISOWeekNumber returns the ISO-8601 week number of date. Display only.
func ISOWeekNumber(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}
