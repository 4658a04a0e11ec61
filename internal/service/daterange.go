package service

import "time"

// Date range resolution for list queries. All ranges are inclusive
// [start, end] instants: end carries the maximum nanosecond of its day so
// a schedule ending at 23:59:59.999 still falls inside.

// dayStart returns d at 00:00:00.000.
func dayStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// dayEnd returns d at 23:59:59.999999999.
func dayEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), d.Location())
}

// dayRange covers the entire calendar day of d.
func dayRange(d time.Time) (time.Time, time.Time) {
	return dayStart(d), dayEnd(d)
}

// weekRange covers the Sunday-to-Saturday week containing d. Weeks start
// on Sunday, not the ISO Monday.
func weekRange(d time.Time) (time.Time, time.Time) {
	sunday := d.AddDate(0, 0, -int(d.Weekday()))
	saturday := sunday.AddDate(0, 0, 6)
	return dayStart(sunday), dayEnd(saturday)
}

// monthRange covers the first through last day of d's month, using the
// month's actual length.
func monthRange(d time.Time) (time.Time, time.Time) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	last := first.AddDate(0, 1, -1)
	return first, dayEnd(last)
}
