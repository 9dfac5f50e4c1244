package models

import (
	"fmt"
	"time"
)

// monthsApart counts whole calendar months from start to end. Adding months to start clamps the
// day to the end of the target month, so Jan 31 to Feb 28 is one month.
func monthsApart(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	for months > 0 && end.Before(addMonthsClamped(start, months)) {
		months--
	}
	return months
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	d := t.Day()
	if d > lastDay {
		d = lastDay
	}
	return first.AddDate(0, 0, d-1)
}

// HumanDuration renders the span between start and end as "X yr Y mo", "X yr", "Y mo"
// or "Less than a month".
func HumanDuration(start, end time.Time) string {
	total := monthsApart(start, end)
	years, months := total/12, total%12

	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%d yr %d mo", years, months)
	case years > 0:
		return fmt.Sprintf("%d yr", years)
	case months > 0:
		return fmt.Sprintf("%d mo", months)
	default:
		return "Less than a month"
	}
}

// MonthsBetween ignores the day of month and never goes negative.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// YearsBetween counts completed years from start to end.
func YearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}

// HumanFileSize formats a byte count the way the resume pages show it.
func HumanFileSize(size int64) string {
	if size <= 0 {
		return "Unknown"
	}
	value := float64(size)
	for _, unit := range []string{"bytes", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}
