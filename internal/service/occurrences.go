package service

import (
	"time"

	"github.com/tumentor/tumentor-api/internal/models"
)

// startOfDayUTC truncates an instant to its UTC calendar day.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDayUTC returns the last nanosecond of the instant's UTC calendar day.
func endOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

// CountOccurrences counts the calendar days in [start, end] (inclusive)
// on which at least one slot of the weekly schedule falls. A day with
// several slots still counts once: for billing it represents a single
// class day. Iteration uses calendar-date arithmetic, not 24h steps,
// so the count stays correct across DST transitions.
func CountOccurrences(start, end time.Time, schedule models.ClassSchedule) int {
	if len(schedule) == 0 {
		return 0
	}

	days := schedule.Weekdays()
	if len(days) == 0 {
		return 0
	}

	cursor := startOfDayUTC(start)
	last := startOfDayUTC(end)
	if cursor.After(last) {
		return 0
	}

	count := 0
	for !cursor.After(last) {
		if days[int(cursor.Weekday())] {
			count++
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return count
}
