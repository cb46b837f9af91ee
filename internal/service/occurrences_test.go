package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tumentor/tumentor-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountOccurrencesSingleWeekday(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	// Jan 6 2025 is a Monday; a 28-day period holds exactly 4 of each weekday.
	count := CountOccurrences(day(2025, time.January, 6), day(2025, time.February, 2), schedule)
	assert.Equal(t, 4, count)
}

func TestCountOccurrencesTwoWeekdays(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: models.Wednesday, StartTime: "18:00", EndTime: "19:00"},
	}

	count := CountOccurrences(day(2025, time.January, 6), day(2025, time.February, 2), schedule)
	assert.Equal(t, 8, count)
}

func TestCountOccurrencesSameDayCountsOnce(t *testing.T) {
	// Two slots on the same weekday are still a single class day.
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "19:00"},
	}

	count := CountOccurrences(day(2025, time.January, 6), day(2025, time.February, 2), schedule)
	assert.Equal(t, 4, count)
}

func TestCountOccurrencesBoundsInclusive(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	// Both endpoints are Mondays and both count.
	count := CountOccurrences(day(2025, time.January, 6), day(2025, time.January, 13), schedule)
	assert.Equal(t, 2, count)
}

func TestCountOccurrencesMidPeriodStart(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: models.Wednesday, StartTime: "18:00", EndTime: "19:00"},
	}

	// From Wednesday Jan 15: Wed 15, Mon 20, Wed 22, Mon 27, Wed 29.
	count := CountOccurrences(day(2025, time.January, 15), day(2025, time.February, 2), schedule)
	assert.Equal(t, 5, count)
}

func TestCountOccurrencesIgnoresTimeOfDay(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	start := time.Date(2025, time.January, 6, 23, 50, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 13, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 2, CountOccurrences(start, end, schedule))
}

func TestCountOccurrencesEmptySchedule(t *testing.T) {
	assert.Equal(t, 0, CountOccurrences(day(2025, time.January, 6), day(2025, time.February, 2), nil))
	assert.Equal(t, 0, CountOccurrences(day(2025, time.January, 6), day(2025, time.February, 2), models.ClassSchedule{}))
}

func TestCountOccurrencesInvertedRange(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
	}

	assert.Equal(t, 0, CountOccurrences(day(2025, time.February, 2), day(2025, time.January, 6), schedule))
}
