package service

import (
	"fmt"
	"time"

	"github.com/tumentor/tumentor-api/internal/models"
	appErrors "github.com/tumentor/tumentor-api/pkg/errors"
)

// Recurring slots carry no date, so conversions anchor them to a fixed
// reference week (the week of Sunday 2025-01-05). Using one fixed week
// keeps the applied UTC offset deterministic for every caller; local
// times that are ambiguous or skipped around a DST transition resolve
// to whatever the tzdata-backed time.Date picks for that week.
var referenceSunday = time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

// SlotToUTC converts a weekly recurring slot expressed in a local IANA
// timezone into canonical UTC day-of-week and times. The day of week
// (0=Sunday..6=Saturday) is re-derived from the UTC instant of the
// start time, so a late-evening slot may land on the next UTC day.
func SlotToUTC(dayOfWeek int, startTime, endTime, timezone string) (int, string, string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("unknown timezone %q", timezone))
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return 0, "", "", appErrors.Clone(appErrors.ErrValidation, "day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}

	startH, startM, err := parseClock(startTime)
	if err != nil {
		return 0, "", "", err
	}
	endH, endM, err := parseClock(endTime)
	if err != nil {
		return 0, "", "", err
	}

	anchor := referenceSunday.AddDate(0, 0, dayOfWeek)
	localStart := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), startH, startM, 0, 0, loc)
	localEnd := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), endH, endM, 0, 0, loc)

	utcStart := localStart.UTC()
	utcEnd := localEnd.UTC()

	return int(utcStart.Weekday()), utcStart.Format("15:04"), utcEnd.Format("15:04"), nil
}

// SlotFromUTC is the inverse of SlotToUTC: it projects a canonical UTC
// slot into the given timezone for display.
func SlotFromUTC(dayOfWeek int, startTime, endTime, timezone string) (int, string, string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("unknown timezone %q", timezone))
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return 0, "", "", appErrors.Clone(appErrors.ErrValidation, "day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}

	startH, startM, err := parseClock(startTime)
	if err != nil {
		return 0, "", "", err
	}
	endH, endM, err := parseClock(endTime)
	if err != nil {
		return 0, "", "", err
	}

	anchor := referenceSunday.AddDate(0, 0, dayOfWeek)
	utcStart := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), startH, startM, 0, 0, time.UTC)
	utcEnd := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), endH, endM, 0, 0, time.UTC)

	localStart := utcStart.In(loc)
	localEnd := utcEnd.In(loc)

	return int(localStart.Weekday()), localStart.Format("15:04"), localEnd.Format("15:04"), nil
}

// ScheduleToUTC converts every slot of a local weekly schedule into
// canonical UTC storage form.
func ScheduleToUTC(schedule models.ClassSchedule, timezone string) (models.ClassSchedule, error) {
	converted := make(models.ClassSchedule, 0, len(schedule))
	for _, slot := range schedule {
		day, start, end, err := SlotToUTC(slot.DayOfWeek, slot.StartTime, slot.EndTime, timezone)
		if err != nil {
			return nil, err
		}
		converted = append(converted, models.ScheduleSlot{DayOfWeek: day, StartTime: start, EndTime: end})
	}
	return converted, nil
}

// ScheduleFromUTC projects a stored UTC weekly schedule into the given
// timezone for display.
func ScheduleFromUTC(schedule models.ClassSchedule, timezone string) (models.ClassSchedule, error) {
	converted := make(models.ClassSchedule, 0, len(schedule))
	for _, slot := range schedule {
		day, start, end, err := SlotFromUTC(slot.DayOfWeek, slot.StartTime, slot.EndTime, timezone)
		if err != nil {
			return nil, err
		}
		converted = append(converted, models.ScheduleSlot{DayOfWeek: day, StartTime: start, EndTime: end})
	}
	return converted, nil
}

func parseClock(value string) (int, int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid time %q, expected HH:MM", value))
	}
	return t.Hour(), t.Minute(), nil
}
