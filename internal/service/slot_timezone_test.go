package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumentor/tumentor-api/internal/models"
)

func TestSlotToUTCLateEveningRollsForward(t *testing.T) {
	// America/Lima is UTC-5 with no DST: Tuesday 23:30 local is
	// Wednesday 04:30 UTC.
	day, start, end, err := SlotToUTC(models.Tuesday, "23:30", "23:59", "America/Lima")
	require.NoError(t, err)
	assert.Equal(t, models.Wednesday, day)
	assert.Equal(t, "04:30", start)
	assert.Equal(t, "04:59", end)
}

func TestSlotToUTCSaturdayWrapsToSunday(t *testing.T) {
	day, start, _, err := SlotToUTC(models.Saturday, "23:30", "23:45", "America/Lima")
	require.NoError(t, err)
	assert.Equal(t, models.Sunday, day)
	assert.Equal(t, "04:30", start)
}

func TestSlotToUTCEasternZoneRollsBackward(t *testing.T) {
	// Asia/Tokyo is UTC+9: Sunday 02:00 local is Saturday 17:00 UTC.
	day, start, _, err := SlotToUTC(models.Sunday, "02:00", "03:00", "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, models.Saturday, day)
	assert.Equal(t, "17:00", start)
}

func TestSlotToUTCNoShiftForUTC(t *testing.T) {
	day, start, end, err := SlotToUTC(models.Friday, "09:15", "10:45", "UTC")
	require.NoError(t, err)
	assert.Equal(t, models.Friday, day)
	assert.Equal(t, "09:15", start)
	assert.Equal(t, "10:45", end)
}

func TestSlotFromUTCInverse(t *testing.T) {
	day, start, end, err := SlotFromUTC(models.Wednesday, "04:30", "04:59", "America/Lima")
	require.NoError(t, err)
	assert.Equal(t, models.Tuesday, day)
	assert.Equal(t, "23:30", start)
	assert.Equal(t, "23:59", end)
}

func TestSlotConversionRoundTrip(t *testing.T) {
	zones := []string{"America/Lima", "America/Mexico_City", "Europe/Madrid", "Asia/Tokyo", "UTC"}
	times := []struct{ start, end string }{
		{"00:15", "01:15"},
		{"08:00", "09:30"},
		{"12:00", "13:00"},
		{"23:30", "23:59"},
	}

	for _, zone := range zones {
		for dow := models.Sunday; dow <= models.Saturday; dow++ {
			for _, tt := range times {
				name := fmt.Sprintf("%s/%d/%s", zone, dow, tt.start)
				t.Run(name, func(t *testing.T) {
					utcDay, utcStart, utcEnd, err := SlotToUTC(dow, tt.start, tt.end, zone)
					require.NoError(t, err)

					backDay, backStart, backEnd, err := SlotFromUTC(utcDay, utcStart, utcEnd, zone)
					require.NoError(t, err)

					assert.Equal(t, dow, backDay)
					assert.Equal(t, tt.start, backStart)
					assert.Equal(t, tt.end, backEnd)
				})
			}
		}
	}
}

func TestSlotToUTCRejectsBadInput(t *testing.T) {
	_, _, _, err := SlotToUTC(models.Monday, "10:00", "11:00", "Mars/Olympus")
	assert.Error(t, err)

	_, _, _, err = SlotToUTC(7, "10:00", "11:00", "America/Lima")
	assert.Error(t, err)

	_, _, _, err = SlotToUTC(models.Monday, "25:00", "11:00", "America/Lima")
	assert.Error(t, err)
}

func TestScheduleToUTCConvertsEverySlot(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: models.Tuesday, StartTime: "23:30", EndTime: "23:59"},
	}

	converted, err := ScheduleToUTC(schedule, "America/Lima")
	require.NoError(t, err)
	require.Len(t, converted, 2)
	assert.Equal(t, models.Monday, converted[0].DayOfWeek)
	assert.Equal(t, "15:00", converted[0].StartTime)
	assert.Equal(t, models.Wednesday, converted[1].DayOfWeek)
	assert.Equal(t, "04:30", converted[1].StartTime)
}

func TestScheduleFromUTCRoundTrip(t *testing.T) {
	schedule := models.ClassSchedule{
		{DayOfWeek: models.Sunday, StartTime: "00:05", EndTime: "01:00"},
		{DayOfWeek: models.Thursday, StartTime: "19:00", EndTime: "20:30"},
	}

	stored, err := ScheduleToUTC(schedule, "America/Lima")
	require.NoError(t, err)

	back, err := ScheduleFromUTC(stored, "America/Lima")
	require.NoError(t, err)
	assert.Equal(t, schedule, back)
}
