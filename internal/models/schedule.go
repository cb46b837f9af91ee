package models

// Day-of-week convention used across wire and storage: 0=Sunday .. 6=Saturday.
const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// DayName returns the Spanish name for a 0=Sunday..6=Saturday day index.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// ScheduleSlot is one weekly recurring commitment. Times are "HH:MM"
// strings; whether they are local or UTC depends on where the slot
// lives (requests carry teacher-local times, storage is canonical UTC).
type ScheduleSlot struct {
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// ClassSchedule is the full weekly schedule of an enrollment.
type ClassSchedule []ScheduleSlot

// Weekdays returns the distinct day-of-week set covered by the schedule.
func (s ClassSchedule) Weekdays() map[int]bool {
	days := make(map[int]bool, len(s))
	for _, slot := range s {
		if slot.DayOfWeek >= 0 && slot.DayOfWeek <= 6 {
			days[slot.DayOfWeek] = true
		}
	}
	return days
}
