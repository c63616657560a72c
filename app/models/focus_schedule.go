package models

import (
	"strconv"
	"strings"
)

// FocusSchedule is declarative policy: it carries no runtime state.
// Whether a schedule is "active" is derived from the current day and
// wall-clock time.
type FocusSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Comma-separated ISO day numbers, 1=Monday..7=Sunday.
	DaysOfWeek string `gorm:"size:32;not null" json:"days_of_week"`
	// 24-hour "HH:MM".
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	// Budget in seconds for sessions this schedule starts.
	DistractionBudget int  `gorm:"not null" json:"distraction_budget"`
	Enabled           bool `gorm:"default:true" json:"enabled"`
}

func (s *FocusSchedule) AppliesToDay(day int) bool {
	for _, d := range s.Days() {
		if d == day {
			return true
		}
	}
	return false
}

// TimeInRange reports whether the "HH:MM" time falls in the half-open
// window [StartTime, EndTime). Zero-padded 24-hour strings compare
// correctly as plain strings.
func (s *FocusSchedule) TimeInRange(hhmm string) bool {
	return hhmm >= s.StartTime && hhmm < s.EndTime
}

func (s *FocusSchedule) ActiveAt(day int, hhmm string) bool {
	return s.Enabled && s.AppliesToDay(day) && s.TimeInRange(hhmm)
}

func (s *FocusSchedule) Days() []int {
	parts := strings.Split(s.DaysOfWeek, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		if d, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			days = append(days, d)
		}
	}
	return days
}
