package domain

import (
	"errors"
	"fmt"
	"time"

	"mesaYaCore/internal/shared/clock"
)

// ErrRestaurantNotFound is returned when a restaurant lookup yields no rows.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// DaySchedule holds the operating window for one weekday as minute-of-day
// values, normalized once at load time instead of re-parsing strings per request.
type DaySchedule struct {
	Open  int
	Close int
}

// Contains reports whether the interval [startMin, endMin) fits fully inside
// the operating window.
func (s DaySchedule) Contains(startMin, endMin int) bool {
	return startMin >= s.Open && endMin <= s.Close
}

// OpeningHours maps each weekday to its schedule. Days without an entry are closed.
type OpeningHours map[DayOfWeek]DaySchedule

// Restaurant carries the subset of restaurant state the reservation core needs.
type Restaurant struct {
	ID    string
	Name  string
	Hours OpeningHours
}

// ScheduleFor returns the operating window for the given date.
// The second value is false when the restaurant is closed that day.
func (r *Restaurant) ScheduleFor(date time.Time) (DaySchedule, bool) {
	sched, ok := r.Hours[DayOf(date)]
	return sched, ok
}

// BuildDaySchedule normalizes raw open/close strings (12-hour or 24-hour clock)
// into a DaySchedule. The close time must fall strictly after the open time.
func BuildDaySchedule(openRaw, closeRaw string) (DaySchedule, error) {
	open, err := clock.ParseTimeOfDay(openRaw)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("open time: %w", err)
	}
	close, err := clock.ParseTimeOfDay(closeRaw)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("close time: %w", err)
	}
	if close <= open {
		return DaySchedule{}, fmt.Errorf("%w: close %q not after open %q", clock.ErrInvalidTimeOfDay, closeRaw, openRaw)
	}
	return DaySchedule{Open: open, Close: close}, nil
}
