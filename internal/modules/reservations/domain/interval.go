package domain

import "time"

// Interval is a half-open [Start, End) span of restaurant time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps implements the half-open interval test: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1. Back-to-back bookings sharing a boundary
// instant do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether the instant falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}
