package domain

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 7, hour, min, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{
			name:     "identical intervals",
			a:        Interval{Start: at(14, 0), End: at(15, 30)},
			b:        Interval{Start: at(14, 0), End: at(15, 30)},
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        Interval{Start: at(14, 0), End: at(15, 30)},
			b:        Interval{Start: at(15, 0), End: at(16, 30)},
			expected: true,
		},
		{
			name:     "contained",
			a:        Interval{Start: at(14, 0), End: at(17, 0)},
			b:        Interval{Start: at(15, 0), End: at(16, 0)},
			expected: true,
		},
		{
			name:     "back to back does not overlap",
			a:        Interval{Start: at(14, 0), End: at(15, 30)},
			b:        Interval{Start: at(15, 30), End: at(17, 0)},
			expected: false,
		},
		{
			name:     "disjoint",
			a:        Interval{Start: at(12, 0), End: at(13, 0)},
			b:        Interval{Start: at(18, 0), End: at(19, 30)},
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Fatalf("a.Overlaps(b) = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Fatalf("overlap must be symmetric: b.Overlaps(a) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	i := Interval{Start: at(14, 0), End: at(15, 30)}
	if !i.Contains(at(14, 0)) {
		t.Fatal("start instant belongs to the interval")
	}
	if i.Contains(at(15, 30)) {
		t.Fatal("end instant is excluded from the interval")
	}
	if !i.Contains(at(15, 0)) {
		t.Fatal("interior instant belongs to the interval")
	}
}
