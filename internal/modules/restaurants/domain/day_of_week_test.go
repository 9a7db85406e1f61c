package domain

import (
	"testing"
	"time"
)

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DayOfWeek
	}{
		{name: "lowercase", input: "monday", expected: Monday},
		{name: "mixed casing and spacing", input: "  Tuesday ", expected: Tuesday},
		{name: "already canonical", input: "SATURDAY", expected: Saturday},
		{name: "invalid entry", input: "holiday", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := NormalizeDay(test.input); result != test.expected {
				t.Fatalf("expected %v, got %v", test.expected, result)
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	// 2026-09-07 is a Monday.
	monday := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	if got := DayOf(monday); got != Monday {
		t.Fatalf("expected MONDAY, got %v", got)
	}
	if got := DayOf(monday.AddDate(0, 0, 6)); got != Sunday {
		t.Fatalf("expected SUNDAY, got %v", got)
	}
}
