package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected TableStatus
		wantErr  bool
	}{
		{name: "available", input: "available", expected: StatusAvailable},
		{name: "maintenance with spacing", input: " MAINTENANCE ", expected: StatusMaintenance},
		{name: "occupied", input: "Occupied", expected: StatusOccupied},
		{name: "unknown rejected", input: "cleaning", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseStatus(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("expected ErrInvalidStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestSeatable(t *testing.T) {
	seatable := []TableStatus{StatusAvailable, StatusReserved, StatusOccupied}
	for _, s := range seatable {
		if !s.Seatable() {
			t.Fatalf("expected %s to be seatable", s)
		}
	}
	for _, s := range []TableStatus{StatusMaintenance, StatusInactive} {
		if s.Seatable() {
			t.Fatalf("expected %s to be excluded from seating", s)
		}
	}
}
