package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ReservationStatus represents the reservation lifecycle.
type ReservationStatus string

const (
	StatusPlanning  ReservationStatus = "PLANNING"
	StatusSeated    ReservationStatus = "SEATED"
	StatusDone      ReservationStatus = "DONE"
	StatusCancelled ReservationStatus = "CANCELLED"
)

var (
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

var allowedStatuses = map[string]ReservationStatus{
	string(StatusPlanning):  StatusPlanning,
	string(StatusSeated):    StatusSeated,
	string(StatusDone):      StatusDone,
	string(StatusCancelled): StatusCancelled,
}

// Only these transitions are legal; DONE and CANCELLED are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPlanning: {StatusSeated, StatusCancelled},
	StatusSeated:   {StatusDone, StatusCancelled},
}

// ParseStatus returns the canonical status for the given input.
// Unlike upstream payload normalization, unknown values are rejected.
func ParseStatus(value string) (ReservationStatus, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if status, ok := allowedStatuses[trimmed]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// CanTransition reports whether moving from -> to is allowed.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// Active reports whether the reservation still claims restaurant time.
func (s ReservationStatus) Active() bool {
	return s == StatusPlanning || s == StatusSeated
}
