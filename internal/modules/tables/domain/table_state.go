package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TableStatus represents the floor-plan availability of a table.
type TableStatus string

const (
	StatusAvailable   TableStatus = "AVAILABLE"
	StatusReserved    TableStatus = "RESERVED"
	StatusOccupied    TableStatus = "OCCUPIED"
	StatusMaintenance TableStatus = "MAINTENANCE"
	StatusInactive    TableStatus = "INACTIVE"
)

// ErrInvalidStatus is returned for any value outside the five permitted statuses.
var ErrInvalidStatus = errors.New("invalid table status")

var allowedStatuses = map[string]TableStatus{
	string(StatusAvailable):   StatusAvailable,
	string(StatusReserved):    StatusReserved,
	string(StatusOccupied):    StatusOccupied,
	string(StatusMaintenance): StatusMaintenance,
	string(StatusInactive):    StatusInactive,
}

// ParseStatus coerces input into a canonical table status. No other values are
// permitted, so unknown strings are rejected rather than passed through.
func ParseStatus(value string) (TableStatus, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if status, ok := allowedStatuses[trimmed]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Seatable reports whether the table can take part in availability searches.
// MAINTENANCE and INACTIVE tables never become candidates.
func (s TableStatus) Seatable() bool {
	return s == StatusAvailable || s == StatusReserved || s == StatusOccupied
}
