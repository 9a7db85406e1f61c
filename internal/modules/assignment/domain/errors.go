package domain

import "errors"

var (
	ErrTableNotAvailable    = errors.New("table is not available")
	ErrInsufficientCapacity = errors.New("table does not seat the requested party")
	ErrTimeConflict         = errors.New("table already has a reservation during the requested time slot")
)
