package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Shape is the geometric footprint drawn on the floor plan.
type Shape string

const (
	ShapeRound     Shape = "ROUND"
	ShapeRectangle Shape = "RECTANGLE"
	ShapeSquare    Shape = "SQUARE"
)

var (
	ErrTableNotFound          = errors.New("table not found")
	ErrDuplicateTable         = errors.New("table number already exists for this restaurant")
	ErrInvalidShape           = errors.New("invalid table shape")
	ErrInvalidShapeDimensions = errors.New("invalid dimensions for table shape")
	ErrInvalidSeatCount       = errors.New("seat count must be positive")
	ErrHasCurrentReservation  = errors.New("table has an active reservation")
	ErrHasFutureReservations  = errors.New("table has future reservations")
	ErrVersionConflict        = errors.New("table was modified concurrently")
)

// Dimensions carries shape-specific measurements; only the fields required by
// the shape are meaningful.
type Dimensions struct {
	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Table represents a seating resource within a restaurant floor plan.
type Table struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurantId"`
	Number       int         `json:"number"`
	Seats        int         `json:"seats"`
	Shape        Shape       `json:"shape"`
	Dims         Dimensions  `json:"dimensions"`
	PosX         float64     `json:"posX"`
	PosY         float64     `json:"posY"`
	Section      string      `json:"section,omitempty"`
	Status       TableStatus `json:"status"`
	// CurrentReservationID references the booking occupying the table right now.
	CurrentReservationID string `json:"currentReservationId,omitempty"`
	// Version guards compare-and-swap updates against concurrent assignment.
	Version int64 `json:"-"`
}

// ParseShape coerces input into a canonical shape.
func ParseShape(value string) (Shape, error) {
	switch Shape(strings.ToUpper(strings.TrimSpace(value))) {
	case ShapeRound:
		return ShapeRound, nil
	case ShapeRectangle:
		return ShapeRectangle, nil
	case ShapeSquare:
		return ShapeSquare, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShape, value)
	}
}

// ValidateDimensions checks the shape-specific requirements: round tables need
// a radius, rectangle and square tables need width and height.
func ValidateDimensions(shape Shape, dims Dimensions) error {
	switch shape {
	case ShapeRound:
		if dims.Radius <= 0 {
			return fmt.Errorf("%w: round table requires a radius", ErrInvalidShapeDimensions)
		}
	case ShapeRectangle, ShapeSquare:
		if dims.Width <= 0 || dims.Height <= 0 {
			return fmt.Errorf("%w: %s table requires width and height", ErrInvalidShapeDimensions, strings.ToLower(string(shape)))
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
	return nil
}

// ClearedFor zeroes the dimension fields the new shape does not use. Applied
// when a details update switches shape, so stale measurements never survive.
func (d Dimensions) ClearedFor(shape Shape) Dimensions {
	switch shape {
	case ShapeRound:
		return Dimensions{Radius: d.Radius}
	default:
		return Dimensions{Width: d.Width, Height: d.Height}
	}
}
