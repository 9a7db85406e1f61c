package domain

import (
	"errors"
	"time"

	clients "mesaYaCore/internal/modules/clients/domain"
)

// DefaultDuration is the canonical reservation length unless explicitly overridden.
const DefaultDuration = 90 * time.Minute

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRestaurantClosed    = errors.New("restaurant is closed at the requested time")
	ErrInvalidGuestCount   = errors.New("guest count must be positive")
	ErrInvalidInterval     = errors.New("reservation end time must be after start time")
)

// Reservation is a booked interval of restaurant time for a party size,
// optionally bound to a table.
type Reservation struct {
	ID           string            `json:"id"`
	RestaurantID string            `json:"restaurantId"`
	Client       clients.ClientRef `json:"client"`
	Guests       int               `json:"guests"`
	Status       ReservationStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      time.Time         `json:"endTime"`
	// TableID is empty until the assignment coordinator binds a table.
	TableID     string `json:"tableId,omitempty"`
	TableNumber int    `json:"tableNumber,omitempty"`
}

// Interval returns the [start, end) span the reservation claims.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}

// Assigned reports whether a table has been bound to the reservation.
func (r *Reservation) Assigned() bool {
	return r.TableID != ""
}
