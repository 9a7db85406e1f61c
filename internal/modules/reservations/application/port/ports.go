package port

import (
	"context"
	"time"

	clients "mesaYaCore/internal/modules/clients/domain"
	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
)

// ReservationRepository is the persistence contract for the reservation store.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	// AssignTable binds the table reference; the reservation keeps its interval.
	AssignTable(ctx context.Context, id, tableID string, tableNumber int) error
	ListForRestaurantOverlapping(ctx context.Context, restaurantID string, iv domain.Interval) ([]domain.Reservation, error)
	ListActiveForTable(ctx context.Context, tableID string, after time.Time) ([]domain.Reservation, error)
	ListForTableOverlapping(ctx context.Context, tableID string, iv domain.Interval) ([]domain.Reservation, error)
}

// RestaurantReader resolves restaurants and their opening hours.
type RestaurantReader interface {
	GetByID(ctx context.Context, id string) (*restaurants.Restaurant, error)
}

// ClientDirectory resolves tagged client references and creates guest clients
// for bookings whose email is not registered.
type ClientDirectory interface {
	Resolve(ctx context.Context, ref clients.ClientRef) (*clients.Identity, error)
	FindRegisteredByEmail(ctx context.Context, email string) (clients.ClientRef, error)
	EnsureGuest(ctx context.Context, name, email, phone string) (clients.ClientRef, error)
}

// TableBinder covers the table mutations driven by reservation lifecycle changes.
type TableBinder interface {
	GetByID(ctx context.Context, id string) (*tablesdomain.Table, error)
	// Occupy marks the table OCCUPIED with the reservation as current occupant.
	Occupy(ctx context.Context, tableID, reservationID string) error
	// Release returns the table to AVAILABLE and clears the current occupant.
	Release(ctx context.Context, tableID string) error
}

// EventPublisher emits state-change notifications; delivery is fire-and-forget.
type EventPublisher interface {
	Publish(ctx context.Context, evt *rtdomain.Event)
}
