package port

import (
	"context"
	"time"

	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	reservations "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/modules/tables/domain"
)

// TableRepository is the persistence contract for the table registry.
type TableRepository interface {
	// Create persists a new table; returns ErrDuplicateTable when the
	// (restaurant, number) compound key already exists.
	Create(ctx context.Context, t *domain.Table) error
	GetByID(ctx context.Context, id string) (*domain.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Table, error)
	// Update persists every mutable field, guarded by the version column.
	Update(ctx context.Context, t *domain.Table) error
	UpdatePosition(ctx context.Context, id string, x, y float64) error
	// SetStatus updates the status; clearReservation also nulls current_reservation.
	SetStatus(ctx context.Context, id string, status domain.TableStatus, clearReservation bool) error
	Delete(ctx context.Context, id string) error
}

// ReservationReader exposes the reservation lookups the registry needs for
// delete guards and layout enrichment.
type ReservationReader interface {
	// ListActiveForTable returns non-cancelled reservations on the table
	// that end after the given instant, including one already in progress.
	ListActiveForTable(ctx context.Context, tableID string, after time.Time) ([]reservations.Reservation, error)
	// ListForRestaurantOverlapping returns non-cancelled reservations for the
	// restaurant whose interval overlaps the given one.
	ListForRestaurantOverlapping(ctx context.Context, restaurantID string, iv reservations.Interval) ([]reservations.Reservation, error)
	// ListForTableOverlapping returns the non-cancelled reservations on the
	// table whose interval overlaps the given one.
	ListForTableOverlapping(ctx context.Context, tableID string, iv reservations.Interval) ([]reservations.Reservation, error)
}

// RestaurantReader resolves restaurants and their opening hours.
type RestaurantReader interface {
	GetByID(ctx context.Context, id string) (*restaurants.Restaurant, error)
}

// LayoutCache is a best-effort read cache for floor layouts. Implementations
// must degrade to misses on transport failure.
type LayoutCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	InvalidateRestaurant(ctx context.Context, restaurantID string)
}

// EventPublisher emits state-change notifications; delivery is fire-and-forget.
type EventPublisher interface {
	Publish(ctx context.Context, evt *rtdomain.Event)
}
