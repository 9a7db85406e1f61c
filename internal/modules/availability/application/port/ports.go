package port

import (
	"context"

	resdomain "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
)

// TableSource lists the floor inventory the engine filters.
type TableSource interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]tablesdomain.Table, error)
}

// ReservationSource surfaces the bookings that block tables.
type ReservationSource interface {
	ListForRestaurantOverlapping(ctx context.Context, restaurantID string, iv resdomain.Interval) ([]resdomain.Reservation, error)
}

// RestaurantSource resolves the restaurant and its opening hours.
type RestaurantSource interface {
	GetByID(ctx context.Context, id string) (*restaurants.Restaurant, error)
}
