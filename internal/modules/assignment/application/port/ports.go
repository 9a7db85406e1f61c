package port

import (
	"context"

	clients "mesaYaCore/internal/modules/clients/domain"
	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
)

// ReservationStore is the reservation side of an assignment.
type ReservationStore interface {
	GetByID(ctx context.Context, id string) (*resdomain.Reservation, error)
	AssignTable(ctx context.Context, id, tableID string, tableNumber int) error
	ListForTableOverlapping(ctx context.Context, tableID string, iv resdomain.Interval) ([]resdomain.Reservation, error)
}

// TableStore is the table side of an assignment. ClaimForAssignment is a
// compare-and-swap on the table version so that two concurrent assignments of
// the same table cannot both succeed.
type TableStore interface {
	GetByID(ctx context.Context, id string) (*tablesdomain.Table, error)
	ClaimForAssignment(ctx context.Context, id string, version int64, status tablesdomain.TableStatus, reservationID string) error
}

// ClientDirectory resolves the booking client for customer notifications.
type ClientDirectory interface {
	Resolve(ctx context.Context, ref clients.ClientRef) (*clients.Identity, error)
}

// EventPublisher emits assignment notifications; delivery is fire-and-forget.
type EventPublisher interface {
	Publish(ctx context.Context, evt *rtdomain.Event)
}
