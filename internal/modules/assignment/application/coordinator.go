package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mesaYaCore/internal/modules/assignment/application/port"
	"mesaYaCore/internal/modules/assignment/domain"
	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
)

// Coordinator binds reservations to tables. The conflict checks run first, and
// the table claim itself is a compare-and-swap on the version the checks saw,
// so a concurrent assignment of the same table loses cleanly instead of
// double-booking.
type Coordinator struct {
	reservations port.ReservationStore
	tables       port.TableStore
	directory    port.ClientDirectory
	events       port.EventPublisher
	now          func() time.Time
}

func NewCoordinator(
	reservations port.ReservationStore,
	tables port.TableStore,
	directory port.ClientDirectory,
	events port.EventPublisher,
) *Coordinator {
	return &Coordinator{
		reservations: reservations,
		tables:       tables,
		directory:    directory,
		events:       events,
		now:          time.Now,
	}
}

// AssignTable validates the pairing and persists the binding. A SEATED
// reservation whose interval contains now takes the table straight to
// OCCUPIED; every other assignment parks it at RESERVED.
func (c *Coordinator) AssignTable(ctx context.Context, tableID, reservationID string) (*resdomain.Reservation, error) {
	res, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	table, err := c.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.Status != tablesdomain.StatusAvailable {
		return nil, fmt.Errorf("%w: table %d is %s", domain.ErrTableNotAvailable, table.Number, table.Status)
	}
	if table.Seats < res.Guests {
		return nil, fmt.Errorf("%w: table %d seats %d, party of %d", domain.ErrInsufficientCapacity, table.Number, table.Seats, res.Guests)
	}
	if err := c.checkTimeConflict(ctx, table, res); err != nil {
		return nil, err
	}

	status := tablesdomain.StatusReserved
	if res.Status == resdomain.StatusSeated && res.Interval().Contains(c.now()) {
		status = tablesdomain.StatusOccupied
	}
	if err := c.tables.ClaimForAssignment(ctx, table.ID, table.Version, status, res.ID); err != nil {
		if errors.Is(err, tablesdomain.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: table %d was claimed concurrently", domain.ErrTableNotAvailable, table.Number)
		}
		return nil, err
	}
	if err := c.reservations.AssignTable(ctx, res.ID, table.ID, table.Number); err != nil {
		return nil, err
	}
	res.TableID = table.ID
	res.TableNumber = table.Number

	c.notify(ctx, res, table)
	return res, nil
}

// checkTimeConflict rejects the assignment when another live reservation on
// the table overlaps this one. DONE bookings no longer claim the slot and the
// reservation being assigned never conflicts with itself.
func (c *Coordinator) checkTimeConflict(ctx context.Context, table *tablesdomain.Table, res *resdomain.Reservation) error {
	overlapping, err := c.reservations.ListForTableOverlapping(ctx, table.ID, res.Interval())
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.ID == res.ID || other.Status == resdomain.StatusDone {
			continue
		}
		return fmt.Errorf("%w: table %d is not available during the requested time slot", domain.ErrTimeConflict, table.Number)
	}
	return nil
}

func (c *Coordinator) notify(ctx context.Context, res *resdomain.Reservation, table *tablesdomain.Table) {
	if c.events == nil {
		return
	}
	c.events.Publish(ctx, rtdomain.NewEvent(
		rtdomain.ActionReservationAssigned,
		rtdomain.RestaurantRoom(res.RestaurantID),
		res.ID,
		res,
	))

	identity, err := c.directory.Resolve(ctx, res.Client)
	if err != nil || identity.Email == "" {
		if err != nil {
			slog.Warn("client lookup for assignment notification failed", slog.String("reservationId", res.ID), slog.Any("error", err))
		}
		return
	}
	c.events.Publish(ctx, rtdomain.NewEvent(
		rtdomain.ActionTableAssigned,
		rtdomain.CustomerRoom(identity.Email),
		res.ID,
		map[string]any{
			"reservationId": res.ID,
			"tableNumber":   table.Number,
			"startTime":     res.StartTime,
			"endTime":       res.EndTime,
		},
	))
}
