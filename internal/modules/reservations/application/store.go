package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	clients "mesaYaCore/internal/modules/clients/domain"
	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/reservations/application/port"
	"mesaYaCore/internal/modules/reservations/domain"
)

// Store owns reservation records: creation against opening hours, the status
// state machine and the table side effects of lifecycle changes.
type Store struct {
	reservations port.ReservationRepository
	restaurants  port.RestaurantReader
	directory    port.ClientDirectory
	tables       port.TableBinder
	events       port.EventPublisher
	now          func() time.Time
}

func NewStore(
	reservations port.ReservationRepository,
	restaurants port.RestaurantReader,
	directory port.ClientDirectory,
	tables port.TableBinder,
	events port.EventPublisher,
) *Store {
	return &Store{
		reservations: reservations,
		restaurants:  restaurants,
		directory:    directory,
		tables:       tables,
		events:       events,
		now:          time.Now,
	}
}

// CreateInput carries a booking request. Exactly one of Client or the guest
// contact fields is used: when Client is zero, the email is resolved against
// registered clients first and a guest client is created as a fallback.
type CreateInput struct {
	RestaurantID    string
	Client          clients.ClientRef
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	Guests          int
	StartTime       time.Time
	DurationMinutes int
}

// Create validates the request against the restaurant's opening hours and
// persists a PLANNING reservation. The table is bound later by the assignment
// coordinator, not at creation time.
func (s *Store) Create(ctx context.Context, in CreateInput) (*domain.Reservation, error) {
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if in.Guests <= 0 {
		return nil, domain.ErrInvalidGuestCount
	}

	duration := domain.DefaultDuration
	if in.DurationMinutes > 0 {
		duration = time.Duration(in.DurationMinutes) * time.Minute
	}
	start := in.StartTime.UTC()
	end := start.Add(duration)

	sched, open := restaurant.ScheduleFor(start)
	if !open {
		return nil, fmt.Errorf("%w: %s is closed on %s", domain.ErrRestaurantClosed, restaurant.Name, restdayOf(start))
	}
	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + int(duration.Minutes())
	if !sched.Contains(startMin, endMin) {
		return nil, fmt.Errorf("%w: requested %s falls outside opening hours", domain.ErrRestaurantClosed, start.Format("15:04"))
	}

	clientRef := in.Client
	if !clientRef.Valid() {
		clientRef, err = s.resolveBookingClient(ctx, in)
		if err != nil {
			return nil, err
		}
	}

	res := &domain.Reservation{
		ID:           uuid.NewString(),
		RestaurantID: in.RestaurantID,
		Client:       clientRef,
		Guests:       in.Guests,
		Status:       domain.StatusPlanning,
		CreatedAt:    s.now().UTC(),
		StartTime:    start,
		EndTime:      end,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveBookingClient prefers a registered client with the booking email and
// falls back to creating a guest client.
func (s *Store) resolveBookingClient(ctx context.Context, in CreateInput) (clients.ClientRef, error) {
	if in.GuestEmail == "" {
		return clients.ClientRef{}, fmt.Errorf("%w: booking requires a client reference or an email", clients.ErrClientNotFound)
	}
	if ref, err := s.directory.FindRegisteredByEmail(ctx, in.GuestEmail); err == nil {
		return ref, nil
	}
	return s.directory.EnsureGuest(ctx, in.GuestName, in.GuestEmail, in.GuestPhone)
}

// UpdateStatus enforces the reservation state machine and drives the table
// transitions that follow from it: SEATED occupies a bound table, the terminal
// statuses release it.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*domain.Reservation, error) {
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(res.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, res.Status, target)
	}

	if err := s.reservations.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	res.Status = target

	s.applyTableSideEffects(ctx, res)

	if target == domain.StatusCancelled {
		s.publishCancellation(ctx, res)
	}
	return res, nil
}

// Cancel is the dedicated cancellation path; equivalent to a CANCELLED
// transition and always notifies the restaurant.
func (s *Store) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.UpdateStatus(ctx, id, string(domain.StatusCancelled))
}

func (s *Store) applyTableSideEffects(ctx context.Context, res *domain.Reservation) {
	if s.tables == nil || !res.Assigned() {
		return
	}
	switch res.Status {
	case domain.StatusSeated:
		if err := s.tables.Occupy(ctx, res.TableID, res.ID); err != nil {
			slog.Warn("table occupy failed", slog.String("tableId", res.TableID), slog.String("reservationId", res.ID), slog.Any("error", err))
			return
		}
		s.publishTableStatus(ctx, res, "OCCUPIED")
	case domain.StatusDone, domain.StatusCancelled:
		if err := s.tables.Release(ctx, res.TableID); err != nil {
			slog.Warn("table release failed", slog.String("tableId", res.TableID), slog.String("reservationId", res.ID), slog.Any("error", err))
			return
		}
		s.publishTableStatus(ctx, res, "AVAILABLE")
	}
}

func (s *Store) publishTableStatus(ctx context.Context, res *domain.Reservation, status string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, rtdomain.NewEvent(
		rtdomain.ActionTableStatusUpdated,
		rtdomain.RestaurantRoom(res.RestaurantID),
		res.TableID,
		map[string]any{"tableId": res.TableID, "status": status, "reservationId": res.ID},
	))
}

func (s *Store) publishCancellation(ctx context.Context, res *domain.Reservation) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, rtdomain.NewEvent(
		rtdomain.ActionOrderCancelled,
		rtdomain.RestaurantRoom(res.RestaurantID),
		res.ID,
		res,
	))
}

// GetByID exposes a reservation lookup for the HTTP layer.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func restdayOf(t time.Time) string {
	return t.Weekday().String()
}
