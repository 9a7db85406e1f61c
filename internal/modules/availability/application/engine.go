package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mesaYaCore/internal/modules/availability/application/port"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/shared/clock"
)

const (
	// slotMinutes is the length of the window every check evaluates.
	slotMinutes = 90
	// closeBufferMinutes keeps alternative slots from starting too close to
	// closing time, even when the slot itself would technically fit.
	closeBufferMinutes = 120
	// maxAlternatives caps the alternative-slot search.
	maxAlternatives = 3
)

// alternativeOffsets is the search order around the requested time: nearest
// first, and at equal distance the earlier slot before the later one.
var alternativeOffsets = []int{-30, 30, -60, 60, -90, 90}

// TableOption is the slice of table state a caller needs to pick a seat.
type TableOption struct {
	ID      string             `json:"id"`
	Number  int                `json:"number"`
	Seats   int                `json:"seats"`
	Shape   tablesdomain.Shape `json:"shape"`
	Section string             `json:"section,omitempty"`
}

// Slot is one alternative start time with the tables free during it.
type Slot struct {
	Time   string        `json:"time"`
	Tables []TableOption `json:"tables"`
}

// Result is the outcome of one availability check. Tables is populated when
// Available is true; Alternatives when it is false and nearby slots have room.
type Result struct {
	Available    bool          `json:"available"`
	Tables       []TableOption `json:"tables,omitempty"`
	Alternatives []Slot        `json:"alternatives,omitempty"`
}

// CheckInput identifies the restaurant, the requested slot and the party size.
// Date is a calendar day (2006-01-02); Time accepts 12-hour and 24-hour forms.
type CheckInput struct {
	RestaurantID string
	Date         string
	Time         string
	Guests       int
}

// Engine answers availability questions by filtering the floor inventory
// against the overlapping bookings, and searches nearby slots when the
// requested one is full.
type Engine struct {
	tables       port.TableSource
	reservations port.ReservationSource
	restaurants  port.RestaurantSource
}

func NewEngine(tables port.TableSource, reservations port.ReservationSource, restaurants port.RestaurantSource) *Engine {
	return &Engine{tables: tables, reservations: reservations, restaurants: restaurants}
}

// Check runs the availability algorithm for a 90-minute window starting at the
// requested time. Malformed time strings are rejected rather than silently
// read as midnight.
func (e *Engine) Check(ctx context.Context, in CheckInput) (*Result, error) {
	restaurant, err := e.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if in.Guests <= 0 {
		return nil, resdomain.ErrInvalidGuestCount
	}
	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", clock.ErrInvalidTimeOfDay, in.Date)
	}
	startMin, err := clock.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}

	inventory, err := e.tables.ListByRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	// Base candidate set: seatable tables with enough capacity. Tables in
	// MAINTENANCE or INACTIVE never become candidates regardless of bookings.
	var base []tablesdomain.Table
	for _, t := range inventory {
		if t.Status.Seatable() && t.Seats >= in.Guests {
			base = append(base, t)
		}
	}
	sort.Slice(base, func(i, j int) bool { return base[i].Number < base[j].Number })

	free, err := e.freeAt(ctx, in.RestaurantID, base, day, startMin)
	if err != nil {
		return nil, err
	}
	if len(free) > 0 {
		return &Result{Available: true, Tables: free}, nil
	}

	sched, open := restaurant.ScheduleFor(day)
	if !open {
		return &Result{Available: false}, nil
	}
	var alternatives []Slot
	for _, offset := range alternativeOffsets {
		if len(alternatives) == maxAlternatives {
			break
		}
		alt := startMin + offset
		if alt < sched.Open || alt+slotMinutes > sched.Close || alt > sched.Close-closeBufferMinutes {
			continue
		}
		tables, err := e.freeAt(ctx, in.RestaurantID, base, day, alt)
		if err != nil {
			return nil, err
		}
		if len(tables) > 0 {
			alternatives = append(alternatives, Slot{Time: clock.FormatMinutes(alt), Tables: tables})
		}
	}
	return &Result{Available: false, Alternatives: alternatives}, nil
}

// freeAt filters the base candidates against the bookings overlapping the
// 90-minute window that starts at startMin on day. Table-bound bookings block
// their table; each booking not yet bound to a table is counted as consuming
// one candidate, so a fully booked floor reads as full even before assignment.
func (e *Engine) freeAt(ctx context.Context, restaurantID string, base []tablesdomain.Table, day time.Time, startMin int) ([]TableOption, error) {
	start := day.Add(time.Duration(startMin) * time.Minute)
	iv := resdomain.Interval{Start: start, End: start.Add(slotMinutes * time.Minute)}
	overlapping, err := e.reservations.ListForRestaurantOverlapping(ctx, restaurantID, iv)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{}, len(overlapping))
	unbound := 0
	for _, res := range overlapping {
		if res.Assigned() {
			occupied[res.TableID] = struct{}{}
		} else {
			unbound++
		}
	}

	var free []TableOption
	for _, t := range base {
		if _, taken := occupied[t.ID]; taken {
			continue
		}
		free = append(free, TableOption{ID: t.ID, Number: t.Number, Seats: t.Seats, Shape: t.Shape, Section: t.Section})
	}
	if unbound >= len(free) {
		return nil, nil
	}
	return free[:len(free)-unbound], nil
}
