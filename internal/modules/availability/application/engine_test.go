package application

import (
	"context"
	"errors"
	"testing"
	"time"

	clients "mesaYaCore/internal/modules/clients/domain"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/shared/clock"
)

type fakeTables struct {
	tables []tablesdomain.Table
}

func (f *fakeTables) ListByRestaurant(_ context.Context, restaurantID string) ([]tablesdomain.Table, error) {
	var out []tablesdomain.Table
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeReservations struct {
	reservations []resdomain.Reservation
}

func (f *fakeReservations) ListForRestaurantOverlapping(_ context.Context, restaurantID string, iv resdomain.Interval) ([]resdomain.Reservation, error) {
	var out []resdomain.Reservation
	for _, res := range f.reservations {
		if res.RestaurantID == restaurantID && res.Status != resdomain.StatusCancelled && res.Interval().Overlaps(iv) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeRestaurants struct {
	byID map[string]*restaurants.Restaurant
}

func (f *fakeRestaurants) GetByID(_ context.Context, id string) (*restaurants.Restaurant, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, restaurants.ErrRestaurantNotFound
	}
	return r, nil
}

// 2026-09-07 is a Monday.
const monday = "2026-09-07"

func mondayTime(hour, minute int) time.Time {
	return time.Date(2026, time.September, 7, hour, minute, 0, 0, time.UTC)
}

func table(id string, number, seats int, status tablesdomain.TableStatus) tablesdomain.Table {
	return tablesdomain.Table{
		ID: id, RestaurantID: "rest-1", Number: number, Seats: seats,
		Shape: tablesdomain.ShapeSquare, Status: status,
	}
}

func booking(tableID string, start, end time.Time, status resdomain.ReservationStatus) resdomain.Reservation {
	return resdomain.Reservation{
		ID:           "res-" + tableID + start.Format("1504"),
		RestaurantID: "rest-1",
		Client:       clients.ClientRef{Kind: clients.KindRegistered, ID: "client-1"},
		Guests:       2,
		Status:       status,
		StartTime:    start,
		EndTime:      end,
		TableID:      tableID,
	}
}

func newTestEngine(tables []tablesdomain.Table, reservations []resdomain.Reservation) *Engine {
	return NewEngine(
		&fakeTables{tables: tables},
		&fakeReservations{reservations: reservations},
		&fakeRestaurants{byID: map[string]*restaurants.Restaurant{
			"rest-1": {ID: "rest-1", Name: "Bistro A", Hours: restaurants.OpeningHours{
				restaurants.Monday: {Open: 9 * 60, Close: 22 * 60},
			}},
		}},
	)
}

func TestEngineCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("a free table with enough seats is available", func(t *testing.T) {
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)}, nil)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !result.Available {
			t.Fatal("available = false, want true")
		}
		if len(result.Tables) != 1 || result.Tables[0].ID != "t1" {
			t.Fatalf("tables = %+v, want [t1]", result.Tables)
		}
	})

	t.Run("undersized tables are never candidates", func(t *testing.T) {
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 2, tablesdomain.StatusAvailable)}, nil)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available {
			t.Fatal("available = true for a 2-seat table and 4 guests")
		}
	})

	t.Run("maintenance and inactive tables are never candidates", func(t *testing.T) {
		engine := newTestEngine([]tablesdomain.Table{
			table("t1", 1, 4, tablesdomain.StatusMaintenance),
			table("t2", 2, 4, tablesdomain.StatusInactive),
		}, nil)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 2})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available {
			t.Fatal("available = true with only out-of-service tables")
		}
	})

	t.Run("a booked table yields alternatives nearest first", func(t *testing.T) {
		engine := newTestEngine(
			[]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)},
			[]resdomain.Reservation{booking("t1", mondayTime(14, 0), mondayTime(15, 30), resdomain.StatusPlanning)},
		)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available {
			t.Fatal("available = true for a fully booked slot")
		}
		if len(result.Alternatives) == 0 {
			t.Fatal("no alternatives for a bookable evening")
		}
		// Every slot between 12:30 and 15:30 exclusive overlaps the booking,
		// so the survivors are the ±90 offsets, earlier one first.
		if len(result.Alternatives) != 2 ||
			result.Alternatives[0].Time != "12:30" || result.Alternatives[1].Time != "15:30" {
			times := make([]string, 0, len(result.Alternatives))
			for _, alt := range result.Alternatives {
				times = append(times, alt.Time)
			}
			t.Fatalf("alternatives = %v, want [12:30 15:30]", times)
		}
	})

	t.Run("alternatives respect the pre-close buffer", func(t *testing.T) {
		// 21:00 request: the later offsets land within 120 minutes of the
		// 22:00 close and the earlier ones hit the 20:30-22:00 booking.
		engine := newTestEngine(
			[]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)},
			[]resdomain.Reservation{booking("t1", mondayTime(20, 30), mondayTime(22, 0), resdomain.StatusPlanning)},
		)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "21:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available || len(result.Alternatives) != 0 {
			t.Fatalf("result = %+v, want unavailable with no alternatives", result)
		}
	})

	t.Run("cancelled bookings do not block the slot", func(t *testing.T) {
		engine := newTestEngine(
			[]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)},
			[]resdomain.Reservation{booking("t1", mondayTime(14, 0), mondayTime(15, 30), resdomain.StatusCancelled)},
		)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !result.Available {
			t.Fatal("available = false, a cancelled booking should not block")
		}
	})

	t.Run("back-to-back bookings do not overlap", func(t *testing.T) {
		engine := newTestEngine(
			[]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)},
			[]resdomain.Reservation{booking("t1", mondayTime(12, 30), mondayTime(14, 0), resdomain.StatusPlanning)},
		)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !result.Available {
			t.Fatal("available = false for a booking that ends exactly at the requested start")
		}
	})

	t.Run("an unbound booking consumes a table", func(t *testing.T) {
		// Bistro A: one 2-seat table, a 12:00 reservation not yet bound to a
		// table. A 12:30 check must read the floor as full.
		unbound := booking("", mondayTime(12, 0), mondayTime(13, 30), resdomain.StatusPlanning)
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 2, tablesdomain.StatusAvailable)}, []resdomain.Reservation{unbound})
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "12:30", Guests: 2})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available {
			t.Fatal("available = true with one table and one unbound overlapping booking")
		}
		if len(result.Alternatives) == 0 {
			t.Fatal("no alternatives after the unbound booking clears")
		}
		for _, alt := range result.Alternatives {
			min, err := clock.ParseTimeOfDay(alt.Time)
			if err != nil {
				t.Fatalf("alternative time %q: %v", alt.Time, err)
			}
			if min >= 12*60 && min < 13*60+30 {
				t.Fatalf("alternative %s still overlaps the 12:00-13:30 booking", alt.Time)
			}
		}
	})

	t.Run("accepts 12-hour clock input", func(t *testing.T) {
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)}, nil)
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "2:00 PM", Guests: 2})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !result.Available {
			t.Fatal("available = false for a free afternoon slot")
		}
	})

	t.Run("rejects malformed times instead of defaulting to midnight", func(t *testing.T) {
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)}, nil)
		if _, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "late-ish", Guests: 2}); !errors.Is(err, clock.ErrInvalidTimeOfDay) {
			t.Fatalf("err = %v, want ErrInvalidTimeOfDay", err)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		engine := newTestEngine(nil, nil)
		if _, err := engine.Check(ctx, CheckInput{RestaurantID: "nope", Date: monday, Time: "14:00", Guests: 2}); !errors.Is(err, restaurants.ErrRestaurantNotFound) {
			t.Fatalf("err = %v, want ErrRestaurantNotFound", err)
		}
	})

	t.Run("rejects non-positive guest counts", func(t *testing.T) {
		engine := newTestEngine(nil, nil)
		if _, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: monday, Time: "14:00", Guests: 0}); !errors.Is(err, resdomain.ErrInvalidGuestCount) {
			t.Fatalf("err = %v, want ErrInvalidGuestCount", err)
		}
	})

	t.Run("closed day is unavailable with no alternatives", func(t *testing.T) {
		tuesday := time.Date(2026, time.September, 8, 14, 0, 0, 0, time.UTC)
		engine := newTestEngine([]tablesdomain.Table{table("t1", 1, 4, tablesdomain.StatusAvailable)}, []resdomain.Reservation{
			booking("t1", tuesday, tuesday.Add(90*time.Minute), resdomain.StatusPlanning),
		})
		// 2026-09-08 is a Tuesday with no schedule; the booked slot forces
		// the alternative search, which finds no open window.
		result, err := engine.Check(ctx, CheckInput{RestaurantID: "rest-1", Date: "2026-09-08", Time: "14:00", Guests: 4})
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if result.Available || len(result.Alternatives) != 0 {
			t.Fatalf("result = %+v, want unavailable with no alternatives", result)
		}
	})
}
