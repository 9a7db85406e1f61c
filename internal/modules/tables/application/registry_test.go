package application

import (
	"context"
	"errors"
	"testing"
	"time"

	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	reservations "mesaYaCore/internal/modules/reservations/domain"
	restdomain "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/modules/tables/domain"
)

type fakeTableRepo struct {
	tables map[string]*domain.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[string]*domain.Table)}
}

func (f *fakeTableRepo) Create(_ context.Context, t *domain.Table) error {
	for _, existing := range f.tables {
		if existing.RestaurantID == t.RestaurantID && existing.Number == t.Number {
			return domain.ErrDuplicateTable
		}
	}
	cp := *t
	f.tables[t.ID] = &cp
	return nil
}

func (f *fakeTableRepo) GetByID(_ context.Context, id string) (*domain.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, domain.ErrTableNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTableRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.Table, error) {
	out := []domain.Table{}
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) Update(_ context.Context, t *domain.Table) error {
	if _, ok := f.tables[t.ID]; !ok {
		return domain.ErrTableNotFound
	}
	cp := *t
	cp.Version++
	f.tables[t.ID] = &cp
	return nil
}

func (f *fakeTableRepo) UpdatePosition(_ context.Context, id string, x, y float64) error {
	t, ok := f.tables[id]
	if !ok {
		return domain.ErrTableNotFound
	}
	t.PosX, t.PosY = x, y
	return nil
}

func (f *fakeTableRepo) SetStatus(_ context.Context, id string, status domain.TableStatus, clearReservation bool) error {
	t, ok := f.tables[id]
	if !ok {
		return domain.ErrTableNotFound
	}
	t.Status = status
	if clearReservation {
		t.CurrentReservationID = ""
	}
	return nil
}

func (f *fakeTableRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tables[id]; !ok {
		return domain.ErrTableNotFound
	}
	delete(f.tables, id)
	return nil
}

type fakeReservationReader struct {
	byTable map[string][]reservations.Reservation
}

func (f *fakeReservationReader) ListActiveForTable(_ context.Context, tableID string, after time.Time) ([]reservations.Reservation, error) {
	var out []reservations.Reservation
	for _, res := range f.byTable[tableID] {
		if res.Status != reservations.StatusCancelled && res.EndTime.After(after) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationReader) ListForRestaurantOverlapping(context.Context, string, reservations.Interval) ([]reservations.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationReader) ListForTableOverlapping(_ context.Context, tableID string, iv reservations.Interval) ([]reservations.Reservation, error) {
	var out []reservations.Reservation
	for _, res := range f.byTable[tableID] {
		if res.Interval().Overlaps(iv) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeRestaurantReader struct {
	restaurants map[string]*restdomain.Restaurant
}

func (f *fakeRestaurantReader) GetByID(_ context.Context, id string) (*restdomain.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, restdomain.ErrRestaurantNotFound
	}
	return r, nil
}

type recordingPublisher struct {
	events []*rtdomain.Event
}

func (r *recordingPublisher) Publish(_ context.Context, evt *rtdomain.Event) {
	r.events = append(r.events, evt)
}

func (r *recordingPublisher) lastAction() string {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1].Action
}

func newTestRegistry() (*Registry, *fakeTableRepo, *fakeReservationReader, *recordingPublisher) {
	repo := newFakeTableRepo()
	reader := &fakeReservationReader{byTable: map[string][]reservations.Reservation{}}
	rests := &fakeRestaurantReader{restaurants: map[string]*restdomain.Restaurant{
		"r1": {ID: "r1", Name: "Bistro A", Hours: restdomain.OpeningHours{
			restdomain.Monday: {Open: 540, Close: 1320},
		}},
	}}
	pub := &recordingPublisher{}
	reg := NewRegistry(repo, reader, rests, nil, pub)
	return reg, repo, reader, pub
}

func validInput() CreateTableInput {
	return CreateTableInput{
		RestaurantID: "r1",
		Number:       4,
		Seats:        4,
		Shape:        "round",
		Dims:         domain.Dimensions{Radius: 0.6},
	}
}

func TestCreateTableRoundTrip(t *testing.T) {
	reg, _, _, pub := newTestRegistry()

	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusAvailable {
		t.Fatalf("expected default AVAILABLE status, got %s", created.Status)
	}
	if pub.lastAction() != rtdomain.ActionTableAdded {
		t.Fatalf("expected tableAdded event, got %q", pub.lastAction())
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	listing, err := reg.ListByRestaurant(context.Background(), "r1", monday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listing.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(listing.Tables))
	}
	got := listing.Tables[0]
	if got.ID != created.ID || got.Number != 4 || got.Seats != 4 || got.Shape != domain.ShapeRound || got.Dims.Radius != 0.6 {
		t.Fatalf("listed table does not match created table: %+v", got)
	}
	if listing.Schedule.Open != "09:00" || listing.Schedule.Close != "22:00" {
		t.Fatalf("unexpected schedule %+v", listing.Schedule)
	}
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	reg, _, _, _ := newTestRegistry()

	if _, err := reg.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := reg.Create(context.Background(), validInput())
	if !errors.Is(err, domain.ErrDuplicateTable) {
		t.Fatalf("expected ErrDuplicateTable, got %v", err)
	}
}

func TestCreateTableInvalidDimensions(t *testing.T) {
	reg, _, _, _ := newTestRegistry()

	in := validInput()
	in.Dims = domain.Dimensions{}
	if _, err := reg.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidShapeDimensions) {
		t.Fatalf("round without radius: expected ErrInvalidShapeDimensions, got %v", err)
	}

	in = validInput()
	in.Number = 5
	in.Shape = "rectangle"
	in.Dims = domain.Dimensions{Width: 1.2}
	if _, err := reg.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidShapeDimensions) {
		t.Fatalf("rectangle without height: expected ErrInvalidShapeDimensions, got %v", err)
	}
}

func TestCreateTableUnknownRestaurant(t *testing.T) {
	reg, _, _, _ := newTestRegistry()

	in := validInput()
	in.RestaurantID = "missing"
	if _, err := reg.Create(context.Background(), in); !errors.Is(err, restdomain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestUpdateDetailsShapeChangeRequiresNewDims(t *testing.T) {
	reg, _, _, _ := newTestRegistry()
	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shape := "rectangle"
	if _, err := reg.UpdateDetails(context.Background(), created.ID, UpdateDetailsInput{Shape: &shape}); !errors.Is(err, domain.ErrInvalidShapeDimensions) {
		t.Fatalf("shape change without new dims must fail, got %v", err)
	}

	width, height := 1.2, 0.8
	updated, err := reg.UpdateDetails(context.Background(), created.ID, UpdateDetailsInput{Shape: &shape, Width: &width, Height: &height})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Shape != domain.ShapeRectangle {
		t.Fatalf("expected RECTANGLE, got %s", updated.Shape)
	}
	if updated.Dims.Radius != 0 {
		t.Fatal("old shape's radius must be cleared on shape change")
	}
	if updated.Dims.Width != 1.2 || updated.Dims.Height != 0.8 {
		t.Fatalf("unexpected dimensions %+v", updated.Dims)
	}
}

func TestUpdateDetailsPartial(t *testing.T) {
	reg, _, _, pub := newTestRegistry()
	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	seats := 6
	updated, err := reg.UpdateDetails(context.Background(), created.ID, UpdateDetailsInput{Seats: &seats})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Seats != 6 {
		t.Fatalf("expected 6 seats, got %d", updated.Seats)
	}
	if updated.Shape != domain.ShapeRound || updated.Dims.Radius != 0.6 {
		t.Fatal("untouched fields must survive a partial update")
	}
	if pub.lastAction() != rtdomain.ActionTableDetailsUpdated {
		t.Fatalf("expected tableDetailsUpdated event, got %q", pub.lastAction())
	}
}

func TestUpdatePosition(t *testing.T) {
	reg, _, _, pub := newTestRegistry()
	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := reg.UpdatePosition(context.Background(), created.ID, 3.5, 7.25)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.PosX != 3.5 || moved.PosY != 7.25 {
		t.Fatalf("unexpected position (%v, %v)", moved.PosX, moved.PosY)
	}
	if pub.lastAction() != rtdomain.ActionTablePositionUpdated {
		t.Fatalf("expected tablePositionUpdated event, got %q", pub.lastAction())
	}

	if _, err := reg.UpdatePosition(context.Background(), "missing", 1, 1); !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestSetStatusAvailableClearsCurrentReservation(t *testing.T) {
	reg, repo, _, pub := newTestRegistry()
	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.tables[created.ID].Status = domain.StatusOccupied
	repo.tables[created.ID].CurrentReservationID = "res-1"

	updated, err := reg.SetStatus(context.Background(), created.ID, "available")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != domain.StatusAvailable {
		t.Fatalf("expected AVAILABLE, got %s", updated.Status)
	}
	if updated.CurrentReservationID != "" {
		t.Fatal("setting AVAILABLE must clear the current reservation")
	}
	if pub.lastAction() != rtdomain.ActionTableStatusUpdated {
		t.Fatalf("expected tableStatusUpdated event, got %q", pub.lastAction())
	}

	if _, err := reg.SetStatus(context.Background(), created.ID, "broken"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteGuards(t *testing.T) {
	reg, repo, reader, pub := newTestRegistry()
	created, err := reg.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.tables[created.ID].CurrentReservationID = "res-1"
	if err := reg.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrHasCurrentReservation) {
		t.Fatalf("expected ErrHasCurrentReservation, got %v", err)
	}
	repo.tables[created.ID].CurrentReservationID = ""

	reader.byTable[created.ID] = []reservations.Reservation{{
		ID:      "res-2",
		TableID: created.ID,
		Status:  reservations.StatusPlanning,
		EndTime: time.Now().Add(24 * time.Hour),
	}}
	if err := reg.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrHasFutureReservations) {
		t.Fatalf("expected ErrHasFutureReservations, got %v", err)
	}

	// A reservation already underway blocks too, even before the party is
	// seated and the table carries no current reservation id.
	reader.byTable[created.ID] = []reservations.Reservation{{
		ID:        "res-3",
		TableID:   created.ID,
		Status:    reservations.StatusPlanning,
		StartTime: time.Now().Add(-30 * time.Minute),
		EndTime:   time.Now().Add(60 * time.Minute),
	}}
	if err := reg.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrHasFutureReservations) {
		t.Fatalf("expected ErrHasFutureReservations for in-progress reservation, got %v", err)
	}

	// A cancelled future reservation is not a blocker.
	reader.byTable[created.ID][0].Status = reservations.StatusCancelled
	if err := reg.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if pub.lastAction() != rtdomain.ActionTableDeleted {
		t.Fatalf("expected tableDeleted event, got %q", pub.lastAction())
	}
}
