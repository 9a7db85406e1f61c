package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	rtdomain "mesaYaCore/internal/modules/realtime/domain"
	reservations "mesaYaCore/internal/modules/reservations/domain"
	restdomain "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/modules/tables/application/port"
	"mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/shared/clock"
)

// Registry owns table records per restaurant: uniqueness of the table number,
// status changes and the floor-plan lifecycle.
type Registry struct {
	tables       port.TableRepository
	reservations port.ReservationReader
	restaurants  port.RestaurantReader
	cache        port.LayoutCache
	events       port.EventPublisher
	now          func() time.Time
}

func NewRegistry(
	tables port.TableRepository,
	reservations port.ReservationReader,
	restaurants port.RestaurantReader,
	cache port.LayoutCache,
	events port.EventPublisher,
) *Registry {
	return &Registry{
		tables:       tables,
		reservations: reservations,
		restaurants:  restaurants,
		cache:        cache,
		events:       events,
		now:          time.Now,
	}
}

// CreateTableInput carries the operator-supplied fields for a new table.
type CreateTableInput struct {
	RestaurantID string
	Number       int
	Seats        int
	Shape        string
	Dims         domain.Dimensions
	PosX         float64
	PosY         float64
	Section      string
	Status       string
}

// Create registers a new table after validating shape dimensions and the
// per-restaurant number uniqueness.
func (r *Registry) Create(ctx context.Context, in CreateTableInput) (*domain.Table, error) {
	if _, err := r.restaurants.GetByID(ctx, in.RestaurantID); err != nil {
		return nil, err
	}
	if in.Seats <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}
	shape, err := domain.ParseShape(in.Shape)
	if err != nil {
		return nil, err
	}
	dims := in.Dims.ClearedFor(shape)
	if err := domain.ValidateDimensions(shape, dims); err != nil {
		return nil, err
	}
	status := domain.StatusAvailable
	if in.Status != "" {
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	table := &domain.Table{
		ID:           uuid.NewString(),
		RestaurantID: in.RestaurantID,
		Number:       in.Number,
		Seats:        in.Seats,
		Shape:        shape,
		Dims:         dims,
		PosX:         in.PosX,
		PosY:         in.PosY,
		Section:      in.Section,
		Status:       status,
	}
	if err := r.tables.Create(ctx, table); err != nil {
		return nil, err
	}

	r.invalidate(ctx, table.RestaurantID)
	r.publish(ctx, rtdomain.ActionTableAdded, table.RestaurantID, table.ID, table)
	return table, nil
}

// UpdateDetailsInput lists the optional fields of a details update; nil fields
// are left untouched.
type UpdateDetailsInput struct {
	Seats   *int
	Shape   *string
	Radius  *float64
	Width   *float64
	Height  *float64
	Section *string
	Status  *string
}

// UpdateDetails applies a partial update. Changing the shape clears the
// previous shape's dimension fields and requires the new shape's dimensions.
func (r *Registry) UpdateDetails(ctx context.Context, tableID string, in UpdateDetailsInput) (*domain.Table, error) {
	table, err := r.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if in.Seats != nil {
		if *in.Seats <= 0 {
			return nil, domain.ErrInvalidSeatCount
		}
		table.Seats = *in.Seats
	}
	if in.Section != nil {
		table.Section = *in.Section
	}

	dims := table.Dims
	if in.Radius != nil {
		dims.Radius = *in.Radius
	}
	if in.Width != nil {
		dims.Width = *in.Width
	}
	if in.Height != nil {
		dims.Height = *in.Height
	}
	shape := table.Shape
	if in.Shape != nil {
		if shape, err = domain.ParseShape(*in.Shape); err != nil {
			return nil, err
		}
	}
	if shape != table.Shape {
		dims = dims.ClearedFor(shape)
	}
	if err := domain.ValidateDimensions(shape, dims); err != nil {
		return nil, err
	}
	table.Shape = shape
	table.Dims = dims

	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		table.Status = status
		if status == domain.StatusAvailable {
			table.CurrentReservationID = ""
		}
	}

	if err := r.tables.Update(ctx, table); err != nil {
		return nil, err
	}

	r.invalidate(ctx, table.RestaurantID)
	r.publish(ctx, rtdomain.ActionTableDetailsUpdated, table.RestaurantID, table.ID, table)
	return table, nil
}

// UpdatePosition moves a table on the floor plan.
func (r *Registry) UpdatePosition(ctx context.Context, tableID string, x, y float64) (*domain.Table, error) {
	table, err := r.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if err := r.tables.UpdatePosition(ctx, tableID, x, y); err != nil {
		return nil, err
	}
	table.PosX, table.PosY = x, y

	r.invalidate(ctx, table.RestaurantID)
	r.publish(ctx, rtdomain.ActionTablePositionUpdated, table.RestaurantID, table.ID, table)
	return table, nil
}

// SetStatus applies an operator-driven status change. Any-to-any transitions
// are allowed; setting AVAILABLE clears the current-reservation reference.
func (r *Registry) SetStatus(ctx context.Context, tableID, status string) (*domain.Table, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	table, err := r.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	clear := parsed == domain.StatusAvailable
	if err := r.tables.SetStatus(ctx, tableID, parsed, clear); err != nil {
		return nil, err
	}
	table.Status = parsed
	if clear {
		table.CurrentReservationID = ""
	}

	r.invalidate(ctx, table.RestaurantID)
	r.publish(ctx, rtdomain.ActionTableStatusUpdated, table.RestaurantID, table.ID, table)
	return table, nil
}

// Delete removes a table unless a current or future reservation still references it.
func (r *Registry) Delete(ctx context.Context, tableID string) error {
	table, err := r.tables.GetByID(ctx, tableID)
	if err != nil {
		return err
	}
	if table.CurrentReservationID != "" {
		return fmt.Errorf("%w: table %d", domain.ErrHasCurrentReservation, table.Number)
	}
	upcoming, err := r.reservations.ListActiveForTable(ctx, tableID, r.now())
	if err != nil {
		return err
	}
	if len(upcoming) > 0 {
		return fmt.Errorf("%w: table %d", domain.ErrHasFutureReservations, table.Number)
	}
	if err := r.tables.Delete(ctx, tableID); err != nil {
		return err
	}

	r.invalidate(ctx, table.RestaurantID)
	r.publish(ctx, rtdomain.ActionTableDeleted, table.RestaurantID, table.ID, map[string]any{"id": table.ID, "number": table.Number})
	return nil
}

// DaySchedule labels a restaurant's operating window for one date.
type DaySchedule struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// RestaurantTables is the enriched listing payload.
type RestaurantTables struct {
	RestaurantID string         `json:"restaurantId"`
	Date         string         `json:"date"`
	Schedule     DaySchedule    `json:"schedule"`
	Tables       []domain.Table `json:"tables"`
}

// ListByRestaurant returns every table of the restaurant together with the
// operating window of the given date.
func (r *Registry) ListByRestaurant(ctx context.Context, restaurantID string, date time.Time) (*RestaurantTables, error) {
	restaurant, err := r.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	tables, err := r.tables.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &RestaurantTables{
		RestaurantID: restaurantID,
		Date:         date.Format("2006-01-02"),
		Schedule:     scheduleLabel(restaurant, date),
		Tables:       tables,
	}, nil
}

// LayoutTable pairs a table with the reservations claiming it on the layout date.
type LayoutTable struct {
	domain.Table
	Reservations []reservations.Reservation `json:"reservations"`
}

// FloorLayout is the full floor plan of a restaurant for one date.
type FloorLayout struct {
	RestaurantID string        `json:"restaurantId"`
	Date         string        `json:"date"`
	Schedule     DaySchedule   `json:"schedule"`
	Tables       []LayoutTable `json:"tables"`
}

// Layout builds the floor layout for a date, served from the cache when fresh.
func (r *Registry) Layout(ctx context.Context, restaurantID string, date time.Time) (json.RawMessage, error) {
	key := layoutKey(restaurantID, date)
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	restaurant, err := r.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	tables, err := r.tables.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	day := reservations.Interval{Start: dayStart, End: dayStart.AddDate(0, 0, 1)}
	booked, err := r.reservations.ListForRestaurantOverlapping(ctx, restaurantID, day)
	if err != nil {
		return nil, err
	}

	byTable := make(map[string][]reservations.Reservation, len(tables))
	for _, res := range booked {
		if res.Assigned() {
			byTable[res.TableID] = append(byTable[res.TableID], res)
		}
	}
	layout := &FloorLayout{
		RestaurantID: restaurantID,
		Date:         date.Format("2006-01-02"),
		Schedule:     scheduleLabel(restaurant, date),
		Tables:       make([]LayoutTable, 0, len(tables)),
	}
	for _, t := range tables {
		entries := byTable[t.ID]
		if entries == nil {
			entries = []reservations.Reservation{}
		}
		layout.Tables = append(layout.Tables, LayoutTable{Table: t, Reservations: entries})
	}

	payload, err := json.Marshal(layout)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.cache.Set(ctx, key, payload)
	}
	return payload, nil
}

// TablePosition is one entry of a bulk layout save.
type TablePosition struct {
	TableID string  `json:"tableId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// UpdateLayout persists a bulk position change and emits a single
// floorLayoutUpdated event for the restaurant.
func (r *Registry) UpdateLayout(ctx context.Context, restaurantID string, positions []TablePosition) error {
	if _, err := r.restaurants.GetByID(ctx, restaurantID); err != nil {
		return err
	}
	for _, pos := range positions {
		table, err := r.tables.GetByID(ctx, pos.TableID)
		if err != nil {
			return err
		}
		if table.RestaurantID != restaurantID {
			return fmt.Errorf("%w: %s", domain.ErrTableNotFound, pos.TableID)
		}
		if err := r.tables.UpdatePosition(ctx, pos.TableID, pos.X, pos.Y); err != nil {
			return err
		}
	}

	r.invalidate(ctx, restaurantID)
	r.publish(ctx, rtdomain.ActionFloorLayoutUpdated, restaurantID, restaurantID, map[string]any{"positions": positions})
	return nil
}

// ReservationsForTable lists every reservation touching the table on a date.
func (r *Registry) ReservationsForTable(ctx context.Context, tableID string, date time.Time) ([]reservations.Reservation, error) {
	if _, err := r.tables.GetByID(ctx, tableID); err != nil {
		return nil, err
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	day := reservations.Interval{Start: dayStart, End: dayStart.AddDate(0, 0, 1)}
	return r.reservations.ListForTableOverlapping(ctx, tableID, day)
}

func (r *Registry) publish(ctx context.Context, action, restaurantID, resourceID string, data any) {
	if r.events == nil {
		return
	}
	r.events.Publish(ctx, rtdomain.NewEvent(action, rtdomain.RestaurantRoom(restaurantID), resourceID, data))
}

func (r *Registry) invalidate(ctx context.Context, restaurantID string) {
	if r.cache != nil {
		r.cache.InvalidateRestaurant(ctx, restaurantID)
	}
}

func scheduleLabel(restaurant *restdomain.Restaurant, date time.Time) DaySchedule {
	day := string(restdomain.DayOf(date))
	sched, ok := restaurant.ScheduleFor(date)
	if !ok {
		return DaySchedule{Day: day, Closed: true}
	}
	return DaySchedule{
		Day:   day,
		Open:  clock.FormatMinutes(sched.Open),
		Close: clock.FormatMinutes(sched.Close),
	}
}

func layoutKey(restaurantID string, date time.Time) string {
	return "layout:" + restaurantID + ":" + date.Format("2006-01-02")
}
