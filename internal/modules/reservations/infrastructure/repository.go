package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	clients "mesaYaCore/internal/modules/clients/domain"
	"mesaYaCore/internal/modules/reservations/domain"
)

// ReservationRepository persists reservations in MySQL. Intervals are stored
// as UTC start/end timestamps; overlap queries run the half-open test in SQL
// so candidate filtering never loads a full day of rows.
type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, restaurant_id, client_kind, client_id, guests, status,
	created_at, start_time, end_time, table_id, table_number`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	var res domain.Reservation
	var kind string
	var tableID sql.NullString
	var tableNumber sql.NullInt64
	err := row.Scan(
		&res.ID, &res.RestaurantID, &kind, &res.Client.ID, &res.Guests, &res.Status,
		&res.CreatedAt, &res.StartTime, &res.EndTime, &tableID, &tableNumber,
	)
	if err != nil {
		return nil, err
	}
	res.Client.Kind = clients.ClientKind(kind)
	res.TableID = tableID.String
	res.TableNumber = int(tableNumber.Int64)
	return &res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	const q = `INSERT INTO reservations
		(id, restaurant_id, client_kind, client_id, guests, status, created_at, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.RestaurantID, res.Client.Kind, res.Client.ID,
		res.Guests, res.Status, res.CreatedAt.UTC(), res.StartTime.UTC(), res.EndTime.UTC(),
	)
	return err
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrReservationNotFound)
}

// AssignTable binds the table reference; the reservation keeps its interval.
func (r *ReservationRepository) AssignTable(ctx context.Context, id, tableID string, tableNumber int) error {
	const q = `UPDATE reservations SET table_id = ?, table_number = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, tableID, tableNumber, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrReservationNotFound)
}

// ListForRestaurantOverlapping returns every non-cancelled reservation of the
// restaurant whose [start, end) interval overlaps iv.
func (r *ReservationRepository) ListForRestaurantOverlapping(ctx context.Context, restaurantID string, iv domain.Interval) ([]domain.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
		WHERE restaurant_id = ? AND status <> 'CANCELLED' AND start_time < ? AND end_time > ?
		ORDER BY start_time`
	return r.list(ctx, q, restaurantID, iv.End.UTC(), iv.Start.UTC())
}

// ListActiveForTable returns the non-cancelled reservations bound to the
// table that end after the given instant, so a reservation already in
// progress still counts. The table delete guard uses this.
func (r *ReservationRepository) ListActiveForTable(ctx context.Context, tableID string, after time.Time) ([]domain.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
		WHERE table_id = ? AND status <> 'CANCELLED' AND end_time > ?
		ORDER BY start_time`
	return r.list(ctx, q, tableID, after.UTC())
}

// ListForTableOverlapping returns the non-cancelled reservations bound to the
// table whose interval overlaps iv. The assignment conflict check uses this.
func (r *ReservationRepository) ListForTableOverlapping(ctx context.Context, tableID string, iv domain.Interval) ([]domain.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
		WHERE table_id = ? AND status <> 'CANCELLED' AND start_time < ? AND end_time > ?
		ORDER BY start_time`
	return r.list(ctx, q, tableID, iv.End.UTC(), iv.Start.UTC())
}

func (r *ReservationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func requireRow(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}
