package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"mesaYaCore/internal/modules/tables/domain"
)

// TableRepository persists tables in MySQL. The (restaurant_id, number)
// uniqueness invariant is enforced by a composite unique key; version is a
// monotonically increasing column guarding concurrent writes.
type TableRepository struct {
	db *sql.DB
}

func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{db: db}
}

const tableColumns = `id, restaurant_id, number, seats, shape, radius, width, height,
	pos_x, pos_y, section, status, current_reservation_id, version`

func scanTable(row interface{ Scan(...any) error }) (*domain.Table, error) {
	var t domain.Table
	var section, current sql.NullString
	err := row.Scan(
		&t.ID, &t.RestaurantID, &t.Number, &t.Seats, &t.Shape,
		&t.Dims.Radius, &t.Dims.Width, &t.Dims.Height,
		&t.PosX, &t.PosY, &section, &t.Status, &current, &t.Version,
	)
	if err != nil {
		return nil, err
	}
	t.Section = section.String
	t.CurrentReservationID = current.String
	return &t, nil
}

// Create inserts the table, translating a duplicate-key failure on the
// (restaurant_id, number) index into ErrDuplicateTable.
func (r *TableRepository) Create(ctx context.Context, t *domain.Table) error {
	const q = `INSERT INTO tables
		(id, restaurant_id, number, seats, shape, radius, width, height, pos_x, pos_y, section, status, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.RestaurantID, t.Number, t.Seats, t.Shape,
		t.Dims.Radius, t.Dims.Width, t.Dims.Height,
		t.PosX, t.PosY, nullify(t.Section), t.Status,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.ErrDuplicateTable
		}
		return err
	}
	return nil
}

func (r *TableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE restaurant_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes every mutable field guarded by the version the caller loaded.
// A zero-row update on an existing table means a concurrent writer won.
func (r *TableRepository) Update(ctx context.Context, t *domain.Table) error {
	const q = `UPDATE tables SET
		seats = ?, shape = ?, radius = ?, width = ?, height = ?,
		section = ?, status = ?, current_reservation_id = ?, version = version + 1
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q,
		t.Seats, t.Shape, t.Dims.Radius, t.Dims.Width, t.Dims.Height,
		nullify(t.Section), t.Status, nullify(t.CurrentReservationID),
		t.ID, t.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
		return domain.ErrVersionConflict
	}
	t.Version++
	return nil
}

func (r *TableRepository) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	const q = `UPDATE tables SET pos_x = ?, pos_y = ?, version = version + 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, x, y, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTableNotFound)
}

func (r *TableRepository) SetStatus(ctx context.Context, id string, status domain.TableStatus, clearReservation bool) error {
	q := `UPDATE tables SET status = ?, version = version + 1 WHERE id = ?`
	if clearReservation {
		q = `UPDATE tables SET status = ?, current_reservation_id = NULL, version = version + 1 WHERE id = ?`
	}
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTableNotFound)
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTableNotFound)
}

// ClaimForAssignment flips an AVAILABLE table to the target status and binds
// the reservation in a single compare-and-swap, closing the race between the
// conflict check and the write. ErrVersionConflict means another assignment
// landed first; ErrTableNotAvailable-style checks stay with the caller.
func (r *TableRepository) ClaimForAssignment(ctx context.Context, id string, version int64, status domain.TableStatus, reservationID string) error {
	current := nullify("")
	if status == domain.StatusOccupied {
		current = nullify(reservationID)
	}
	const q = `UPDATE tables SET status = ?, current_reservation_id = ?, version = version + 1
		WHERE id = ? AND version = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, status, current, id, version, domain.StatusAvailable)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrVersionConflict
	}
	return nil
}

// Occupy marks the table OCCUPIED with the reservation as current occupant.
// Used when a seated party takes the table, so no status precondition applies.
func (r *TableRepository) Occupy(ctx context.Context, tableID, reservationID string) error {
	const q = `UPDATE tables SET status = ?, current_reservation_id = ?, version = version + 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, domain.StatusOccupied, reservationID, tableID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTableNotFound)
}

// Release returns the table to AVAILABLE and clears the current occupant.
func (r *TableRepository) Release(ctx context.Context, tableID string) error {
	const q = `UPDATE tables SET status = ?, current_reservation_id = NULL, version = version + 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, domain.StatusAvailable, tableID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrTableNotFound)
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

func nullify(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
