package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mesaYaCore/internal/modules/restaurants/domain"
)

// RestaurantRepository loads restaurant records and their opening hours from MySQL.
type RestaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// GetByID loads a restaurant together with its weekly schedule. Opening-hour
// strings are normalized once here; a row that cannot be parsed surfaces an
// error instead of silently defaulting to midnight.
func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	const q = `SELECT id, name FROM restaurants WHERE id = ?`
	rest := &domain.Restaurant{Hours: domain.OpeningHours{}}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rest.ID, &rest.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}

	const hq = `SELECT weekday, open_time, close_time FROM restaurant_hours WHERE restaurant_id = ?`
	rows, err := r.db.QueryContext(ctx, hq, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, openRaw, closeRaw string
		if err := rows.Scan(&weekday, &openRaw, &closeRaw); err != nil {
			return nil, err
		}
		day := domain.NormalizeDay(weekday)
		if day == "" {
			return nil, fmt.Errorf("restaurant %s: unknown weekday %q", id, weekday)
		}
		sched, err := domain.BuildDaySchedule(openRaw, closeRaw)
		if err != nil {
			return nil, fmt.Errorf("restaurant %s %s: %w", id, weekday, err)
		}
		rest.Hours[day] = sched
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rest, nil
}
