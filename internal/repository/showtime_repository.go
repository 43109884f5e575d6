package repository

import (
	"context"
	"database/sql"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// ShowtimeRepo provides read access to showtimes.  The booking engine
// needs the start time for the booking-window check and the format and
// day type for price lookup.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo returns a ShowtimeRepo bound to the provided database.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *ShowtimeRepo) DB() *sql.DB { return r.db }

// GetByID loads a single showtime.  Returns ErrShowtimeNotFound when
// the id does not exist.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, hall_id, format_id, starts_at, ends_at, day_type, created_at, updated_at
               FROM showtimes WHERE id = ?`
	var st model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&st.ID, &st.MovieID, &st.HallID, &st.FormatID,
		&st.StartsAt, &st.EndsAt, &st.DayType, &st.CreatedAt, &st.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrShowtimeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}
