package repository

import (
	"context"
	"database/sql"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// SeatRepo loads seat reference data.  Seats are immutable within a
// booking flow; only the joined showtime-seat status changes, and only
// the lock service changes it.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a SeatRepo bound to the provided database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// ListForShowtime returns every seat of the showtime's hall joined
// with its showtime-seat sub-resource.  The result is the seat map the
// booking session is constructed with; restore matching relies on the
// showtime-seat ids being present.
func (r *SeatRepo) ListForShowtime(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	const q = `SELECT s.id, s.hall_id, s.row_label, s.seat_number, s.seat_type_id, s.is_active,
                      s.created_at, s.updated_at,
                      ss.id, ss.showtime_id, ss.status, ss.created_at, ss.updated_at
               FROM seats s
               JOIN showtime_seats ss ON ss.seat_id = s.id AND ss.showtime_id = ?
               ORDER BY s.row_label, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var seat model.Seat
		var ss model.ShowtimeSeat
		if err := rows.Scan(
			&seat.ID, &seat.HallID, &seat.RowLabel, &seat.SeatNumber, &seat.SeatTypeID, &seat.IsActive,
			&seat.CreatedAt, &seat.UpdatedAt,
			&ss.ID, &ss.ShowtimeID, &ss.Status, &ss.CreatedAt, &ss.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ss.SeatID = seat.ID
		seat.ShowtimeSeat = &ss
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// BulkUpdateStatusTx sets the status of the given showtime seats
// within an existing transaction.  Used by payment processing to flip
// paid seats to BOOKED.  Passing no ids is a no-op.
func (r *SeatRepo) BulkUpdateStatusTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, showtimeSeatIDs []uint64, status string) error {
	if len(showtimeSeatIDs) == 0 {
		return nil
	}
	query := `UPDATE showtime_seats SET status = ?, updated_at = UTC_TIMESTAMP() WHERE showtime_id = ? AND id IN (`
	args := make([]interface{}, 0, len(showtimeSeatIDs)+2)
	args = append(args, status, showtimeID)
	for i, id := range showtimeSeatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
