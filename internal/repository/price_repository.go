package repository

import (
	"context"
	"database/sql"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// PriceRepo reads the ticket price table.  The whole table is loaded
// once at startup and handed to pricing.NewTable; price rows change
// rarely enough that a restart is an acceptable refresh.
type PriceRepo struct {
	db *sql.DB
}

// NewPriceRepo returns a PriceRepo bound to the provided database.
func NewPriceRepo(db *sql.DB) *PriceRepo { return &PriceRepo{db: db} }

// ListTicketPrices returns every (format, seat type, day type) price
// row together with its price tier identifier.
func (r *PriceRepo) ListTicketPrices(ctx context.Context) ([]model.TicketPrice, error) {
	const q = `SELECT format_id, seat_type_id, day_type, price, price_tier_id FROM ticket_prices`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var prices []model.TicketPrice
	for rows.Next() {
		var p model.TicketPrice
		if err := rows.Scan(&p.FormatID, &p.SeatTypeID, &p.DayType, &p.Price, &p.PriceTierID); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}
