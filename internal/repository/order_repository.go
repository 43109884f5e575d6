package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// OrderRepo implements the booking engine's order service on MySQL:
// draft creation at hold time, cancellation, and the atomic payment
// transaction that persists line items, finalizes the header and flips
// the paid seats to BOOKED.
type OrderRepo struct {
	db       *sql.DB
	seatRepo *SeatRepo
}

// NewOrderRepo returns an OrderRepo bound to the provided database and
// seat repository.  Both must be non-nil.
func NewOrderRepo(db *sql.DB, seatRepo *SeatRepo) *OrderRepo {
	if db == nil || seatRepo == nil {
		panic("nil dependency passed to NewOrderRepo")
	}
	return &OrderRepo{db: db, seatRepo: seatRepo}
}

// newPublicCode derives a short public order reference of the form
// ORD-XXXXXX from a fresh UUID.
func newPublicCode() string {
	id := uuid.New().String()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:6])
}

// CreateDraft opens a PENDING order header with a zero price, bound to
// the user and the showtime's movie.  Called at hold time so payment
// only ever updates the draft.
func (r *OrderRepo) CreateDraft(ctx context.Context, userID uint64, showtime model.Showtime) (model.Order, error) {
	order := model.Order{
		PublicCode: newPublicCode(),
		UserID:     userID,
		ShowtimeID: showtime.ID,
		MovieID:    showtime.MovieID,
		Status:     model.OrderStatusPending,
	}
	const q = `INSERT INTO orders (public_code, user_id, showtime_id, movie_id, total_price, service_vat, status)
               VALUES (?, ?, ?, ?, 0, 0, ?)`
	res, err := r.db.ExecContext(ctx, q, order.PublicCode, order.UserID, order.ShowtimeID, order.MovieID, order.Status)
	if err != nil {
		return model.Order{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Order{}, err
	}
	order.ID = uint64(id)
	return order, nil
}

// PendingDraft returns the user's open PENDING draft for the showtime,
// or nil when none exists.  Used when a lease is restored after a
// reload.
func (r *OrderRepo) PendingDraft(ctx context.Context, userID, showtimeID uint64) (*model.Order, error) {
	const q = `SELECT id, public_code, user_id, showtime_id, movie_id, total_price, service_vat, discount_id, status, created_at
               FROM orders
               WHERE user_id = ? AND showtime_id = ? AND status = ?
               ORDER BY id DESC LIMIT 1`
	var o model.Order
	err := r.db.QueryRowContext(ctx, q, userID, showtimeID, model.OrderStatusPending).Scan(
		&o.ID, &o.PublicCode, &o.UserID, &o.ShowtimeID, &o.MovieID,
		&o.TotalPrice, &o.ServiceVAT, &o.DiscountID, &o.Status, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkCanceled transitions a draft to CANCELED unless it already
// completed.  The WHERE clause makes the call idempotent and protects
// finished orders.
func (r *OrderRepo) MarkCanceled(ctx context.Context, orderID uint64) error {
	const q = `UPDATE orders SET status = ?, canceled_at = UTC_TIMESTAMP()
               WHERE id = ? AND status = ?`
	_, err := r.db.ExecContext(ctx, q, model.OrderStatusCanceled, orderID, model.OrderStatusPending)
	return err
}

// GetByIDForUser returns one order owned by the user.  Returns
// ErrOrderNotFound when the order does not exist or belongs to someone
// else.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	const q = `SELECT id, public_code, user_id, showtime_id, movie_id, total_price, service_vat, discount_id, status, created_at, paid_at, canceled_at
               FROM orders WHERE id = ? AND user_id = ?`
	var o model.Order
	err := r.db.QueryRowContext(ctx, q, orderID, userID).Scan(
		&o.ID, &o.PublicCode, &o.UserID, &o.ShowtimeID, &o.MovieID,
		&o.TotalPrice, &o.ServiceVAT, &o.DiscountID, &o.Status, &o.CreatedAt, &o.PaidAt, &o.CanceledAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ProcessPayment atomically settles the draft: it persists every line
// item, writes the finalized totals and discount attribution on the
// header, transitions it to COMPLETED and flips the paid showtime
// seats to BOOKED.  Everything happens in one transaction; any failure
// rolls the whole settlement back and leaves the draft PENDING.
func (r *OrderRepo) ProcessPayment(ctx context.Context, payload model.OrderPayload) (model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	paidAt := time.Now().UTC()
	const headerQ = `UPDATE orders
                     SET total_price = ?, service_vat = ?, discount_id = ?, status = ?, paid_at = ?
                     WHERE id = ? AND user_id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, headerQ,
		payload.TotalPrice, payload.ServiceVAT, payload.DiscountID,
		model.OrderStatusCompleted, paidAt, payload.OrderID, payload.UserID, model.OrderStatusPending,
	)
	if err != nil {
		return model.Order{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Order{}, err
	} else if n == 0 {
		return model.Order{}, ErrOrderNotFound
	}

	if err := r.insertTicketsTx(ctx, tx, payload); err != nil {
		return model.Order{}, err
	}
	if err := r.insertCombosTx(ctx, tx, payload); err != nil {
		return model.Order{}, err
	}
	if err := r.insertItemsTx(ctx, tx, payload); err != nil {
		return model.Order{}, err
	}

	// flip the paid seats to BOOKED; the seat lock keys expire on their
	// own once the lease TTL lapses
	seatIDs := make([]uint64, 0, len(payload.Tickets))
	for _, t := range payload.Tickets {
		seatIDs = append(seatIDs, t.ShowtimeSeatID)
	}
	if err := r.seatRepo.BulkUpdateStatusTx(ctx, tx, payload.ShowtimeID, seatIDs, model.SeatStatusBooked); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	committed = true

	order, err := r.GetByIDForUser(ctx, payload.OrderID, payload.UserID)
	if err != nil {
		return model.Order{}, err
	}
	return *order, nil
}

func (r *OrderRepo) insertTicketsTx(ctx context.Context, tx *sql.Tx, payload model.OrderPayload) error {
	if len(payload.Tickets) == 0 {
		return nil
	}
	query := `INSERT INTO order_tickets (order_id, showtime_seat_id, seat_id, seat_label, price, price_tier_id) VALUES `
	args := make([]interface{}, 0, len(payload.Tickets)*6)
	for i, t := range payload.Tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, payload.OrderID, t.ShowtimeSeatID, t.SeatID, t.SeatLabel, t.Price, t.PriceTierID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *OrderRepo) insertCombosTx(ctx context.Context, tx *sql.Tx, payload model.OrderPayload) error {
	if len(payload.Combos) == 0 {
		return nil
	}
	query := `INSERT INTO order_combos (order_id, combo_id, quantity) VALUES `
	args := make([]interface{}, 0, len(payload.Combos)*3)
	for i, cl := range payload.Combos {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, payload.OrderID, cl.ComboID, cl.Quantity)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *OrderRepo) insertItemsTx(ctx context.Context, tx *sql.Tx, payload model.OrderPayload) error {
	if len(payload.Items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (order_id, item_id, quantity, unit_price, total) VALUES `
	args := make([]interface{}, 0, len(payload.Items)*5)
	for i, il := range payload.Items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, payload.OrderID, il.ItemID, il.Quantity, il.UnitPrice, il.Total)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
