package model

import "time"

// Order statuses.  A draft is opened in PENDING state when seats are
// first leased; payment moves it to COMPLETED, cancellation (explicit
// or via lease expiry) to CANCELED.  A rejected payment leaves the
// draft PENDING so the user can retry while the lease lives.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCanceled  = "CANCELED"
)

// Order is the order header.  It is created eagerly at hold time with
// a zero price and finalized at payment time with the computed totals,
// so later steps only ever update it, never create it under time
// pressure.
//
// Fields:
//  ID         – primary key identifier.
//  PublicCode – short public reference shown to the customer (ORD-XXXXXX).
//  UserID     – customer the order belongs to.
//  ShowtimeID – showtime the tickets are for.
//  MovieID    – movie of that showtime, denormalized for reporting.
//  TotalPrice – grand total including the service surcharge.
//  ServiceVAT – service surcharge portion of the total.
//  DiscountID – discount rule of the selected event, when one applied.
//  Status     – PENDING, COMPLETED or CANCELED.
type Order struct {
	ID          uint64     // orders.id
	PublicCode  string     // orders.public_code
	UserID      uint64     // orders.user_id
	ShowtimeID  uint64     // orders.showtime_id
	MovieID     uint64     // orders.movie_id
	TotalPrice  int64      // orders.total_price
	ServiceVAT  int64      // orders.service_vat
	DiscountID  *uint64    // orders.discount_id (nullable)
	Status      string     // orders.status
	CreatedAt   time.Time  // orders.created_at
	PaidAt      *time.Time // orders.paid_at
	CanceledAt  *time.Time // orders.canceled_at
}

// TicketLine binds one seat to the price tier resolved for the
// showtime's (format, seat type, day type).  An empty PriceTierID is a
// data quality condition, not an error: the seat had no configured
// price at build time.
type TicketLine struct {
	ShowtimeSeatID uint64 // order_tickets.showtime_seat_id
	SeatID         uint64 // order_tickets.seat_id
	SeatLabel      string // order_tickets.seat_label
	Price          int64  // order_tickets.price
	PriceTierID    string // order_tickets.price_tier_id
}

// ComboLine references a selected combo by id.  Unit pricing is read
// from the combo record at settlement time rather than snapshotted.
type ComboLine struct {
	ComboID  uint64 // order_combos.combo_id
	Quantity int    // order_combos.quantity
}

// ItemLine is one à-la-carte item with quantity and a pre-computed
// line total (unit price x quantity).
type ItemLine struct {
	ItemID    uint64 // order_items.item_id
	Quantity  int    // order_items.quantity
	UnitPrice int64  // order_items.unit_price
	Total     int64  // order_items.total
}

// OrderPayload is the normalized payload submitted for payment: the
// finalized header values plus every line item derived from the
// selection at build time.
type OrderPayload struct {
	OrderID     uint64
	UserID      uint64
	ShowtimeID  uint64
	TotalPrice  int64
	ServiceVAT  int64
	DiscountID  *uint64
	Tickets     []TicketLine
	Combos      []ComboLine
	Items       []ItemLine
}
