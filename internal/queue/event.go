// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCompletedEvent is published when a draft order is successfully
// paid.  It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type OrderCompletedEvent struct {
	OrderID         uint64   `json:"order_id"`
	PublicCode      string   `json:"public_code"`
	UserID          uint64   `json:"user_id"`
	ShowtimeID      uint64   `json:"showtime_id"`
	MovieID         uint64   `json:"movie_id"`
	SeatLabels      []string `json:"seats"`
	DiscountPercent int      `json:"discount_percent"`
	ServiceVAT      int64    `json:"service_vat"`
	TotalPrice      int64    `json:"total_price"`
	PaidAt          string   `json:"paid_at"`
}
