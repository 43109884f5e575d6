package pricing

import "github.com/idol0602/cinema-booking-engine/internal/model"

// ServiceFeePercent is the fixed service surcharge applied after
// discounts on every order.
const ServiceFeePercent = 10

// ItemQuantity pairs an à-la-carte item with its selected quantity.
type ItemQuantity struct {
	Item     model.MenuItem
	Quantity int
}

// Basket is the read-only view of a selection the engine computes
// totals from.  ComboDiscounts carries the per-combo stacking
// percentages keyed by combo id; EventPercent is the contribution of
// the selected promotional event (0 when none, or its discount is
// inactive).
type Basket struct {
	Seats          []model.Seat
	Combos         []model.Combo
	ComboDiscounts map[uint64]int
	Items          []ItemQuantity
	EventPercent   int
}

// Totals is the full price breakdown for a basket.  Every field is
// derived step-wise with round-half-up at each rounding point, and
// downstream order totals must match these steps exactly for
// reconciliation.
type Totals struct {
	SeatTotal       int64 `json:"seat_total"`
	ComboTotal      int64 `json:"combo_total"`
	ItemTotal       int64 `json:"item_total"`
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int   `json:"discount_percent"`
	DiscountAmount  int64 `json:"discount_amount"`
	ServiceVAT      int64 `json:"service_vat"`
	Total           int64 `json:"total"`
}

// Compute derives the totals for a basket against the price table for
// the given hall format and day type.
//
// Discount percentages stack additively across every contributing
// source (each combo's event discount plus the selected event's), not
// multiplicatively and not capped.  A stacked percentage above 100 is
// allowed and yields a negative after-discount value; the engine does
// not clamp it.
func Compute(b Basket, table *Table, formatID uint64, dayType string) Totals {
	var t Totals
	for _, seat := range b.Seats {
		t.SeatTotal += table.Price(formatID, seat.SeatTypeID, dayType)
	}
	for _, combo := range b.Combos {
		t.ComboTotal += combo.TotalPrice
	}
	for _, iq := range b.Items {
		t.ItemTotal += iq.Item.Price * int64(iq.Quantity)
	}
	t.Subtotal = t.SeatTotal + t.ComboTotal + t.ItemTotal

	for _, pct := range b.ComboDiscounts {
		t.DiscountPercent += pct
	}
	t.DiscountPercent += b.EventPercent

	t.DiscountAmount = percentOf(t.Subtotal, t.DiscountPercent)
	afterDiscount := t.Subtotal - t.DiscountAmount
	t.ServiceVAT = percentOf(afterDiscount, ServiceFeePercent)
	t.Total = afterDiscount + t.ServiceVAT
	return t
}

// percentOf returns amount*percent/100 rounded half up.  Amounts are
// integral currency units, so the rounding is exact integer math with
// no floating point drift.
func percentOf(amount int64, percent int) int64 {
	product := amount * int64(percent)
	if product >= 0 {
		return (product + 50) / 100
	}
	return -((-product + 50) / 100)
}
