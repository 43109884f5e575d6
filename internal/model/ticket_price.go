package model

// TicketPrice is one row of the preloaded price table.  A ticket's
// price is resolved by the (hall format, seat type, day type) triple;
// the PriceTierID identifies the matching tier record that ticket
// lines must reference when an order is built.
//
// Fields:
//  FormatID    – hall format dimension.
//  SeatTypeID  – seat category dimension.
//  DayType     – WEEKDAY or WEEKEND.
//  Price       – ticket price for the triple.
//  PriceTierID – identifier of the price tier record.
type TicketPrice struct {
	FormatID    uint64 // ticket_prices.format_id
	SeatTypeID  uint64 // ticket_prices.seat_type_id
	DayType     string // ticket_prices.day_type
	Price       int64  // ticket_prices.price
	PriceTierID string // ticket_prices.price_tier_id
}
