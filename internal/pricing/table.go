// Package pricing implements the preloaded ticket price table and the
// pure totals computation for a booking selection.  Nothing in this
// package performs I/O; the price table is built once from repository
// data and treated as read-only reference data afterwards.
package pricing

import "github.com/idol0602/cinema-booking-engine/internal/model"

// tripleKey identifies one price table entry.  The table is an open
// world: triples without an entry resolve to a zero price and an empty
// tier id rather than an error.
type tripleKey struct {
	formatID   uint64
	seatTypeID uint64
	dayType    string
}

// Table resolves ticket prices and price tier ids for
// (hall format, seat type, day type) triples.
type Table struct {
	entries map[tripleKey]model.TicketPrice
}

// NewTable builds a lookup table from price rows.  Later rows win when
// duplicates occur, mirroring how the catalog service resolves them.
func NewTable(rows []model.TicketPrice) *Table {
	entries := make(map[tripleKey]model.TicketPrice, len(rows))
	for _, row := range rows {
		entries[tripleKey{row.FormatID, row.SeatTypeID, row.DayType}] = row
	}
	return &Table{entries: entries}
}

// Price returns the ticket price for the triple.  Missing entries
// resolve to 0: an unconfigured seat is treated as free rather than a
// hard error.
func (t *Table) Price(formatID, seatTypeID uint64, dayType string) int64 {
	return t.entries[tripleKey{formatID, seatTypeID, dayType}].Price
}

// TierID returns the price tier identifier for the triple, or the
// empty string when no tier matches.
func (t *Table) TierID(formatID, seatTypeID uint64, dayType string) string {
	return t.entries[tripleKey{formatID, seatTypeID, dayType}].PriceTierID
}
