package model

import (
	"fmt"
	"time"
)

// Seat describes a physical seat in a hall.  Seats are immutable
// reference data: only the status of the matching showtime seat
// changes during a booking flow, and only the lock service may change
// it.  Seats are uniquely identified by their hall, row label and
// seat number.
//
// Fields:
//  ID         – primary key identifier.
//  HallID     – hall to which this seat belongs.
//  RowLabel   – letter or string designating the row.
//  SeatNumber – number of the seat within the row.
//  SeatTypeID – pricing category of the seat (standard, VIP, couple).
//  IsActive   – whether the seat may be sold at all.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    // seats.id
	HallID     uint64    // seats.hall_id
	RowLabel   string    // seats.row_label
	SeatNumber uint32    // seats.seat_number
	SeatTypeID uint64    // seats.seat_type_id
	IsActive   bool      // seats.is_active
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at

	// ShowtimeSeat is the per-showtime sub-resource for this seat.  It is
	// populated when seats are loaded for a specific showtime and carries
	// the only mutable piece of seat state, the availability status.
	ShowtimeSeat *ShowtimeSeat
}

// Label renders the human readable seat label, e.g. "F07".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%02d", s.RowLabel, s.SeatNumber)
}

// Selectable reports whether the seat can legally be added to a
// selection: it must be active and its showtime seat must currently be
// AVAILABLE.  Seats without a showtime seat record are never selectable.
func (s Seat) Selectable() bool {
	return s.IsActive && s.ShowtimeSeat != nil && s.ShowtimeSeat.Status == SeatStatusAvailable
}
