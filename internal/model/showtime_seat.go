package model

import "time"

// Showtime seat statuses.  AVAILABLE seats may be selected, HOLDING
// seats belong to someone's live lease, BOOKED seats are paid for and
// FIXING seats are taken out of service for the showtime.
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusHolding   = "HOLDING"
	SeatStatusBooked    = "BOOKED"
	SeatStatusFixing    = "FIXING"
)

// ShowtimeSeat links a seat to a particular showtime and tracks its
// availability.  There is one showtime_seat record for every active
// seat in a hall when a showtime is scheduled.
//
// Fields:
//  ID         – primary key identifier.
//  ShowtimeID – the showtime to which this seat belongs.
//  SeatID     – the physical seat being made available.
//  Status     – availability status (see the SeatStatus constants).
//  CreatedAt  – timestamp when the record was created.
//  UpdatedAt  – timestamp when the record was last updated.
type ShowtimeSeat struct {
	ID         uint64    // showtime_seats.id
	ShowtimeID uint64    // showtime_seats.showtime_id
	SeatID     uint64    // showtime_seats.seat_id
	Status     string    // showtime_seats.status
	CreatedAt  time.Time // showtime_seats.created_at
	UpdatedAt  time.Time // showtime_seats.updated_at
}
