package model

import "time"

// Day types used as a pricing dimension.  Weekday and weekend tickets
// are priced independently in the ticket price table.
const (
	DayTypeWeekday = "WEEKDAY"
	DayTypeWeekend = "WEEKEND"
)

// Showtime represents a scheduled screening of a movie in a particular
// hall.  The hall format (2D, 3D, IMAX, ...) together with the seat
// type and day type determines the ticket price.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – the movie being screened.
//  HallID    – hall where the screening takes place.
//  FormatID  – hall format used for price lookup.
//  StartsAt  – when the screening begins.
//  EndsAt    – when the screening ends (must be after StartsAt).
//  DayType   – WEEKDAY or WEEKEND, derived from StartsAt when scheduled.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Showtime struct {
	ID        uint64    // showtimes.id
	MovieID   uint64    // showtimes.movie_id
	HallID    uint64    // showtimes.hall_id
	FormatID  uint64    // showtimes.format_id
	StartsAt  time.Time // showtimes.starts_at
	EndsAt    time.Time // showtimes.ends_at
	DayType   string    // showtimes.day_type
	CreatedAt time.Time // showtimes.created_at
	UpdatedAt time.Time // showtimes.updated_at
}

// DayTypeOf classifies a screening start time as WEEKDAY or WEEKEND.
// Saturday and Sunday count as weekend.
func DayTypeOf(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return DayTypeWeekend
	default:
		return DayTypeWeekday
	}
}
