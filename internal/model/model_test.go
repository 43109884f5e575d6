package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "F07", Seat{RowLabel: "F", SeatNumber: 7}.Label())
	assert.Equal(t, "A12", Seat{RowLabel: "A", SeatNumber: 12}.Label())
}

func TestSeatSelectable(t *testing.T) {
	cases := []struct {
		name string
		seat Seat
		want bool
	}{
		{"available and active", Seat{IsActive: true, ShowtimeSeat: &ShowtimeSeat{Status: SeatStatusAvailable}}, true},
		{"inactive seat", Seat{IsActive: false, ShowtimeSeat: &ShowtimeSeat{Status: SeatStatusAvailable}}, false},
		{"held seat", Seat{IsActive: true, ShowtimeSeat: &ShowtimeSeat{Status: SeatStatusHolding}}, false},
		{"booked seat", Seat{IsActive: true, ShowtimeSeat: &ShowtimeSeat{Status: SeatStatusBooked}}, false},
		{"under maintenance", Seat{IsActive: true, ShowtimeSeat: &ShowtimeSeat{Status: SeatStatusFixing}}, false},
		{"no showtime seat record", Seat{IsActive: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.seat.Selectable())
		})
	}
}

func TestDayTypeOf(t *testing.T) {
	// 2026-03-02 is a Monday
	monday := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, DayTypeWeekday, DayTypeOf(monday))
	assert.Equal(t, DayTypeWeekday, DayTypeOf(monday.AddDate(0, 0, 4)))
	assert.Equal(t, DayTypeWeekend, DayTypeOf(monday.AddDate(0, 0, 5)))
	assert.Equal(t, DayTypeWeekend, DayTypeOf(monday.AddDate(0, 0, 6)))
}

func TestComboDetailAllowsMovie(t *testing.T) {
	unrestricted := ComboDetail{}
	assert.True(t, unrestricted.AllowsMovie(1))

	restricted := ComboDetail{LinkedMovieIDs: []uint64{3, 5}}
	assert.True(t, restricted.AllowsMovie(3))
	assert.False(t, restricted.AllowsMovie(4))
}

func TestComboDetailStackPercent(t *testing.T) {
	assert.Equal(t, 0, ComboDetail{}.StackPercent())
	assert.Equal(t, 0, ComboDetail{LinkedEvent: &Event{}}.StackPercent())
	assert.Equal(t, 0, ComboDetail{LinkedEvent: &Event{Discount: &Discount{Percent: 10}}}.StackPercent())
	assert.Equal(t, 10, ComboDetail{LinkedEvent: &Event{Discount: &Discount{Percent: 10, Active: true}}}.StackPercent())
}

func TestEventActiveDiscountPercent(t *testing.T) {
	assert.Equal(t, 0, Event{}.ActiveDiscountPercent())
	assert.Equal(t, 0, Event{Discount: &Discount{Percent: 15}}.ActiveDiscountPercent())
	assert.Equal(t, 15, Event{Discount: &Discount{Percent: 15, Active: true}}.ActiveDiscountPercent())
}
