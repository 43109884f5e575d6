package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

func testTable() *Table {
	return NewTable([]model.TicketPrice{
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekday, Price: 90000, PriceTierID: "tier-std-wd"},
		{FormatID: 1, SeatTypeID: 2, DayType: model.DayTypeWeekday, Price: 120000, PriceTierID: "tier-vip-wd"},
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekend, Price: 110000, PriceTierID: "tier-std-we"},
	})
}

func seat(id, seatTypeID uint64) model.Seat {
	return model.Seat{ID: id, SeatTypeID: seatTypeID, IsActive: true}
}

func TestTableLookup(t *testing.T) {
	table := testTable()

	assert.Equal(t, int64(90000), table.Price(1, 1, model.DayTypeWeekday))
	assert.Equal(t, "tier-vip-wd", table.TierID(1, 2, model.DayTypeWeekday))

	// unknown triples resolve open-world to zero, not an error
	assert.Equal(t, int64(0), table.Price(9, 9, model.DayTypeWeekend))
	assert.Equal(t, "", table.TierID(9, 9, model.DayTypeWeekend))
}

func TestTableLaterRowsWin(t *testing.T) {
	table := NewTable([]model.TicketPrice{
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekday, Price: 100, PriceTierID: "old"},
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekday, Price: 200, PriceTierID: "new"},
	})
	assert.Equal(t, int64(200), table.Price(1, 1, model.DayTypeWeekday))
	assert.Equal(t, "new", table.TierID(1, 1, model.DayTypeWeekday))
}

func TestCompute(t *testing.T) {
	table := testTable()

	cases := []struct {
		name   string
		basket Basket
		want   Totals
	}{
		{
			name:   "empty basket",
			basket: Basket{},
			want:   Totals{},
		},
		{
			name: "seats only",
			basket: Basket{
				Seats: []model.Seat{seat(1, 1), seat(2, 2)},
			},
			want: Totals{
				SeatTotal:  210000,
				Subtotal:   210000,
				ServiceVAT: 21000,
				Total:      231000,
			},
		},
		{
			name: "stacked combo and event discounts",
			basket: Basket{
				Seats:          []model.Seat{seat(1, 1), seat(2, 2)},
				Combos:         []model.Combo{{ID: 7, TotalPrice: 50000}},
				ComboDiscounts: map[uint64]int{7: 10},
				EventPercent:   15,
			},
			want: Totals{
				SeatTotal:       210000,
				ComboTotal:      50000,
				Subtotal:        260000,
				DiscountPercent: 25,
				DiscountAmount:  65000,
				ServiceVAT:      19500,
				Total:           214500,
			},
		},
		{
			name: "items multiply by quantity",
			basket: Basket{
				Items: []ItemQuantity{
					{Item: model.MenuItem{ID: 1, Price: 30000}, Quantity: 2},
					{Item: model.MenuItem{ID: 2, Price: 15000}, Quantity: 1},
				},
			},
			want: Totals{
				ItemTotal:  75000,
				Subtotal:   75000,
				ServiceVAT: 7500,
				Total:      82500,
			},
		},
		{
			name: "missing price row counts as zero",
			basket: Basket{
				Seats: []model.Seat{seat(1, 1), seat(3, 99)},
			},
			want: Totals{
				SeatTotal:  90000,
				Subtotal:   90000,
				ServiceVAT: 9000,
				Total:      99000,
			},
		},
		{
			name: "discounts stack additively across all sources",
			basket: Basket{
				Combos:         []model.Combo{{ID: 1, TotalPrice: 40000}, {ID: 2, TotalPrice: 60000}},
				ComboDiscounts: map[uint64]int{1: 10, 2: 5},
				EventPercent:   15,
			},
			want: Totals{
				ComboTotal:      100000,
				Subtotal:        100000,
				DiscountPercent: 30,
				DiscountAmount:  30000,
				ServiceVAT:      7000,
				Total:           77000,
			},
		},
		{
			name: "stacking above 100 percent is not clamped",
			basket: Basket{
				Combos:         []model.Combo{{ID: 1, TotalPrice: 1000}},
				ComboDiscounts: map[uint64]int{1: 70},
				EventPercent:   50,
			},
			want: Totals{
				ComboTotal:      1000,
				Subtotal:        1000,
				DiscountPercent: 120,
				DiscountAmount:  1200,
				ServiceVAT:      -20,
				Total:           -220,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.basket, table, 1, model.DayTypeWeekday)
			require.Equal(t, tc.want, got)
			// conservation: the steps always reconcile
			assert.Equal(t, got.Subtotal-got.DiscountAmount+got.ServiceVAT, got.Total)
		})
	}
}

func TestComputeRoundsHalfUpAtEachStep(t *testing.T) {
	table := NewTable([]model.TicketPrice{
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekday, Price: 1005, PriceTierID: "t"},
	})

	got := Compute(Basket{
		Seats:        []model.Seat{seat(1, 1)},
		EventPercent: 10,
	}, table, 1, model.DayTypeWeekday)

	// 10% of 1005 is 100.5, rounded half up to 101
	assert.Equal(t, int64(101), got.DiscountAmount)
	// 10% of 904 is 90.4, rounded down
	assert.Equal(t, int64(90), got.ServiceVAT)
	assert.Equal(t, int64(994), got.Total)
}

func TestComputeWeekendUsesOwnPrices(t *testing.T) {
	table := testTable()

	weekday := Compute(Basket{Seats: []model.Seat{seat(1, 1)}}, table, 1, model.DayTypeWeekday)
	weekend := Compute(Basket{Seats: []model.Seat{seat(1, 1)}}, table, 1, model.DayTypeWeekend)

	assert.Equal(t, int64(90000), weekday.SeatTotal)
	assert.Equal(t, int64(110000), weekend.SeatTotal)
}
