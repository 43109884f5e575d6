package model

import "time"

// Combo is a bundled concession (e.g. two drinks and a popcorn) sold
// at a single total price.  A combo may be tied to a promotional event
// and thereby restricted to that event's movies; such "event combos"
// can also carry the event's discount percentage into the stacking
// computation.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name.
//  TotalPrice – price of the whole bundle.
//  EventID    – optional promotional event this combo belongs to.
//  IsActive   – whether the combo is currently sold.
type Combo struct {
	ID         uint64    // combos.id
	Name       string    // combos.name
	TotalPrice int64     // combos.total_price
	EventID    *uint64   // combos.event_id (nullable)
	IsActive   bool      // combos.is_active
	CreatedAt  time.Time // combos.created_at
	UpdatedAt  time.Time // combos.updated_at
}

// ComboItem is one component of a combo with its per-bundle quantity.
type ComboItem struct {
	Item     MenuItem // joined menu item
	Quantity int      // combo_items.quantity
}

// ComboDetail is the full combo record used at selection time: the
// combo itself, its component items, the movies it is restricted to
// (empty means unrestricted) and the linked event with its discount.
// Details are fetched lazily and cached per combo id by the booking
// session so repeated toggles never refetch.
type ComboDetail struct {
	Combo          Combo
	Items          []ComboItem
	LinkedMovieIDs []uint64
	LinkedEvent    *Event
}

// AllowsMovie reports whether the combo may be sold for the given
// movie.  Combos without a movie restriction allow every movie.
func (d ComboDetail) AllowsMovie(movieID uint64) bool {
	if len(d.LinkedMovieIDs) == 0 {
		return true
	}
	for _, id := range d.LinkedMovieIDs {
		if id == movieID {
			return true
		}
	}
	return false
}

// StackPercent returns the discount percentage this combo contributes
// through its linked event, zero when there is no active discount.
func (d ComboDetail) StackPercent() int {
	if d.LinkedEvent == nil {
		return 0
	}
	return d.LinkedEvent.ActiveDiscountPercent()
}
