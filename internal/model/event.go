package model

import "time"

// Discount is a percentage discount rule attached to a promotional
// event.  Only active discounts contribute to pricing.
//
// Fields:
//  ID      – primary key identifier.
//  Percent – discount percentage (0–100 by convention, not enforced).
//  Active  – whether the rule currently applies.
type Discount struct {
	ID      uint64 // discounts.id
	Percent int    // discounts.percent
	Active  bool   // discounts.active
}

// Event is a named promotion tied to a movie.  An event may carry a
// discount rule; events without one are purely informational.  At most
// one event can be selected per booking session, and only the selected
// event's discount contributes its percentage to the total.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the promotion.
//  MovieID   – movie the promotion is attached to (0 means all movies).
//  Discount  – optional discount rule.
//  StartsAt  – first day the promotion runs.
//  EndsAt    – last day the promotion runs.
type Event struct {
	ID       uint64    // events.id
	Name     string    // events.name
	MovieID  uint64    // events.movie_id
	Discount *Discount // joined from discounts, nil when the event has none
	StartsAt time.Time // events.starts_at
	EndsAt   time.Time // events.ends_at
}

// ActiveDiscountPercent returns the percentage this event contributes
// to discount stacking: the discount's percent when present and
// active, zero otherwise.
func (e Event) ActiveDiscountPercent() int {
	if e.Discount != nil && e.Discount.Active {
		return e.Discount.Percent
	}
	return 0
}
