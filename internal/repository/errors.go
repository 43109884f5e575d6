// Package repository defines the MySQL persistence layer: the catalog
// loaders (combos, items, events, discounts, prices), showtime and
// seat reference data, and the order store the booking engine submits
// payments through.  Sentinel errors declared here let handlers
// distinguish failure scenarios with errors.Is.
package repository

import "errors"

// ErrShowtimeNotFound is returned when a showtime id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrOrderNotFound is returned when an order id does not exist or the
// order does not belong to the requesting user.
var ErrOrderNotFound = errors.New("order not found")

// ErrComboNotFound is returned when a combo id does not exist.
var ErrComboNotFound = errors.New("combo not found")

// ErrMenuItemNotFound is returned when a menu item id does not exist
// or the item is no longer sold.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrEventNotFound is returned when a promotional event id does not exist.
var ErrEventNotFound = errors.New("event not found")
