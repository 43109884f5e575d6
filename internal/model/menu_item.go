package model

import "time"

// MenuItem is a single à-la-carte concession item (drink, snack,
// souvenir) that can be added to an order with a quantity.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name.
//  Price     – unit price.
//  IsActive  – whether the item is currently sold.
type MenuItem struct {
	ID        uint64    // menu_items.id
	Name      string    // menu_items.name
	Price     int64     // menu_items.price
	IsActive  bool      // menu_items.is_active
	CreatedAt time.Time // menu_items.created_at
	UpdatedAt time.Time // menu_items.updated_at
}
