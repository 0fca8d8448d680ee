package model

import "time"

// FoodItem is one entry on the concession menu.  The menu is static
// configuration; prices are in cents like everything else.
type FoodItem struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	PriceCents uint32 `json:"price_cents"`
}

// FoodOrderItem is a line of a food order: a menu item and how many of
// it were bought, with the unit price captured at order time.
type FoodOrderItem struct {
	ItemID     uint64 `json:"item_id"`
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint32 `json:"price_cents"`
}

// FoodOrder records a concession purchase.  Orders are persisted in
// the food_orders / food_order_items tables.
//
// Fields:
//  ID         - opaque order identifier (UUID).
//  UserID     - customer who placed the order.
//  Items      - lines of the order.
//  TotalCents - sum of quantity * unit price over all lines.
//  CreatedAt  - when the order was placed (UTC).
type FoodOrder struct {
	ID         string          `json:"id"`
	UserID     uint64          `json:"user_id"`
	Items      []FoodOrderItem `json:"items"`
	TotalCents uint32          `json:"total_cents"`
	CreatedAt  time.Time       `json:"created_at"`
}
