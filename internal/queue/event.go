// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// BookingConfirmedEvent is published after a seat reservation has been
// confirmed and persisted.  It carries enough context for downstream
// consumers (booking log, notifications, analytics) without a trip
// back to the catalog or the ledger.
type BookingConfirmedEvent struct {
	UserID           uint64   `json:"user_id"`
	HallID           uint64   `json:"hall_id"`
	HallType         string   `json:"hall_type"`
	Date             string   `json:"date"`
	Slot             string   `json:"slot"`
	Seats            []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	PaymentRef       string   `json:"payment_ref"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
