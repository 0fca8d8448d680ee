package model

import "time"

// Payment records the outcome of a successful charge for a seat
// booking.  The reservation engine has no payment logic of its own;
// the booking workflow records the payment and then confirms the held
// seats.  Payments are persisted in the payments table.
//
// Fields:
//  Reference   - opaque payment reference (UUID) returned to the client.
//  UserID      - paying customer.
//  HallID      - hall of the booked showtime.
//  Date, Slot  - showtime coordinates the payment belongs to.
//  AmountCents - charged amount.
//  Method      - payment method label, e.g. "CARD" or "CASH".
//  CreatedAt   - when the payment was recorded (UTC).
type Payment struct {
	Reference   string    `json:"reference"`
	UserID      uint64    `json:"user_id"`
	HallID      uint64    `json:"hall_id"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	AmountCents uint32    `json:"amount_cents"`
	Method      string    `json:"method"`
	CreatedAt   time.Time `json:"created_at"`
}
