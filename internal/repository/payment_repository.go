package repository

import (
	"context"
	"database/sql"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// PaymentRepo provides access to the payments table.  One row is
// written per confirmed booking, keyed by the payment reference.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create records a payment.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (reference, user_id, hall_id, date, slot, amount_cents, method)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.Reference, p.UserID, p.HallID, p.Date, p.Slot, p.AmountCents, p.Method)
	return err
}

// ListByUser returns a user's payments, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error) {
	const q = `SELECT reference, user_id, hall_id, date, slot, amount_cents, method, created_at
	           FROM payments WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.Reference, &p.UserID, &p.HallID, &p.Date, &p.Slot,
			&p.AmountCents, &p.Method, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
