package repository

import (
	"context"
	"database/sql"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// FoodOrderRepo provides access to the food_orders and
// food_order_items tables.
type FoodOrderRepo struct {
	db *sql.DB
}

// NewFoodOrderRepo constructs a FoodOrderRepo with the given DB handle.
func NewFoodOrderRepo(db *sql.DB) *FoodOrderRepo { return &FoodOrderRepo{db: db} }

// Create inserts an order and its lines in one transaction.  The
// caller supplies the order ID (a UUID) and the computed total.
func (r *FoodOrderRepo) Create(ctx context.Context, o *model.FoodOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO food_orders (id, user_id, total_cents) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, o.ID, o.UserID, o.TotalCents); err != nil {
		return err
	}
	if len(o.Items) > 0 {
		query := `INSERT INTO food_order_items (order_id, item_id, name, quantity, price_cents) VALUES `
		args := make([]interface{}, 0, len(o.Items)*5)
		for i, it := range o.Items {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, o.ID, it.ItemID, it.Name, it.Quantity, it.PriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's orders, newest first, with their lines
// populated.
func (r *FoodOrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.FoodOrder, error) {
	const q = `SELECT id, user_id, total_cents, created_at FROM food_orders WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.FoodOrder, 0)
	index := make(map[string]int)
	for rows.Next() {
		var o model.FoodOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = []model.FoodOrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	const itemQ = `SELECT i.order_id, i.item_id, i.name, i.quantity, i.price_cents
	               FROM food_order_items i
	               JOIN food_orders o ON o.id = i.order_id
	               WHERE o.user_id = ?
	               ORDER BY i.order_id, i.item_id`
	irows, err := r.db.QueryContext(ctx, itemQ, userID)
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	for irows.Next() {
		var orderID string
		var it model.FoodOrderItem
		if err := irows.Scan(&orderID, &it.ItemID, &it.Name, &it.Quantity, &it.PriceCents); err != nil {
			return nil, err
		}
		if idx, ok := index[orderID]; ok {
			orders[idx].Items = append(orders[idx].Items, it)
		}
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
