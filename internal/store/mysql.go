package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// MySQLStore persists the booked sets in a booked_seats table:
//
//	CREATE TABLE booked_seats (
//	    hall_id    BIGINT UNSIGNED NOT NULL,
//	    date       CHAR(10)        NOT NULL,
//	    slot       VARCHAR(16)     NOT NULL,
//	    seat_label VARCHAR(4)      NOT NULL,
//	    PRIMARY KEY (hall_id, date, slot, seat_label)
//	);
//
// SaveBooked replaces the showtime's rows inside one transaction.  The
// mutex keeps the write path single-writer regardless of which
// showtime triggered it, matching the FileStore's discipline.
type MySQLStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewMySQLStore returns a store bound to the given database handle.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

const storeOpTimeout = 5 * time.Second

// Load reads every booked seat row and groups them by showtime.
func (s *MySQLStore) Load() (map[model.ShowtimeKey][]model.SeatAddress, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer cancel()

	const q = `SELECT hall_id, date, slot, seat_label FROM booked_seats ORDER BY hall_id, date, slot, seat_label`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.ShowtimeKey][]model.SeatAddress)
	for rows.Next() {
		var hallID uint64
		var date, slot, label string
		if err := rows.Scan(&hallID, &date, &slot, &label); err != nil {
			return nil, err
		}
		addr, err := model.ParseSeatAddress(label)
		if err != nil {
			return nil, err
		}
		key := model.ShowtimeKeyOf(hallID, date, slot)
		out[key] = append(out[key], addr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveBooked replaces all rows of one showtime with the given seats.
func (s *MySQLStore) SaveBooked(key model.ShowtimeKey, seats []model.SeatAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const del = `DELETE FROM booked_seats WHERE hall_id = ? AND date = ? AND slot = ?`
	if _, err := tx.ExecContext(ctx, del, key.HallID, key.Date, key.Slot); err != nil {
		return err
	}
	if len(seats) > 0 {
		query := `INSERT INTO booked_seats (hall_id, date, slot, seat_label) VALUES `
		args := make([]interface{}, 0, len(seats)*4)
		for i, a := range seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, key.HallID, key.Date, key.Slot, a.String())
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
