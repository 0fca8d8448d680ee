// Package engine implements the reservation engine: the operations
// layer that composes the ledger's atomic primitives into the seat
// booking lifecycle.  Per (showtime, seat) the states move
// Available -> Held -> Booked, with Held -> Available as the only
// backward edge; Booked is terminal here (no refund path).
package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/arminveh/cinema-box-office/internal/catalog"
	"github.com/arminveh/cinema-box-office/internal/ledger"
	"github.com/arminveh/cinema-box-office/internal/model"
	"github.com/arminveh/cinema-box-office/internal/store"
)

// Engine validates requests against the hall catalog, drives the
// ledger, and writes confirmed bookings through to the durable store.
// It is safe for concurrent use; all shared mutable state lives in the
// ledger, except the per-showtime confirm locks that serialise the
// booked-set snapshot with its durable write.
type Engine struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	store   store.BookedStore

	mu       sync.Mutex
	confirms map[model.ShowtimeKey]*sync.Mutex
}

// New constructs an engine.  All dependencies must be non-nil.
func New(cat *catalog.Catalog, led *ledger.Ledger, st store.BookedStore) *Engine {
	if cat == nil || led == nil || st == nil {
		panic("nil dependency passed to engine.New")
	}
	return &Engine{
		catalog:  cat,
		ledger:   led,
		store:    st,
		confirms: make(map[model.ShowtimeKey]*sync.Mutex),
	}
}

// confirmLock returns the confirm mutex of one showtime, creating it
// lazily.  Like ledger entries, locks live for the process lifetime.
func (e *Engine) confirmLock(key model.ShowtimeKey) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.confirms[key]
	if !ok {
		m = &sync.Mutex{}
		e.confirms[key] = m
	}
	return m
}

// Restore loads the persisted booked sets into the ledger.  Call once
// at startup, before the engine serves requests.  The held state
// always starts empty on a fresh process; holds are never persisted.
func (e *Engine) Restore() error {
	booked, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("restore booked seats: %w", err)
	}
	e.ledger.RestoreBooked(booked)
	return nil
}

// validate checks every address against the hall's grid and returns
// the hall.  The whole request is rejected on the first invalid
// address; the ledger is never touched.
func (e *Engine) validate(key model.ShowtimeKey, addrs []model.SeatAddress) (*model.Hall, error) {
	hall, err := e.catalog.HallByID(key.HallID)
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		if !e.catalog.IsInGrid(hall, a) {
			return nil, fmt.Errorf("%w: %s outside hall %d grid (%dx%d)",
				model.ErrInvalidSeat, a, hall.ID, hall.Rows, hall.Cols)
		}
	}
	return hall, nil
}

// dedupe drops repeated addresses while preserving request order.  A
// request naming the same seat twice is one claim, not a conflict with
// itself.
func dedupe(addrs []model.SeatAddress) []model.SeatAddress {
	seen := make(map[model.SeatAddress]struct{}, len(addrs))
	out := make([]model.SeatAddress, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// ReserveSeats atomically holds the requested seats for one showtime.
// On success every seat transitions Available -> Held and the held
// seats come back priced by the hall type, for the caller to present
// and charge.  On conflict a SeatUnavailableError names exactly the
// contested seats and no seat from the request is left held.
func (e *Engine) ReserveSeats(key model.ShowtimeKey, addrs []model.SeatAddress) ([]model.Seat, error) {
	addrs = dedupe(addrs)
	if len(addrs) == 0 {
		return nil, ErrNoSeats
	}
	hall, err := e.validate(key, addrs)
	if err != nil {
		return nil, err
	}
	if conflicts := e.ledger.TryHoldAll(key, addrs); len(conflicts) > 0 {
		return nil, &SeatUnavailableError{Key: key, Seats: conflicts}
	}
	seats := make([]model.Seat, 0, len(addrs))
	for _, a := range addrs {
		seats = append(seats, model.Seat{
			Address:    a,
			Label:      a.String(),
			Status:     model.SeatHeld,
			PriceCents: hall.Type.PriceCents(),
			Hall:       hall,
		})
	}
	return seats, nil
}

// ConfirmCartReservation moves the given seats Held -> Booked and
// writes the showtime's updated booked set through to durable storage.
// Seats that are not currently held are skipped, so a retried confirm
// is safe.  A store failure is logged and does not roll back the
// in-memory transition: for the running process the ledger is
// authoritative and durability is at-least-once.
//
// The transition, the booked-set snapshot and the durable write run
// under the showtime's confirm lock.  Without it, two confirms of the
// same showtime can interleave so that a stale snapshot overwrites a
// newer one and silently drops a confirmed seat from storage.
func (e *Engine) ConfirmCartReservation(key model.ShowtimeKey, addrs []model.SeatAddress) error {
	addrs = dedupe(addrs)
	if len(addrs) == 0 {
		return ErrNoSeats
	}
	if _, err := e.validate(key, addrs); err != nil {
		return err
	}

	lock := e.confirmLock(key)
	lock.Lock()
	defer lock.Unlock()

	e.ledger.MoveHeldToBooked(key, addrs)
	booked := e.ledger.BookedSeats(key)
	if err := e.store.SaveBooked(key, booked); err != nil {
		log.Printf("engine: persist booked seats for %s failed: %v", key, err)
	}
	return nil
}

// CancelCartReservation moves the given seats Held -> Available.  No
// durable state changes; cancelling an already-released seat is a
// no-op, so retried cancels are safe.
func (e *Engine) CancelCartReservation(key model.ShowtimeKey, addrs []model.SeatAddress) error {
	addrs = dedupe(addrs)
	if len(addrs) == 0 {
		return ErrNoSeats
	}
	if _, err := e.validate(key, addrs); err != nil {
		return err
	}
	e.ledger.ReleaseHeld(key, addrs)
	return nil
}

// ClearAllCartReservations releases every hold across every showtime.
// Booked seats are untouched.
func (e *Engine) ClearAllCartReservations() {
	e.ledger.ReleaseAllHeld()
}

// FindSeat returns the derived view of one seat, or an error when the
// hall is unknown or the address is outside its grid.
func (e *Engine) FindSeat(key model.ShowtimeKey, addr model.SeatAddress) (*model.Seat, error) {
	hall, err := e.validate(key, []model.SeatAddress{addr})
	if err != nil {
		return nil, err
	}
	return &model.Seat{
		Address:    addr,
		Label:      addr.String(),
		Status:     e.ledger.Status(key, addr),
		PriceCents: hall.Type.PriceCents(),
		Hall:       hall,
	}, nil
}

// FindSeatsByShowtime enumerates the full hall grid for a showtime and
// returns one seat view per cell, row by row, with the current derived
// status.  Callers use it to render a seat map.
func (e *Engine) FindSeatsByShowtime(key model.ShowtimeKey) ([]model.Seat, error) {
	hall, err := e.catalog.HallByID(key.HallID)
	if err != nil {
		return nil, err
	}
	price := hall.Type.PriceCents()
	seats := make([]model.Seat, 0, hall.SeatCount())
	for r := uint32(0); r < hall.Rows; r++ {
		for c := uint32(1); c <= hall.Cols; c++ {
			addr := model.SeatAddress{Row: byte('A' + r), Col: c}
			seats = append(seats, model.Seat{
				Address:    addr,
				Label:      addr.String(),
				Status:     e.ledger.Status(key, addr),
				PriceCents: price,
				Hall:       hall,
			})
		}
	}
	return seats, nil
}
