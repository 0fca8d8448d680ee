// Package ledger is the mutable state store of the reservation core.
// For every showtime it tracks, per seat, one of three states:
// available, held or booked.  Holds live only in this process; the
// booked set is mirrored to durable storage by the engine.
//
// The ledger exposes lock-protected primitives and nothing else; the
// conflict policy (validation, pricing, persistence) is composed on
// top of it by the reservation engine.
package ledger

import (
	"sync"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// entry holds the two per-showtime seat sets.  The entry mutex guards
// both sets; every primitive that touches an entry holds it for the
// whole check-then-set, which is what makes TryHoldAll atomic with
// respect to every other mutation on the same showtime.
//
// Invariant: held and booked are disjoint at all times.
type entry struct {
	mu     sync.Mutex
	held   map[model.SeatAddress]struct{}
	booked map[model.SeatAddress]struct{}
}

// Ledger shards reservation state by ShowtimeKey.  The outer RWMutex
// only guards the key map; seat mutations for different showtimes
// never contend with each other.
type Ledger struct {
	mu      sync.RWMutex
	entries map[model.ShowtimeKey]*entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[model.ShowtimeKey]*entry)}
}

// entryFor returns the entry for a key, creating it lazily on first
// use.  Entries are never removed; they live for the process lifetime.
func (l *Ledger) entryFor(key model.ShowtimeKey) *entry {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if ok {
		return e
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok = l.entries[key]; ok {
		return e
	}
	e = &entry{
		held:   make(map[model.SeatAddress]struct{}),
		booked: make(map[model.SeatAddress]struct{}),
	}
	l.entries[key] = e
	return e
}

// Status reports the current state of one seat under one showtime.
func (l *Ledger) Status(key model.ShowtimeKey, addr model.SeatAddress) model.SeatStatus {
	e := l.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.booked[addr]; ok {
		return model.SeatBooked
	}
	if _, ok := e.held[addr]; ok {
		return model.SeatHeld
	}
	return model.SeatAvailable
}

// TryHoldAll attempts to transition every given address from available
// to held in a single critical section.  Either all of them move, or
// none do.  On failure it returns the addresses that were unavailable
// (already held or booked), sorted; on success it returns nil.
//
// The whole check-then-set runs under the entry lock.  Checking seat
// by seat with the lock released in between would let two callers both
// observe a seat as available before either holds it.
func (l *Ledger) TryHoldAll(key model.ShowtimeKey, addrs []model.SeatAddress) []model.SeatAddress {
	e := l.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	var conflicts []model.SeatAddress
	for _, a := range addrs {
		if _, ok := e.booked[a]; ok {
			conflicts = append(conflicts, a)
			continue
		}
		if _, ok := e.held[a]; ok {
			conflicts = append(conflicts, a)
		}
	}
	if len(conflicts) > 0 {
		model.SortSeatAddresses(conflicts)
		return conflicts
	}
	for _, a := range addrs {
		e.held[a] = struct{}{}
	}
	return nil
}

// MoveHeldToBooked transitions the given addresses from held to
// booked.  Addresses that are not currently held are skipped, so a
// retried confirmation is a safe no-op.  The held/booked disjointness
// holds throughout: each address is removed from held in the same
// critical section that adds it to booked.
func (l *Ledger) MoveHeldToBooked(key model.ShowtimeKey, addrs []model.SeatAddress) {
	e := l.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range addrs {
		if _, ok := e.held[a]; !ok {
			continue
		}
		delete(e.held, a)
		e.booked[a] = struct{}{}
	}
}

// ReleaseHeld transitions the given addresses from held back to
// available.  Addresses that are not held are skipped.
func (l *Ledger) ReleaseHeld(key model.ShowtimeKey, addrs []model.SeatAddress) {
	e := l.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range addrs {
		delete(e.held, a)
	}
}

// ReleaseAllHeld drops every hold across every showtime.  Booked seats
// are untouched.  Used when the whole in-memory hold state must be
// reset.
func (l *Ledger) ReleaseAllHeld() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		e.mu.Lock()
		for a := range e.held {
			delete(e.held, a)
		}
		e.mu.Unlock()
	}
}

// BookedSeats returns the booked set of one showtime, sorted.  Used by
// the engine to build the durable write-through payload.
func (l *Ledger) BookedSeats(key model.ShowtimeKey) []model.SeatAddress {
	e := l.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.SeatAddress, 0, len(e.booked))
	for a := range e.booked {
		out = append(out, a)
	}
	model.SortSeatAddresses(out)
	return out
}

// RestoreBooked repopulates booked sets from durable storage at
// startup.  Restored addresses are dropped from held first so the
// disjointness invariant cannot be violated by a restore; in practice
// restore runs before any holds exist.
func (l *Ledger) RestoreBooked(booked map[model.ShowtimeKey][]model.SeatAddress) {
	for key, addrs := range booked {
		e := l.entryFor(key)
		e.mu.Lock()
		for _, a := range addrs {
			delete(e.held, a)
			e.booked[a] = struct{}{}
		}
		e.mu.Unlock()
	}
}
