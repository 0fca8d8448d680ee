package model

import "fmt"

// ShowtimeKey scopes all reservation state to a single screening
// instance: one hall, on one date, at one time slot.  Two bookings for
// the same hall at different slots are fully independent, even on the
// same day.  The key is a comparable value type and is used directly
// as the ledger's sharding key.
//
// Fields:
//  HallID - the hall being screened in.
//  Date   - calendar date in "2006-01-02" form.
//  Slot   - time-slot label, e.g. "10:00 AM".
type ShowtimeKey struct {
	HallID uint64 `json:"hall_id"`
	Date   string `json:"date"`
	Slot   string `json:"slot"`
}

// ShowtimeKeyOf derives the key for a screening.  It is a pure
// function: equal inputs always produce equal keys.
func ShowtimeKeyOf(hallID uint64, date, slot string) ShowtimeKey {
	return ShowtimeKey{HallID: hallID, Date: date, Slot: slot}
}

// String renders a stable, human-readable form of the key, used in log
// lines and in the durable store.
func (k ShowtimeKey) String() string {
	return fmt.Sprintf("hall:%d|%s|%s", k.HallID, k.Date, k.Slot)
}

// Showtime pairs a screening's key with the movie scheduled for it.
// Produced by the schedule when enumerating a hall's screenings.
type Showtime struct {
	Key     ShowtimeKey `json:"key"`
	MovieID uint64      `json:"movie_id"`
}
