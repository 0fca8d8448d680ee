// Package store provides durable storage for the booked seat sets.
// Only confirmed bookings are written; cart holds never touch the
// store, so a crash loses in-flight holds and nothing else.
package store

import "github.com/arminveh/cinema-box-office/internal/model"

// BookedStore is the persistence adapter consumed by the reservation
// engine.  SaveBooked writes the full booked set of one showtime after
// every confirm (write-through); Load returns all booked sets at
// startup.  Implementations must serialize their write path
// themselves, independent of which showtime triggered the write.
type BookedStore interface {
	Load() (map[model.ShowtimeKey][]model.SeatAddress, error)
	SaveBooked(key model.ShowtimeKey, seats []model.SeatAddress) error
}
