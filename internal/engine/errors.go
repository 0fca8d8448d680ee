package engine

import (
	"errors"
	"strings"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// ErrNoSeats is returned when a reservation request names no seats.
var ErrNoSeats = errors.New("no seats requested")

// SeatUnavailableError reports a hold conflict: one or more requested
// seats were already held or booked when the request reached its
// critical section.  It is an expected, recoverable outcome, distinct
// from invalid input; callers re-prompt with the named seats excluded.
type SeatUnavailableError struct {
	Key   model.ShowtimeKey
	Seats []model.SeatAddress // the contested seats, sorted
}

func (e *SeatUnavailableError) Error() string {
	return "seats unavailable for " + e.Key.String() + ": " +
		strings.Join(model.SeatLabels(e.Seats), ", ")
}

// IsSeatUnavailable reports whether err is a hold conflict and, if so,
// returns the conflicting seats.
func IsSeatUnavailable(err error) ([]model.SeatAddress, bool) {
	var su *SeatUnavailableError
	if errors.As(err, &su) {
		return su.Seats, true
	}
	return nil, false
}
