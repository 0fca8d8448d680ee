package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// SeatStatus describes the reservation state of a seat for one
// showtime.  A seat is AVAILABLE until someone holds it during
// checkout, HELD while an in-flight cart claims it, and BOOKED once
// the reservation has been confirmed and persisted.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE" // nobody holds or has booked the seat
	SeatHeld      SeatStatus = "HELD"      // temporarily claimed by a cart
	SeatBooked    SeatStatus = "BOOKED"    // durably confirmed
)

// ErrInvalidSeat is returned when a seat address cannot be constructed
// or parsed, or when an address falls outside a hall's seat grid.
var ErrInvalidSeat = errors.New("invalid seat address")

// SeatAddress identifies a single physical seat inside a hall by its
// row letter and 1-based column number.  It is a value type: two
// addresses with the same row and column are equal, and it may be used
// directly as a map key.
//
// Fields:
//  Row - row letter, 'A' through 'Z'.
//  Col - seat number within the row, starting at 1.
type SeatAddress struct {
	Row byte   // 'A'..'Z'
	Col uint32 // 1-based column
}

// NewSeatAddress validates and builds a SeatAddress.  The row must be a
// capital letter A..Z and the column must be positive; anything else
// fails with ErrInvalidSeat.  Grid bounds of a concrete hall are
// checked separately by the hall catalog.
func NewSeatAddress(row byte, col uint32) (SeatAddress, error) {
	if row < 'A' || row > 'Z' {
		return SeatAddress{}, fmt.Errorf("%w: row %q outside A-Z", ErrInvalidSeat, string(row))
	}
	if col < 1 {
		return SeatAddress{}, fmt.Errorf("%w: column must be >= 1", ErrInvalidSeat)
	}
	return SeatAddress{Row: row, Col: col}, nil
}

// ParseSeatAddress parses the canonical label form, e.g. "A1" or "C12".
// A lowercase row letter is accepted and normalised to upper case.
func ParseSeatAddress(s string) (SeatAddress, error) {
	if len(s) < 2 {
		return SeatAddress{}, fmt.Errorf("%w: %q", ErrInvalidSeat, s)
	}
	row := s[0]
	if row >= 'a' && row <= 'z' {
		row -= 'a' - 'A'
	}
	n, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil || n == 0 {
		return SeatAddress{}, fmt.Errorf("%w: %q", ErrInvalidSeat, s)
	}
	return NewSeatAddress(row, uint32(n))
}

// String renders the canonical label, e.g. "B7".
func (a SeatAddress) String() string {
	return string(a.Row) + strconv.FormatUint(uint64(a.Col), 10)
}

// Less orders addresses by row first, then column.  Used to keep seat
// lists deterministic in responses and in the persisted booked set.
func (a SeatAddress) Less(b SeatAddress) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// SortSeatAddresses sorts the slice in place by (row, column).
func SortSeatAddresses(addrs []SeatAddress) {
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
}

// SeatLabels converts a list of addresses to their label form, in the
// order given.
func SeatLabels(addrs []SeatAddress) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}

// Seat is the derived view of a single seat for one showtime.  It is
// produced on demand by the reservation engine and never stored; the
// status comes from the ledger and the price from the owning hall's
// type.
type Seat struct {
	Address    SeatAddress `json:"address"`
	Label      string      `json:"label"`
	Status     SeatStatus  `json:"status"`
	PriceCents uint32      `json:"price_cents"`
	Hall       *Hall       `json:"-"`
}
