package model

// HallType classifies a screening hall.  The type is a closed set and
// carries both the fixed ticket price for every seat in the hall and
// the default grid dimensions used when a hall record does not specify
// its own.
type HallType string

const (
	HallStandard HallType = "STANDARD"
	HallPremium  HallType = "PREMIUM"
	HallLounge   HallType = "LOUNGE"
)

// PriceCents returns the fixed per-seat ticket price for the hall
// type.  Unknown types price as standard.
func (t HallType) PriceCents() uint32 {
	switch t {
	case HallPremium:
		return 1800
	case HallLounge:
		return 2500
	default:
		return 1200
	}
}

// DefaultGrid returns the default (rows, cols) layout for the hall
// type, used when a hall record omits its dimensions.
func (t HallType) DefaultGrid() (uint32, uint32) {
	switch t {
	case HallPremium:
		return 4, 8
	case HallLounge:
		return 3, 6
	default:
		return 5, 10
	}
}

// Valid reports whether t is one of the known hall types.
func (t HallType) Valid() bool {
	switch t {
	case HallStandard, HallPremium, HallLounge:
		return true
	}
	return false
}

// Hall describes a single screening hall.  Halls are loaded once at
// startup by the hall catalog and are immutable afterwards; every Seat
// and ShowtimeKey references a hall by its ID rather than copying it.
//
// Fields:
//  ID   - integer identifier, unique across the catalog.
//  Type - hall class; determines seat price and default grid.
//  Rows - number of seating rows (letters A.. upward).
//  Cols - number of seats per row.
type Hall struct {
	ID   uint64   `json:"id"`
	Type HallType `json:"type"`
	Rows uint32   `json:"rows"`
	Cols uint32   `json:"cols"`
}

// SeatCount returns the total number of seats in the hall grid.
func (h *Hall) SeatCount() uint32 { return h.Rows * h.Cols }
