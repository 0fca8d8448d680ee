package catalog

import (
	"fmt"
	"time"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// TimeSlots is the fixed daily screening schedule.  Every hall runs
// the same five slots; a showtime is addressed by (hall, date, slot).
var TimeSlots = []string{
	"10:00 AM",
	"1:00 PM",
	"4:00 PM",
	"7:00 PM",
	"10:00 PM",
}

const dateLayout = "2006-01-02"

// ValidDate reports whether the date string is a well-formed calendar
// date in "2006-01-02" form.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// ValidSlot reports whether slot is one of the fixed daily time slots.
func ValidSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Showtimes enumerates the screenings of a hall on a date: one
// showtime per time slot.  The movie assignment rotates through the
// catalog so every hall/slot pair maps to a movie deterministically.
// It fails with ErrHallNotFound for an unknown hall and with a plain
// error for a malformed date.
func (c *Catalog) Showtimes(hallID uint64, date string) ([]model.Showtime, error) {
	if _, err := c.HallByID(hallID); err != nil {
		return nil, err
	}
	if !ValidDate(date) {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	out := make([]model.Showtime, 0, len(TimeSlots))
	for i, slot := range TimeSlots {
		st := model.Showtime{Key: model.ShowtimeKeyOf(hallID, date, slot)}
		if n := len(c.movieLst); n > 0 {
			st.MovieID = c.movieLst[(int(hallID)+i)%n].ID
		}
		out = append(out, st)
	}
	return out, nil
}
