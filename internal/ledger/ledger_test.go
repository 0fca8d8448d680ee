package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arminveh/cinema-box-office/internal/model"
)

func seat(label string) model.SeatAddress {
	a, err := model.ParseSeatAddress(label)
	if err != nil {
		panic(err)
	}
	return a
}

func seats(labels ...string) []model.SeatAddress {
	out := make([]model.SeatAddress, 0, len(labels))
	for _, l := range labels {
		out = append(out, seat(l))
	}
	return out
}

var night = model.ShowtimeKey{HallID: 1, Date: "2026-09-01", Slot: "7:00 PM"}

func TestHoldConfirmLifecycle(t *testing.T) {
	l := New()

	require.Nil(t, l.TryHoldAll(night, seats("A1", "A2")))
	assert.Equal(t, model.SeatHeld, l.Status(night, seat("A1")))
	assert.Equal(t, model.SeatHeld, l.Status(night, seat("A2")))
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("A3")))

	l.MoveHeldToBooked(night, seats("A1", "A2"))
	assert.Equal(t, model.SeatBooked, l.Status(night, seat("A1")))
	assert.Equal(t, model.SeatBooked, l.Status(night, seat("A2")))
	assert.Equal(t, []string{"A1", "A2"}, model.SeatLabels(l.BookedSeats(night)))
}

func TestTryHoldAllIsAllOrNothing(t *testing.T) {
	l := New()
	require.Nil(t, l.TryHoldAll(night, seats("B2")))

	// B1 and B3 are free, but the batch contains B2 which is not.
	conflicts := l.TryHoldAll(night, seats("B1", "B2", "B3"))
	require.Equal(t, []string{"B2"}, model.SeatLabels(conflicts))

	// Nothing from the failed batch may be left held.
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("B1")))
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("B3")))
}

func TestTryHoldAllReportsEveryConflictSorted(t *testing.T) {
	l := New()
	require.Nil(t, l.TryHoldAll(night, seats("C3", "C1")))
	l.MoveHeldToBooked(night, seats("C1"))

	conflicts := l.TryHoldAll(night, seats("C3", "C2", "C1"))
	assert.Equal(t, []string{"C1", "C3"}, model.SeatLabels(conflicts),
		"held and booked conflicts are both named, in seat order")
}

func TestReleaseHeld(t *testing.T) {
	l := New()
	require.Nil(t, l.TryHoldAll(night, seats("D1", "D2")))

	l.ReleaseHeld(night, seats("D1"))
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("D1")))
	assert.Equal(t, model.SeatHeld, l.Status(night, seat("D2")))

	// Releasing a seat that is not held is a no-op.
	l.ReleaseHeld(night, seats("D1", "D9"))
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("D1")))
}

func TestMoveHeldToBookedSkipsUnheld(t *testing.T) {
	l := New()
	require.Nil(t, l.TryHoldAll(night, seats("E1")))

	l.MoveHeldToBooked(night, seats("E1", "E2"))
	assert.Equal(t, model.SeatBooked, l.Status(night, seat("E1")))
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("E2")),
		"a seat never held cannot be booked through confirm")

	// Retried confirm is a no-op.
	l.MoveHeldToBooked(night, seats("E1"))
	assert.Equal(t, []string{"E1"}, model.SeatLabels(l.BookedSeats(night)))
}

func TestShowtimesAreIndependent(t *testing.T) {
	l := New()
	matinee := model.ShowtimeKey{HallID: 1, Date: "2026-09-01", Slot: "10:00 AM"}

	require.Nil(t, l.TryHoldAll(night, seats("A1")))
	require.Nil(t, l.TryHoldAll(matinee, seats("A1")),
		"the same physical seat is free under a different showtime")
}

func TestReleaseAllHeld(t *testing.T) {
	l := New()
	matinee := model.ShowtimeKey{HallID: 2, Date: "2026-09-02", Slot: "1:00 PM"}
	require.Nil(t, l.TryHoldAll(night, seats("A1", "A2")))
	require.Nil(t, l.TryHoldAll(matinee, seats("B1")))
	l.MoveHeldToBooked(night, seats("A1"))

	l.ReleaseAllHeld()

	assert.Equal(t, model.SeatBooked, l.Status(night, seat("A1")), "booked seats survive")
	assert.Equal(t, model.SeatAvailable, l.Status(night, seat("A2")))
	assert.Equal(t, model.SeatAvailable, l.Status(matinee, seat("B1")))
}

func TestRestoreBooked(t *testing.T) {
	l := New()
	l.RestoreBooked(map[model.ShowtimeKey][]model.SeatAddress{
		night: seats("F5", "F6"),
	})
	assert.Equal(t, model.SeatBooked, l.Status(night, seat("F5")))
	conflicts := l.TryHoldAll(night, seats("F5"))
	assert.Equal(t, []string{"F5"}, model.SeatLabels(conflicts))
}

// Two overlapping batches racing for the same seat: exactly one caller
// may win it, never both.
func TestConcurrentHoldsSingleWinner(t *testing.T) {
	l := New()
	const attempts = 200

	for i := 0; i < attempts; i++ {
		key := model.ShowtimeKey{HallID: 3, Date: "2026-09-03", Slot: "4:00 PM"}
		var wg sync.WaitGroup
		wins := make([]bool, 2)
		batches := [][]model.SeatAddress{seats("C1", "C2"), seats("C2", "C3")}
		for n := 0; n < 2; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				wins[n] = l.TryHoldAll(key, batches[n]) == nil
			}(n)
		}
		wg.Wait()

		require.False(t, wins[0] && wins[1], "both batches claimed C2")
		require.True(t, wins[0] || wins[1], "someone must win when all seats start free")
		l.ReleaseAllHeld()
	}
}

// Hammer one showtime from many goroutines, then check that no seat
// ended up double-granted: total successful claims per seat is one.
func TestConcurrentHoldStress(t *testing.T) {
	l := New()
	key := model.ShowtimeKey{HallID: 4, Date: "2026-09-04", Slot: "10:00 PM"}
	target := seats("A1")

	const goroutines = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryHoldAll(key, target) == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}
