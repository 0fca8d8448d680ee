package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arminveh/cinema-box-office/internal/model"
)

func TestDefaults(t *testing.T) {
	c := Defaults()

	std, err := c.HallByID(1)
	require.NoError(t, err)
	assert.Equal(t, model.HallStandard, std.Type)
	assert.Equal(t, uint32(5), std.Rows)
	assert.Equal(t, uint32(10), std.Cols)
	assert.Equal(t, uint32(1200), std.Type.PriceCents())

	lounge, err := c.HallByID(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(2500), lounge.Type.PriceCents())
	assert.Equal(t, uint32(18), lounge.SeatCount())

	assert.Len(t, c.Halls(), 3)
	assert.Len(t, c.Movies(), 3)
	assert.Len(t, c.Menu(), 5)
}

func TestNewRejectsBadRecords(t *testing.T) {
	_, err := New([]model.Hall{{ID: 1, Type: "IMAX"}}, nil, nil)
	assert.ErrorContains(t, err, "unknown type")

	_, err = New([]model.Hall{
		{ID: 1, Type: model.HallStandard},
		{ID: 1, Type: model.HallPremium},
	}, nil, nil)
	assert.ErrorContains(t, err, "duplicate hall id")

	_, err = New([]model.Hall{{ID: 1, Type: model.HallStandard, Rows: 27, Cols: 4}}, nil, nil)
	assert.ErrorContains(t, err, "A-Z")

	_, err = New(nil, []model.Movie{{ID: 2}, {ID: 2}}, nil)
	assert.ErrorContains(t, err, "duplicate movie id")
}

func TestHallsByType(t *testing.T) {
	c := Defaults()
	assert.Len(t, c.HallsByType(model.HallPremium), 1)
	assert.Empty(t, c.HallsByType("IMAX"), "unknown type is empty, not an error")
}

func TestIsInGrid(t *testing.T) {
	c := Defaults()
	h, err := c.HallByID(1) // 5x10
	require.NoError(t, err)

	in := func(label string) bool {
		a, err := model.ParseSeatAddress(label)
		require.NoError(t, err)
		return c.IsInGrid(h, a)
	}
	assert.True(t, in("A1"))
	assert.True(t, in("E10"), "last row, last column")
	assert.False(t, in("F1"), "row beyond grid")
	assert.False(t, in("A11"), "column beyond grid")
	assert.False(t, in("Z99"))
}

func TestShowtimes(t *testing.T) {
	c := Defaults()

	sts, err := c.Showtimes(2, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, sts, len(TimeSlots))
	for i, st := range sts {
		assert.Equal(t, uint64(2), st.Key.HallID)
		assert.Equal(t, "2026-09-01", st.Key.Date)
		assert.Equal(t, TimeSlots[i], st.Key.Slot)
		assert.NotZero(t, st.MovieID)
	}

	_, err = c.Showtimes(99, "2026-09-01")
	assert.ErrorIs(t, err, ErrHallNotFound)

	_, err = c.Showtimes(1, "01-09-2026")
	assert.ErrorContains(t, err, "invalid date")
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("7:00 PM"))
	assert.False(t, ValidSlot("8:30 PM"))
	assert.False(t, ValidSlot(""))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	blob := `{
	  "halls":  [{"id": 7, "type": "PREMIUM"}],
	  "movies": [{"id": 1, "title": "The Last Reel"}],
	  "menu":   [{"id": 1, "name": "Popcorn (large)", "price_cents": 650}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	h, err := c.HallByID(7)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), h.Rows, "zero grid falls back to the type default")
	assert.Equal(t, uint32(8), h.Cols)

	it, ok := c.MenuItem(1)
	require.True(t, ok)
	assert.Equal(t, uint32(650), it.PriceCents)
	_, ok = c.MenuItem(42)
	assert.False(t, ok)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
