package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatAddress(t *testing.T) {
	a, err := ParseSeatAddress("B7")
	require.NoError(t, err)
	assert.Equal(t, SeatAddress{Row: 'B', Col: 7}, a)
	assert.Equal(t, "B7", a.String())

	a, err = ParseSeatAddress("c12")
	require.NoError(t, err)
	assert.Equal(t, SeatAddress{Row: 'C', Col: 12}, a, "lowercase row is normalised")

	for _, bad := range []string{"", "A", "7", "A0", "1A", "Z-1", "AA", "!3"} {
		_, err := ParseSeatAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidSeat, "input %q", bad)
	}
}

func TestNewSeatAddressBounds(t *testing.T) {
	_, err := NewSeatAddress('@', 1)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = NewSeatAddress('A', 0)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	a, err := NewSeatAddress('Z', 99)
	require.NoError(t, err)
	assert.Equal(t, "Z99", a.String())
}

func TestSortSeatAddresses(t *testing.T) {
	addrs := []SeatAddress{
		{Row: 'B', Col: 1},
		{Row: 'A', Col: 10},
		{Row: 'A', Col: 2},
		{Row: 'C', Col: 5},
	}
	SortSeatAddresses(addrs)
	assert.Equal(t, []string{"A2", "A10", "B1", "C5"}, SeatLabels(addrs),
		"row first, then numeric column")
}
