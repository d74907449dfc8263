package hotel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hotel-engine/hotel"
)

func TestDate_DayOfYear(t *testing.T) {
	assert.Equal(t, 1, hotel.NewDate(2026, time.January, 1).DayOfYear())
	assert.Equal(t, 32, hotel.NewDate(2026, time.February, 1).DayOfYear())
	assert.Equal(t, 365, hotel.NewDate(2026, time.December, 31).DayOfYear())
	// Leap year: Dec 31 is ordinal 366, which no free-day set contains.
	assert.Equal(t, 366, hotel.NewDate(2028, time.December, 31).DayOfYear())
}

func TestDate_ComparisonAndArithmetic(t *testing.T) {
	a := hotel.NewDate(2026, time.March, 10)
	b := a.AddDays(5)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(hotel.NewDate(2026, time.March, 10)))
	assert.Equal(t, 15, b.Day())
	assert.True(t, hotel.Date{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestDate_ParseAndFormat(t *testing.T) {
	d, err := hotel.ParseDate("2026-07-04")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, "2026-07-04", d.String())

	_, err = hotel.ParseDate("July 4th")
	assert.Error(t, err)
}

func TestDate_NormalizesClockTime(t *testing.T) {
	// Dates built from a wall-clock time compare equal to the plain date.
	noon := time.Date(2026, time.May, 2, 12, 30, 0, 0, time.UTC)
	assert.True(t, hotel.DateOf(noon).Equal(hotel.NewDate(2026, time.May, 2)))
}
