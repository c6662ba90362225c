package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	start := time.Date(2026, time.March, 10, 18, 30, 0, 0, loc)
	end := time.Date(2026, time.March, 12, 8, 0, 0, 0, loc)

	from, to := DayRange(start, end)
	assert.Equal(t, time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.March, 13, 3, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.UTC, from.Location())

	// Invertido: mismo resultado
	from2, to2 := DayRange(end, start)
	assert.Equal(t, from, from2)
	assert.Equal(t, to, to2)

	// Un solo día
	from, to = DayRange(start, start)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
