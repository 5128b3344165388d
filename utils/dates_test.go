package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2025, 1, 10, 18, 45, 12, 99, loc)

	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, loc), got)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 10, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 1, 10, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 13, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}
