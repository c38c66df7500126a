package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-01-06 is a Monday, 2025-01-04 a Saturday, 2025-01-05 a Sunday.
func istTime(t *testing.T, day, hour, min, sec int) time.Time {
	t.Helper()
	return time.Date(2025, 1, day, hour, min, sec, 0, ist)
}

func TestIsOpen_Weekdays(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"monday mid-session", istTime(t, 6, 11, 0, 0), true},
		{"monday open boundary", istTime(t, 6, 9, 15, 0), true},
		{"monday close boundary", istTime(t, 6, 15, 30, 0), true},
		{"monday seconds past close", istTime(t, 6, 15, 30, 30), false},
		{"monday just before open", istTime(t, 6, 9, 14, 59), false},
		{"monday just after close", istTime(t, 6, 15, 31, 0), false},
		{"monday early morning", istTime(t, 6, 6, 0, 0), false},
		{"friday evening", istTime(t, 10, 20, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, IsOpen(tt.at))
		})
	}
}

func TestIsOpen_Weekend(t *testing.T) {
	// Weekend days stay closed even inside the trading window.
	assert.False(t, IsOpen(istTime(t, 4, 11, 0, 0)), "saturday")
	assert.False(t, IsOpen(istTime(t, 5, 11, 0, 0)), "sunday")
}

func TestIsOpen_ConvertsToIST(t *testing.T) {
	// 06:00 UTC on a weekday is 11:30 IST, inside the window.
	utc := time.Date(2025, 1, 6, 6, 0, 0, 0, time.UTC)
	assert.True(t, IsOpen(utc))

	// 11:00 UTC is 16:30 IST, after close.
	assert.False(t, IsOpen(time.Date(2025, 1, 6, 11, 0, 0, 0, time.UTC)))
}

func TestOrderVariety_MatchesIsOpen(t *testing.T) {
	instants := []time.Time{
		istTime(t, 6, 9, 15, 0),
		istTime(t, 6, 15, 30, 0),
		istTime(t, 6, 15, 30, 30),
		istTime(t, 6, 15, 31, 0),
		istTime(t, 4, 12, 0, 0),
		istTime(t, 7, 2, 0, 0),
	}

	for _, at := range instants {
		if IsOpen(at) {
			assert.Equal(t, VarietyRegular, OrderVariety(at))
		} else {
			assert.Equal(t, VarietyAMO, OrderVariety(at))
		}
	}
}

func TestStatusAt(t *testing.T) {
	open := StatusAt(istTime(t, 6, 11, 0, 0))
	assert.True(t, open.IsOpen)
	assert.Equal(t, "OPEN", open.Label)
	assert.Equal(t, "REGULAR", open.Variety)
	assert.Equal(t, "2025-01-06 11:00:00 IST", open.CurrentTime)

	closed := StatusAt(istTime(t, 5, 11, 0, 0))
	assert.False(t, closed.IsOpen)
	assert.Equal(t, "CLOSED", closed.Label)
	assert.Equal(t, "AMO", closed.Variety)
	assert.Equal(t, Hours, closed.Hours)
}
