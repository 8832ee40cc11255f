package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInReminder24hWindow(t *testing.T) {
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	assert.True(t, InReminder24hWindow(start, start.Add(-24*time.Hour)))
	assert.True(t, InReminder24hWindow(start, start.Add(-23*time.Hour-30*time.Minute)))

	assert.False(t, InReminder24hWindow(start, start.Add(-23*time.Hour)), "lower bound is exclusive")
	assert.False(t, InReminder24hWindow(start, start.Add(-25*time.Hour)), "too early")
	assert.False(t, InReminder24hWindow(start, start.Add(-time.Hour)), "too late")
	assert.False(t, InReminder24hWindow(start, start.Add(time.Hour)), "already started")
}

func TestInReminder1hWindow(t *testing.T) {
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	assert.True(t, InReminder1hWindow(start, start.Add(-time.Hour)))
	assert.True(t, InReminder1hWindow(start, start.Add(-55*time.Minute)))

	assert.False(t, InReminder1hWindow(start, start.Add(-50*time.Minute)), "lower bound is exclusive")
	assert.False(t, InReminder1hWindow(start, start.Add(-61*time.Minute)), "too early")
	assert.False(t, InReminder1hWindow(start, start.Add(-10*time.Minute)), "too late")
}

func TestInReminder1hWindowRequiresSameDay(t *testing.T) {
	// session at 00:30; 55 minutes before is still the previous day
	start := time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)
	now := start.Add(-55 * time.Minute)

	assert.NotEqual(t, start.Day(), now.Day())
	assert.False(t, InReminder1hWindow(start, now))
}
