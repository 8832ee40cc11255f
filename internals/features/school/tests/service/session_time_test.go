package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	m "coachingku_backend/internals/features/school/tests/model"
)

func TestTotalMaxMarks(t *testing.T) {
	assert.Equal(t, 300, TotalMaxMarks(m.SubjectList{
		{Name: "Physics", MaxMarks: 100},
		{Name: "Chemistry", MaxMarks: 100},
		{Name: "Math", MaxMarks: 100},
	}))
	assert.Equal(t, 0, TotalMaxMarks(nil))
}

func TestSessionWindow(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	start, end := SessionWindow(date, "10:00", "12:30", time.UTC)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 12, 30, 0, 0, time.UTC), end)
}

func TestSessionWindowMalformedTimesFallBackToWholeDay(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	start, end := SessionWindow(date, "bogus", "", time.UTC)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 23, 59, 59, 0, time.UTC), end)
}

func TestSessionWindowEndBeforeStart(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	start, end := SessionWindow(date, "10:00", "09:00", time.UTC)
	assert.Equal(t, start.Add(time.Hour), end)
}

func TestDeriveStatus(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	before := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	during := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)
	after := time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, m.StatusScheduled, DeriveStatus(date, "10:00", "12:00", before))
	assert.Equal(t, m.StatusOngoing, DeriveStatus(date, "10:00", "12:00", during))
	assert.Equal(t, m.StatusCompleted, DeriveStatus(date, "10:00", "12:00", after))
}

func TestDeriveStatusBoundaries(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	atStart := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	atEnd := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, m.StatusOngoing, DeriveStatus(date, "10:00", "12:00", atStart))
	assert.Equal(t, m.StatusOngoing, DeriveStatus(date, "10:00", "12:00", atEnd))
}
