package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompetitionRanksDistinctScores(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ranks := CompetitionRanks([]RankEntry{
		{ResultID: a, TotalMarks: 90},
		{ResultID: b, TotalMarks: 95},
		{ResultID: c, TotalMarks: 80},
	})

	assert.Equal(t, 1, ranks[b])
	assert.Equal(t, 2, ranks[a])
	assert.Equal(t, 3, ranks[c])
}

func TestCompetitionRanksTiesShareRankWithGap(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ranks := CompetitionRanks([]RankEntry{
		{ResultID: a, TotalMarks: 95},
		{ResultID: b, TotalMarks: 95},
		{ResultID: c, TotalMarks: 90},
		{ResultID: d, TotalMarks: 90},
	})

	// 95, 95, 90, 90 → 1, 1, 3, 3
	assert.Equal(t, 1, ranks[a])
	assert.Equal(t, 1, ranks[b])
	assert.Equal(t, 3, ranks[c])
	assert.Equal(t, 3, ranks[d])
}

func TestCompetitionRanksIdempotent(t *testing.T) {
	entries := []RankEntry{
		{ResultID: uuid.New(), TotalMarks: 70},
		{ResultID: uuid.New(), TotalMarks: 70},
		{ResultID: uuid.New(), TotalMarks: 60},
	}

	first := CompetitionRanks(entries)
	second := CompetitionRanks(entries)
	assert.Equal(t, first, second)
}

func TestCompetitionRanksEmpty(t *testing.T) {
	assert.Empty(t, CompetitionRanks(nil))
}

func TestCompetitionRanksDoesNotMutateInput(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	entries := []RankEntry{
		{ResultID: a, TotalMarks: 10},
		{ResultID: b, TotalMarks: 99},
	}
	CompetitionRanks(entries)
	assert.Equal(t, a, entries[0].ResultID)
	assert.Equal(t, b, entries[1].ResultID)
}
