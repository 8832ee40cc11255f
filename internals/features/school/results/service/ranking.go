package service

import (
	"sort"

	"github.com/google/uuid"
)

// RankEntry is one non-absent result entering the ranking.
type RankEntry struct {
	ResultID   uuid.UUID
	TotalMarks float64
}

// CompetitionRanks assigns standard competition ranking over descending
// totals: tied scores share a rank, and the next distinct score gets
// rank = its 1-indexed position (so ranks have gaps after ties). The result
// is deterministic and idempotent for a given input set.
func CompetitionRanks(entries []RankEntry) map[uuid.UUID]int {
	sorted := make([]RankEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalMarks > sorted[j].TotalMarks
	})

	ranks := make(map[uuid.UUID]int, len(sorted))
	currentRank := 0
	var prevTotal float64
	for i, e := range sorted {
		if i == 0 || e.TotalMarks != prevTotal {
			currentRank = i + 1
			prevTotal = e.TotalMarks
		}
		ranks[e.ResultID] = currentRank
	}
	return ranks
}
