package tournament_test

import (
	"testing"

	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyEntry builds an archived tournament where the given pair posted the
// given row and won when winner is true. The opposing pairs are filler.
func historyEntry(t *testing.T, pair tournament.Pair, row tournament.RankingStat, winner bool) tournament.HistoryEntry {
	t.Helper()
	row.ID = pair.ID
	row.Name = pair.Name

	other := tournament.NewPair(
		tournament.Player{ID: "x1", Name: "Xena"}, tournament.Player{ID: "x2", Name: "Yara"})
	otherRow := tournament.RankingStat{ID: other.ID, Name: other.Name}

	entry := tournament.HistoryEntry{
		ID:      "h_" + pair.ID + "_" + row.Name,
		Date:    "2026-08-01T10:00:00Z",
		Ranking: []tournament.RankingStat{row, otherRow},
		Pairs:   []tournament.Pair{pair, other},
	}
	if winner {
		entry.Winner = row
	} else {
		entry.Winner = otherRow
	}
	return entry
}

func TestAggregateRankingsAcrossTournaments(t *testing.T) {
	alba := tournament.Player{ID: "a", Name: "Alba"}
	bruno := tournament.Player{ID: "b", Name: "Bruno"}

	// Same two players, freshly formed pair each tournament.
	first := tournament.NewPair(alba, bruno)
	second := tournament.NewPair(bruno, alba) // selected in reverse order

	history := []tournament.HistoryEntry{
		historyEntry(t, first, tournament.RankingStat{PG: 10, PP: 4, MatchesWon: 2, MatchesLost: 1}, true),
		historyEntry(t, second, tournament.RankingStat{PG: 7, PP: 6, MatchesWon: 1, MatchesLost: 2}, false),
	}

	rankings := tournament.AggregateRankings(history)

	require.NotEmpty(t, rankings.Players)
	albaRow := rankings.Players[0]
	assert.Equal(t, "a", albaRow.ID)
	assert.Equal(t, 2, albaRow.TourneysPlayed)
	assert.Equal(t, 1, albaRow.TourneysWon)
	assert.Equal(t, 3, albaRow.MW)
	assert.Equal(t, 3, albaRow.ML)
	assert.Equal(t, 6, albaRow.PJ)
	assert.Equal(t, 17, albaRow.Pts)
	assert.Equal(t, 50, albaRow.Pct)

	// Both pair instances collapse onto one canonical row.
	var pairRows []tournament.AggregateStat
	for _, r := range rankings.Pairs {
		if r.ID == "a_b" {
			pairRows = append(pairRows, r)
		}
	}
	require.Len(t, pairRows, 1)
	assert.Equal(t, 2, pairRows[0].TourneysPlayed)
	assert.Equal(t, 1, pairRows[0].TourneysWon)
	assert.Equal(t, 17, pairRows[0].Pts)
	assert.Equal(t, "Alba & Bruno", pairRows[0].Name)
}

func TestPairKeyOrderIndependent(t *testing.T) {
	x := tournament.Player{ID: "p9", Name: "Zoe"}
	y := tournament.Player{ID: "p10", Name: "Mar"}

	k1, n1 := tournament.PairKey(x, y)
	k2, n2 := tournament.PairKey(y, x)
	assert.Equal(t, k1, k2)
	assert.Equal(t, n1, n2)
	assert.Equal(t, "p10_p9", k1)
	assert.Equal(t, "Mar & Zoe", n1)
}

func TestAggregateRankingsSortOrder(t *testing.T) {
	p1 := tournament.NewPair(tournament.Player{ID: "a", Name: "A"}, tournament.Player{ID: "b", Name: "B"})
	p2 := tournament.NewPair(tournament.Player{ID: "c", Name: "C"}, tournament.Player{ID: "d", Name: "D"})

	history := []tournament.HistoryEntry{
		// p2 wins the tournament with fewer match wins than p1 accumulates.
		{
			ID:   "h1",
			Date: "2026-08-02T10:00:00Z",
			Winner: tournament.RankingStat{ID: p2.ID},
			Ranking: []tournament.RankingStat{
				{ID: p1.ID, Name: p1.Name, PG: 9, MatchesWon: 3},
				{ID: p2.ID, Name: p2.Name, PG: 6, MatchesWon: 2, MatchesLost: 1},
			},
			Pairs: []tournament.Pair{p1, p2},
		},
	}

	rankings := tournament.AggregateRankings(history)
	require.Len(t, rankings.Pairs, 2)
	// Titles dominate match wins.
	assert.Equal(t, 1, rankings.Pairs[0].TourneysWon)
	assert.Equal(t, "c_d", rankings.Pairs[0].ID)
	assert.Equal(t, "a_b", rankings.Pairs[1].ID)
}

func TestAggregateRankingsEmptyHistory(t *testing.T) {
	rankings := tournament.AggregateRankings(nil)
	assert.Empty(t, rankings.Players)
	assert.Empty(t, rankings.Pairs)
}

func TestAggregateIgnoresRowsWithoutPair(t *testing.T) {
	entry := tournament.HistoryEntry{
		ID:      "h-orphan",
		Ranking: []tournament.RankingStat{{ID: "missing", PG: 5}},
	}
	rankings := tournament.AggregateRankings([]tournament.HistoryEntry{entry})
	assert.Empty(t, rankings.Players)
	assert.Empty(t, rankings.Pairs)
}
