package tournament

import (
	"math"
	"sort"
)

// PairKey identifies a pair by its player-id set: the two ids sorted
// lexicographically and joined with an underscore. The same two players merge
// into one historical row even when each tournament minted a fresh pair id,
// and regardless of the order they were selected in. The display name follows
// the same ordering.
func PairKey(p1, p2 Player) (key, name string) {
	if p2.ID < p1.ID {
		p1, p2 = p2, p1
	}
	return p1.ID + "_" + p2.ID, p1.Name + " & " + p2.Name
}

// AggregateRankings folds the archive into the two cumulative leaderboards.
// Every per-pair ranking row of every entry is attributed to both individual
// players and to the canonical pair; tournaments played count once per entry,
// tournaments won once when the row is the entry's winner. Rows sort by titles,
// then match wins, then games-for, then matches played, all descending; any
// remaining ties keep first-seen order.
func AggregateRankings(history []HistoryEntry) Rankings {
	var players, pairs []AggregateStat
	playerIdx := make(map[string]int)
	pairIdx := make(map[string]int)

	accumulate := func(list *[]AggregateStat, idx map[string]int, id, name string, row RankingStat, won bool) {
		i, ok := idx[id]
		if !ok {
			i = len(*list)
			idx[id] = i
			*list = append(*list, AggregateStat{ID: id, Name: name})
		}
		s := &(*list)[i]
		s.Pts += row.PG
		s.PP += row.PP
		s.MW += row.MatchesWon
		s.ML += row.MatchesLost
		s.PJ += row.MatchesWon + row.MatchesLost
		s.TourneysPlayed++
		if won {
			s.TourneysWon++
		}
	}

	for _, entry := range history {
		for _, row := range entry.Ranking {
			pair, ok := findPair(entry.Pairs, row.ID)
			if !ok {
				continue
			}
			won := row.ID == entry.Winner.ID

			accumulate(&players, playerIdx, pair.P1.ID, pair.P1.Name, row, won)
			accumulate(&players, playerIdx, pair.P2.ID, pair.P2.Name, row, won)

			key, name := PairKey(pair.P1, pair.P2)
			accumulate(&pairs, pairIdx, key, name, row, won)
		}
	}

	return Rankings{Players: finishBoard(players), Pairs: finishBoard(pairs)}
}

func findPair(pairs []Pair, id string) (Pair, bool) {
	for _, p := range pairs {
		if p.ID == id {
			return p, true
		}
	}
	return Pair{}, false
}

func finishBoard(list []AggregateStat) []AggregateStat {
	for i := range list {
		if list[i].PJ > 0 {
			list[i].Pct = int(math.Round(float64(list[i].MW) / float64(list[i].PJ) * 100))
		}
	}
	sort.SliceStable(list, func(a, b int) bool {
		x, y := list[a], list[b]
		if x.TourneysWon != y.TourneysWon {
			return x.TourneysWon > y.TourneysWon
		}
		if x.MW != y.MW {
			return x.MW > y.MW
		}
		if x.Pts != y.Pts {
			return x.Pts > y.Pts
		}
		return x.PJ > y.PJ
	})
	return list
}
