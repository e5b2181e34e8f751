package tournament

import (
	"fmt"
	"sort"
	"strings"
)

// CalculateLiveStats derives the current standings from the active state: one
// row per pair, games for/against and match wins/losses accumulated from every
// played match. Rows are sorted by games-for descending with match wins as the
// tie-break; with no played matches the pair creation order is preserved.
func CalculateLiveStats(state State) []RankingStat {
	stats := make([]RankingStat, len(state.Pairs))
	index := make(map[string]int, len(state.Pairs))
	for i, p := range state.Pairs {
		stats[i] = RankingStat{ID: p.ID, Name: p.Name}
		index[p.ID] = i
	}

	for _, m := range state.Matches {
		if !m.Played || m.Score1 == nil || m.Score2 == nil {
			continue
		}
		i1, ok1 := index[m.T1.ID]
		i2, ok2 := index[m.T2.ID]
		if !ok1 || !ok2 {
			continue
		}

		stats[i1].PG += *m.Score1
		stats[i1].PP += *m.Score2
		stats[i2].PG += *m.Score2
		stats[i2].PP += *m.Score1

		// Played matches never tie, so exactly one side wins.
		if *m.Score1 > *m.Score2 {
			stats[i1].MatchesWon++
			stats[i2].MatchesLost++
		} else {
			stats[i2].MatchesWon++
			stats[i1].MatchesLost++
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].PG != stats[b].PG {
			return stats[a].PG > stats[b].PG
		}
		return stats[a].MatchesWon > stats[b].MatchesWon
	})
	return stats
}

// CalculateH2H builds the complete head-to-head table. Every distinct
// pair-of-pairs is seeded with a zero record first, so the table covers
// matchups that have not been played yet, and a win for one side is always
// mirrored as a loss for the other.
func CalculateH2H(state State) H2HStats {
	h2h := make(H2HStats, len(state.Pairs))
	for _, p1 := range state.Pairs {
		h2h[p1.ID] = make(map[string]H2HRecord, len(state.Pairs)-1)
		for _, p2 := range state.Pairs {
			if p1.ID != p2.ID {
				h2h[p1.ID][p2.ID] = H2HRecord{}
			}
		}
	}

	for _, m := range state.Matches {
		if !m.Played || m.Score1 == nil || m.Score2 == nil {
			continue
		}
		if _, ok := h2h[m.T1.ID]; !ok {
			continue
		}
		if _, ok := h2h[m.T2.ID]; !ok {
			continue
		}

		winner, loser := m.T1.ID, m.T2.ID
		if *m.Score2 > *m.Score1 {
			winner, loser = m.T2.ID, m.T1.ID
		}

		w := h2h[winner][loser]
		w.MatchesWon++
		h2h[winner][loser] = w

		l := h2h[loser][winner]
		l.MatchesLost++
		h2h[loser][winner] = l
	}
	return h2h
}

// FormatStandings renders standings as a plain text block, one line per pair.
// Used as the prompt context for AI summaries and by the CLI.
func FormatStandings(stats []RankingStat) string {
	var b strings.Builder
	for i, s := range stats {
		fmt.Fprintf(&b, "%d. %s: %d juegos a favor, %d en contra, %d ganados, %d perdidos\n",
			i+1, s.Name, s.PG, s.PP, s.MatchesWon, s.MatchesLost)
	}
	return b.String()
}
