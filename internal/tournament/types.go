package tournament

// Side identifies which side of a match a score belongs to.
type Side int

const (
	Side1 Side = 1
	Side2 Side = 2
)

// Player is a registered club member. The name is mutable; pairs keep a
// snapshot of it taken at pair creation time.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Pair is a fixed two-player team. It owns copies of its players as they were
// when the pair was formed and is immutable afterwards, so archived records
// stay stable when a player is later renamed.
type Pair struct {
	ID   string `json:"id"`
	P1   Player `json:"p1"`
	P2   Player `json:"p2"`
	Name string `json:"name"`
}

// Match is a single round-robin fixture between two pairs. The pairs are
// denormalized copies, matching the document model of the store. Played is
// derived: both scores present and not equal.
type Match struct {
	ID     string `json:"id"`
	T1     Pair   `json:"t1"`
	T2     Pair   `json:"t2"`
	Score1 *int   `json:"score1"`
	Score2 *int   `json:"score2"`
	Played bool   `json:"played"`
	Round  int    `json:"round"`
}

// State is the active tournament document: exactly three pairs and nine
// matches (three rounds of the three round-robin pairings) while active.
type State struct {
	Active    bool    `json:"active"`
	StartTime string  `json:"startTime"`
	Pairs     []Pair  `json:"pairs"`
	Matches   []Match `json:"matches"`
}

// RankingStat is one row of the live standings for a pair. PG/PP are
// games-for and games-against.
type RankingStat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PG          int    `json:"pg"`
	PP          int    `json:"pp"`
	MatchesWon  int    `json:"matchesWon"`
	MatchesLost int    `json:"matchesLost"`
}

// H2HRecord is the win/loss record of one pair against one specific opponent.
type H2HRecord struct {
	MatchesWon  int `json:"matchesWon"`
	MatchesLost int `json:"matchesLost"`
}

// H2HStats maps pair id to per-opponent records. The table is symmetric and
// always holds an entry for every distinct pair-of-pairs, even at 0-0.
type H2HStats map[string]map[string]H2HRecord

// HistoryEntry is the frozen snapshot of a finished tournament. It owns deep
// copies of everything it references and is never mutated after creation.
type HistoryEntry struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Winner     RankingStat   `json:"winner"`
	Ranking    []RankingStat `json:"ranking"`
	H2HMatches H2HStats      `json:"h2hMatches"`
	Matches    []Match       `json:"matches"`
	Pairs      []Pair        `json:"pairs"`
}

// AggregateStat is one row of a historical leaderboard, for a player or for a
// canonical pair. Pts/PP accumulate games for/against, MW/ML match wins and
// losses, PJ matches played, Pct the rounded win percentage.
type AggregateStat struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Pts            int    `json:"pts"`
	PP             int    `json:"pp"`
	MW             int    `json:"mw"`
	ML             int    `json:"ml"`
	PJ             int    `json:"pj"`
	TourneysWon    int    `json:"tourneysWon"`
	TourneysPlayed int    `json:"tourneysPlayed"`
	Pct            int    `json:"pct"`
}

// Rankings holds both historical leaderboards.
type Rankings struct {
	Players []AggregateStat `json:"players"`
	Pairs   []AggregateStat `json:"pairs"`
}
