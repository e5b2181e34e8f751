package playtomic

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// ClubMatch is a booked match at the club, reduced to what roster import
// needs: who played.
type ClubMatch struct {
	MatchID string
	Start   int64
	End     int64
	Teams   []Team
}

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// playtomicMatchResponse mirrors the relevant fields of the Playtomic match
// endpoint response.
type playtomicMatchResponse struct {
	MatchID   string `json:"match_id"`
	OwnerID   string `json:"owner_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Teams     []struct {
		TeamID  string `json:"team_id"`
		Players []struct {
			UserID     string   `json:"user_id"`
			Name       string   `json:"name"`
			LevelValue *float64 `json:"level_value"`
		} `json:"players"`
	} `json:"teams"`
}
