package lifecycle

import "errors"

// Sentinel errors returned by the Service. HTTP handlers map them to status
// codes; the CLI prints them as-is.
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerPaired     = errors.New("player is part of a confirmed pair")
	ErrPairLimit        = errors.New("a tournament holds at most three pairs")
	ErrPairNotFound     = errors.New("pair not found")
	ErrSamePlayer       = errors.New("a pair needs two different players")
	ErrNeedThreePairs   = errors.New("three confirmed pairs are required to start")
	ErrTournamentActive = errors.New("a tournament is already in progress")
	ErrInvalidScore     = errors.New("score must be between 0 and 3")
	ErrNotConfigured    = errors.New("feature not configured")
)

// MaxGames is the highest score a side can record in one match.
const MaxGames = 3
