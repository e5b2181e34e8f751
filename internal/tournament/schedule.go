package tournament

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// PairsPerTournament is the fixed number of pairs in the 3x9 format.
	PairsPerTournament = 3
	// RoundsPerTournament is the number of times each pairing is replayed.
	RoundsPerTournament = 3
)

// ErrPairCount is returned when a schedule is requested for anything other
// than exactly three pairs.
var ErrPairCount = errors.New("a tournament needs exactly three confirmed pairs")

// NewPair forms a pair out of two players. The pair name is derived once from
// the players' names at this moment and is never recomputed.
func NewPair(p1, p2 Player) Pair {
	return Pair{
		ID:   uuid.NewString(),
		P1:   p1,
		P2:   p2,
		Name: p1.Name + " & " + p2.Name,
	}
}

// BuildSchedule produces the fixed 3x9 round-robin schedule: the pairings
// (0,1), (0,2), (1,2) repeated for three rounds, nine matches total, all
// unscored. Match ids are deterministic per slot.
func BuildSchedule(pairs []Pair) ([]Match, error) {
	if len(pairs) != PairsPerTournament {
		return nil, ErrPairCount
	}

	pairings := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	matches := make([]Match, 0, RoundsPerTournament*len(pairings))
	for round := 1; round <= RoundsPerTournament; round++ {
		for i, p := range pairings {
			matches = append(matches, Match{
				ID:    fmt.Sprintf("match_%d_%d", round, i),
				T1:    pairs[p[0]],
				T2:    pairs[p[1]],
				Round: round,
			})
		}
	}
	return matches, nil
}

// NewState builds a fresh active tournament document from three confirmed
// pairs.
func NewState(pairs []Pair) (*State, error) {
	matches, err := BuildSchedule(pairs)
	if err != nil {
		return nil, err
	}
	return &State{
		Active:    true,
		StartTime: time.Now().UTC().Format(time.RFC3339),
		Pairs:     pairs,
		Matches:   matches,
	}, nil
}
