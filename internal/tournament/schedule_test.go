package tournament_test

import (
	"testing"

	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairSnapshotsNames(t *testing.T) {
	p1 := tournament.Player{ID: "p1", Name: "Ana"}
	p2 := tournament.Player{ID: "p2", Name: "Bea"}
	pair := tournament.NewPair(p1, p2)

	assert.NotEmpty(t, pair.ID)
	assert.Equal(t, "Ana & Bea", pair.Name)

	// Renaming the player afterwards must not leak into the pair.
	p1.Name = "Anabel"
	assert.Equal(t, "Ana", pair.P1.Name)
	assert.Equal(t, "Ana & Bea", pair.Name)
}

func TestBuildScheduleRequiresThreePairs(t *testing.T) {
	pairs := testPairs(t)

	_, err := tournament.BuildSchedule(pairs[:2])
	assert.ErrorIs(t, err, tournament.ErrPairCount)

	_, err = tournament.BuildSchedule(append(pairs, tournament.NewPair(
		tournament.Player{ID: "p7", Name: "Gala"}, tournament.Player{ID: "p8", Name: "Hilda"})))
	assert.ErrorIs(t, err, tournament.ErrPairCount)
}

func TestBuildScheduleShape(t *testing.T) {
	pairs := testPairs(t)
	matches, err := tournament.BuildSchedule(pairs)
	require.NoError(t, err)
	require.Len(t, matches, 9)

	wantPairings := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	for i, m := range matches {
		round := i/3 + 1
		p := wantPairings[i%3]
		assert.Equal(t, round, m.Round)
		assert.Equal(t, pairs[p[0]].ID, m.T1.ID)
		assert.Equal(t, pairs[p[1]].ID, m.T2.ID)
		assert.Nil(t, m.Score1)
		assert.Nil(t, m.Score2)
		assert.False(t, m.Played)
	}

	// Deterministic slot ids.
	assert.Equal(t, "match_1_0", matches[0].ID)
	assert.Equal(t, "match_3_2", matches[8].ID)
}

func TestNewState(t *testing.T) {
	state, err := tournament.NewState(testPairs(t))
	require.NoError(t, err)
	assert.True(t, state.Active)
	assert.NotEmpty(t, state.StartTime)
	assert.Len(t, state.Pairs, 3)
	assert.Len(t, state.Matches, 9)
}
