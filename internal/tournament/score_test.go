package tournament_test

import (
	"testing"

	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyScoreDerivesPlayed(t *testing.T) {
	state := activeState(t)

	require.NoError(t, tournament.ApplyScore(state, 0, tournament.Side1, 3))
	assert.False(t, state.Matches[0].Played, "one-sided score is not played")

	require.NoError(t, tournament.ApplyScore(state, 0, tournament.Side2, 1))
	assert.True(t, state.Matches[0].Played)

	// Correcting into a tie pulls the match back out of the stats.
	require.NoError(t, tournament.ApplyScore(state, 0, tournament.Side2, 3))
	assert.False(t, state.Matches[0].Played)

	for _, tie := range []int{0, 1, 2, 3} {
		require.NoError(t, tournament.ApplyScore(state, 1, tournament.Side1, tie))
		require.NoError(t, tournament.ApplyScore(state, 1, tournament.Side2, tie))
		assert.False(t, state.Matches[1].Played, "equal scores are never valid")
	}
}

func TestApplyScoreIdempotent(t *testing.T) {
	state := activeState(t)
	score(t, state, 4, 3, 2)
	before := state.Matches[4]

	score(t, state, 4, 3, 2)
	after := state.Matches[4]

	assert.Equal(t, *before.Score1, *after.Score1)
	assert.Equal(t, *before.Score2, *after.Score2)
	assert.Equal(t, before.Played, after.Played)
}

func TestApplyScoreBounds(t *testing.T) {
	state := activeState(t)

	assert.ErrorIs(t, tournament.ApplyScore(state, -1, tournament.Side1, 1), tournament.ErrMatchIndex)
	assert.ErrorIs(t, tournament.ApplyScore(state, 9, tournament.Side1, 1), tournament.ErrMatchIndex)
	assert.ErrorIs(t, tournament.ApplyScore(nil, 0, tournament.Side1, 1), tournament.ErrMatchIndex)
	assert.ErrorIs(t, tournament.ApplyScore(state, 0, tournament.Side(3), 1), tournament.ErrSide)
}
