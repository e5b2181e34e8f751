package store

import (
	"testing"

	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMemoryTournament(t *testing.T, m TournamentStore) *tournament.State {
	t.Helper()
	for _, name := range []string{"Ana", "Bea", "Carla", "Diego", "Eva", "Fran"} {
		require.NoError(t, m.AddPlayer(name))
	}
	players, err := m.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 6)

	state, err := tournament.NewState([]tournament.Pair{
		tournament.NewPair(players[0], players[1]),
		tournament.NewPair(players[2], players[3]),
		tournament.NewPair(players[4], players[5]),
	})
	require.NoError(t, err)
	require.NoError(t, m.StartTournament(state))
	return state
}

func TestMemoryReturnsClones(t *testing.T) {
	m := NewMemory()
	startMemoryTournament(t, m)

	first, err := m.GetActiveTournament()
	require.NoError(t, err)
	require.NotNil(t, first)

	// Mutating the returned snapshot must not touch the stored document.
	score := 3
	first.Matches[0].Score1 = &score
	first.Pairs[0].Name = "mutated"

	second, err := m.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, second.Matches[0].Score1)
	assert.NotEqual(t, "mutated", second.Pairs[0].Name)
}

func TestMemoryRosterEditsResetActiveTournament(t *testing.T) {
	m := NewMemory()
	startMemoryTournament(t, m)

	players, err := m.ListPlayers()
	require.NoError(t, err)
	require.NoError(t, m.UpdatePlayer(players[0].ID, "Renamed"))

	active, err := m.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active, "rename resets the simulated board")

	startMemoryTournament(t, m)
	players, err = m.ListPlayers()
	require.NoError(t, err)
	require.NoError(t, m.DeletePlayer(players[0].ID))

	active, err = m.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active, "delete resets the simulated board")
}

func TestMemoryFinishDiscardsWithoutArchiving(t *testing.T) {
	m := NewMemory()
	startMemoryTournament(t, m)

	require.NoError(t, m.FinishTournament(&tournament.HistoryEntry{ID: "x"}))

	active, err := m.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active)

	history, err := m.ListHistory()
	require.NoError(t, err)
	assert.Empty(t, history, "simulated runs never reach the archive")
}

func TestMemoryDeleteHistoryNotPermitted(t *testing.T) {
	m := NewMemory()
	err := m.DeleteHistory([]string{"any"})
	assert.ErrorIs(t, err, ErrSimulated)
}

func TestMemoryUpdateScore(t *testing.T) {
	m := NewMemory()
	startMemoryTournament(t, m)

	require.NoError(t, m.UpdateScore(4, tournament.Side2, 2))
	active, err := m.GetActiveTournament()
	require.NoError(t, err)
	require.NotNil(t, active.Matches[4].Score2)
	assert.Equal(t, 2, *active.Matches[4].Score2)

	require.NoError(t, m.SuspendTournament())
	err = m.UpdateScore(0, tournament.Side1, 1)
	assert.ErrorIs(t, err, ErrNoActiveTournament)
}
