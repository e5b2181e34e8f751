package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/padelnueve/tracker/internal/database"
	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) TournamentStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "failed to init test database")
	t.Cleanup(teardown)
	return New(db)
}

func seedPairs(t *testing.T, s TournamentStore) []tournament.Pair {
	t.Helper()
	for _, name := range []string{"Ana", "Bea", "Carla", "Diego", "Eva", "Fran"} {
		require.NoError(t, s.AddPlayer(name))
	}
	players, err := s.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 6)

	return []tournament.Pair{
		tournament.NewPair(players[0], players[1]),
		tournament.NewPair(players[2], players[3]),
		tournament.NewPair(players[4], players[5]),
	}
}

func startTournament(t *testing.T, s TournamentStore) *tournament.State {
	t.Helper()
	state, err := tournament.NewState(seedPairs(t, s))
	require.NoError(t, err)
	require.NoError(t, s.StartTournament(state))
	return state
}

func TestPlayersRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddPlayer("zoe"))
	require.NoError(t, s.AddPlayer("Ana"))
	require.NoError(t, s.AddPlayer("  "), "blank names are ignored, not errors")

	players, err := s.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Ana", players[0].Name, "players should come back sorted by name")
	assert.Equal(t, "zoe", players[1].Name)

	require.NoError(t, s.UpdatePlayer(players[1].ID, "Zia"))
	players, err = s.ListPlayers()
	require.NoError(t, err)
	assert.Equal(t, "Zia", players[1].Name)

	require.NoError(t, s.DeletePlayer(players[0].ID))
	players, err = s.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Zia", players[0].Name)
}

func TestActiveTournamentRoundTrip(t *testing.T) {
	s := newTestStore(t)

	active, err := s.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active, "no active tournament before start")

	state := startTournament(t, s)

	active, err = s.GetActiveTournament()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, state.Pairs, active.Pairs)
	require.Len(t, active.Matches, 9)
	assert.Equal(t, "match_1_0", active.Matches[0].ID)
}

func TestUpdateScorePersistsDerivedState(t *testing.T) {
	s := newTestStore(t)
	startTournament(t, s)

	require.NoError(t, s.UpdateScore(0, tournament.Side1, 3))
	require.NoError(t, s.UpdateScore(0, tournament.Side2, 1))

	active, err := s.GetActiveTournament()
	require.NoError(t, err)
	require.NotNil(t, active.Matches[0].Score1)
	assert.Equal(t, 3, *active.Matches[0].Score1)
	assert.True(t, active.Matches[0].Played)
	assert.False(t, active.Matches[1].Played)
}

func TestUpdateScoreWithoutActiveTournament(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateScore(0, tournament.Side1, 3)
	assert.ErrorIs(t, err, ErrNoActiveTournament)
}

func TestFinishTournamentIsAtomic(t *testing.T) {
	s := newTestStore(t)
	state := startTournament(t, s)

	entry := &tournament.HistoryEntry{
		ID:      uuid.NewString(),
		Date:    time.Now().UTC().Format(time.RFC3339),
		Pairs:   state.Pairs,
		Matches: state.Matches,
	}
	require.NoError(t, s.FinishTournament(entry))

	active, err := s.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active, "active slot cleared on finish")

	history, err := s.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entry.ID, history[0].ID)
}

func TestFinishTournamentRollsBackOnDuplicate(t *testing.T) {
	s := newTestStore(t)
	state := startTournament(t, s)

	entry := &tournament.HistoryEntry{
		ID:      "dup",
		Date:    time.Now().UTC().Format(time.RFC3339),
		Pairs:   state.Pairs,
		Matches: state.Matches,
	}
	require.NoError(t, s.FinishTournament(entry))

	// Restart and attempt to archive under the same id: the insert fails, so
	// the active tournament must survive.
	startTournament(t, s)
	err := s.FinishTournament(entry)
	require.Error(t, err)

	active, err := s.GetActiveTournament()
	require.NoError(t, err)
	assert.NotNil(t, active, "active tournament untouched after failed archive")

	history, err := s.ListHistory()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHistoryOrderAndDelete(t *testing.T) {
	s := newTestStore(t)

	for i, date := range []string{"2026-01-10T10:00:00Z", "2026-03-01T10:00:00Z", "2026-02-05T10:00:00Z"} {
		state := startTournament(t, s)
		entry := &tournament.HistoryEntry{
			ID:      string(rune('a' + i)),
			Date:    date,
			Pairs:   state.Pairs,
			Matches: state.Matches,
		}
		require.NoError(t, s.FinishTournament(entry))
	}

	history, err := s.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "b", history[0].ID, "most recent tournament first")
	assert.Equal(t, "c", history[1].ID)
	assert.Equal(t, "a", history[2].ID)

	require.NoError(t, s.DeleteHistory([]string{"b", "a"}))
	history, err = s.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "c", history[0].ID)
}

func TestArchivedEntryKeepsNamesAfterRename(t *testing.T) {
	s := newTestStore(t)
	state := startTournament(t, s)

	entry := &tournament.HistoryEntry{
		ID:      uuid.NewString(),
		Date:    time.Now().UTC().Format(time.RFC3339),
		Pairs:   state.Pairs,
		Matches: state.Matches,
	}
	require.NoError(t, s.FinishTournament(entry))

	players, err := s.ListPlayers()
	require.NoError(t, err)
	require.NoError(t, s.UpdatePlayer(players[0].ID, "Renamed"))

	history, err := s.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, state.Pairs[0].P1.Name, history[0].Pairs[0].P1.Name,
		"archived entries snapshot names at finish time")
}

func TestSuspendClearsActive(t *testing.T) {
	s := newTestStore(t)
	startTournament(t, s)

	require.NoError(t, s.SuspendTournament())
	active, err := s.GetActiveTournament()
	require.NoError(t, err)
	assert.Nil(t, active)

	history, err := s.ListHistory()
	require.NoError(t, err)
	assert.Empty(t, history, "suspend discards without archiving")
}

func TestSubscribeDeliversEvents(t *testing.T) {
	s := newTestStore(t)

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, s.AddPlayer("Ana"))
	assert.Equal(t, []Event{EventPlayers}, events)

	unsubscribe()
	require.NoError(t, s.AddPlayer("Bea"))
	assert.Len(t, events, 1, "no events after unsubscribe")
}
