package store

import (
	"sync"

	"github.com/padelnueve/tracker/internal/tournament"
)

// MockStore is a mock implementation of the TournamentStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc         func() ([]tournament.Player, error)
	AddPlayerFunc           func(name string) error
	UpdatePlayerFunc        func(id, name string) error
	DeletePlayerFunc        func(id string) error
	GetActiveTournamentFunc func() (*tournament.State, error)
	StartTournamentFunc     func(state *tournament.State) error
	UpdateScoreFunc         func(matchIndex int, side tournament.Side, score int) error
	FinishTournamentFunc    func(entry *tournament.HistoryEntry) error
	SuspendTournamentFunc   func() error
	ListHistoryFunc         func() ([]tournament.HistoryEntry, error)
	DeleteHistoryFunc       func(ids []string) error

	// Call records
	AddPlayerCalls    []string
	UpdatePlayerCalls []struct {
		ID   string
		Name string
	}
	DeletePlayerCalls     []string
	StartTournamentCalls  []*tournament.State
	UpdateScoreCalls      []struct {
		MatchIndex int
		Side       tournament.Side
		Score      int
	}
	FinishTournamentCalls  []*tournament.HistoryEntry
	SuspendTournamentCalls int
	DeleteHistoryCalls     [][]string

	subs []func(Event)
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.UpdatePlayerCalls = nil
	m.DeletePlayerCalls = nil
	m.StartTournamentCalls = nil
	m.UpdateScoreCalls = nil
	m.FinishTournamentCalls = nil
	m.SuspendTournamentCalls = 0
	m.DeleteHistoryCalls = nil
}

// Emit delivers an event to every current subscriber.
func (m *MockStore) Emit(ev Event) {
	m.mu.Lock()
	subs := make([]func(Event), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (m *MockStore) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
	return func() {}
}

func (m *MockStore) ListPlayers() ([]tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) AddPlayer(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name)
	}
	return nil
}

func (m *MockStore) UpdatePlayer(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, struct {
		ID   string
		Name string
	}{id, name})
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(id, name)
	}
	return nil
}

func (m *MockStore) DeletePlayer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, id)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(id)
	}
	return nil
}

func (m *MockStore) GetActiveTournament() (*tournament.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveTournamentFunc != nil {
		return m.GetActiveTournamentFunc()
	}
	return nil, nil
}

func (m *MockStore) StartTournament(state *tournament.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartTournamentCalls = append(m.StartTournamentCalls, state)
	if m.StartTournamentFunc != nil {
		return m.StartTournamentFunc(state)
	}
	return nil
}

func (m *MockStore) UpdateScore(matchIndex int, side tournament.Side, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateScoreCalls = append(m.UpdateScoreCalls, struct {
		MatchIndex int
		Side       tournament.Side
		Score      int
	}{matchIndex, side, score})
	if m.UpdateScoreFunc != nil {
		return m.UpdateScoreFunc(matchIndex, side, score)
	}
	return nil
}

func (m *MockStore) FinishTournament(entry *tournament.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinishTournamentCalls = append(m.FinishTournamentCalls, entry)
	if m.FinishTournamentFunc != nil {
		return m.FinishTournamentFunc(entry)
	}
	return nil
}

func (m *MockStore) SuspendTournament() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuspendTournamentCalls++
	if m.SuspendTournamentFunc != nil {
		return m.SuspendTournamentFunc()
	}
	return nil
}

func (m *MockStore) ListHistory() ([]tournament.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc()
	}
	return nil, nil
}

func (m *MockStore) DeleteHistory(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteHistoryCalls = append(m.DeleteHistoryCalls, ids)
	if m.DeleteHistoryFunc != nil {
		return m.DeleteHistoryFunc(ids)
	}
	return nil
}
