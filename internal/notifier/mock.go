package notifier

import (
	"sync"

	"github.com/padelnueve/tracker/internal/tournament"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendTournamentStartedFunc func(state *tournament.State, dryRun bool) error
	SendFinalStandingsFunc    func(entry *tournament.HistoryEntry, dryRun bool) error

	// Call records
	SendTournamentStartedCalls []*tournament.State
	SendFinalStandingsCalls    []*tournament.HistoryEntry
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentStartedCalls = nil
	m.SendFinalStandingsCalls = nil
}

func (m *MockNotifier) SendTournamentStarted(state *tournament.State, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentStartedCalls = append(m.SendTournamentStartedCalls, state)
	if m.SendTournamentStartedFunc != nil {
		return m.SendTournamentStartedFunc(state, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendFinalStandings(entry *tournament.HistoryEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFinalStandingsCalls = append(m.SendFinalStandingsCalls, entry)
	if m.SendFinalStandingsFunc != nil {
		return m.SendFinalStandingsFunc(entry, dryRun)
	}
	return nil
}
