package announcer

import (
	"context"
	"sync"
)

// MockAnnouncer is a mock implementation of the Announcer interface for
// testing. It is safe for concurrent use.
type MockAnnouncer struct {
	mu sync.Mutex

	// Spies for method calls
	SummarizeFunc      func(ctx context.Context, standings string) (string, error)
	AnnounceWinnerFunc func(ctx context.Context, winnerName string) ([]byte, error)

	// Call records
	SummarizeCalls      []string
	AnnounceWinnerCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockAnnouncer {
	return &MockAnnouncer{}
}

// Reset clears all call records.
func (m *MockAnnouncer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummarizeCalls = nil
	m.AnnounceWinnerCalls = nil
}

func (m *MockAnnouncer) Summarize(ctx context.Context, standings string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummarizeCalls = append(m.SummarizeCalls, standings)
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, standings)
	}
	return "", nil
}

func (m *MockAnnouncer) AnnounceWinner(ctx context.Context, winnerName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnnounceWinnerCalls = append(m.AnnounceWinnerCalls, winnerName)
	if m.AnnounceWinnerFunc != nil {
		return m.AnnounceWinnerFunc(ctx, winnerName)
	}
	return nil, nil
}
