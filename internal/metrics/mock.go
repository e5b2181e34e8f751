package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	tournamentsStarted   int
	tournamentsFinished  int
	tournamentsSuspended int
	scoreUpdates         int
	summaryRequests      int
	slackNotifSent       int
	slackNotifFailed     int
	finishDurations      []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		finishDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTournamentsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsStarted++
}

func (m *Mock) IncTournamentsFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFinished++
}

func (m *Mock) IncTournamentsSuspended() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSuspended++
}

func (m *Mock) IncScoreUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreUpdates++
}

func (m *Mock) IncSummaryRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaryRequests++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) ObserveFinishDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishDurations = append(m.finishDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TournamentsStarted returns the number of times IncTournamentsStarted was called.
func (m *Mock) TournamentsStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsStarted
}

// TournamentsFinished returns the number of times IncTournamentsFinished was called.
func (m *Mock) TournamentsFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFinished
}

// TournamentsSuspended returns the number of times IncTournamentsSuspended was called.
func (m *Mock) TournamentsSuspended() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSuspended
}

// ScoreUpdates returns the number of times IncScoreUpdates was called.
func (m *Mock) ScoreUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreUpdates
}

// SummaryRequests returns the number of times IncSummaryRequests was called.
func (m *Mock) SummaryRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summaryRequests
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
