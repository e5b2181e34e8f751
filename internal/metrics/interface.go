package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTournamentsStarted()
	IncTournamentsFinished()
	IncTournamentsSuspended()
	IncScoreUpdates()
	IncSummaryRequests()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	ObserveFinishDuration(duration float64)
	SetStartupTime(duration float64)
}
