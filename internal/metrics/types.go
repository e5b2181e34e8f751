package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TournamentsStarted   prometheus.Counter
	TournamentsFinished  prometheus.Counter
	TournamentsSuspended prometheus.Counter
	ScoreUpdates         prometheus.Counter
	SummaryRequests      prometheus.Counter
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	FinishDuration       prometheus.Histogram
	StartupTimeSeconds   prometheus.Gauge
}
