package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_tournaments_started_total",
			Help: "The total number of tournaments started.",
		}),
		TournamentsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_tournaments_finished_total",
			Help: "The total number of tournaments finished and archived.",
		}),
		TournamentsSuspended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_tournaments_suspended_total",
			Help: "The total number of tournaments suspended without archiving.",
		}),
		ScoreUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_score_updates_total",
			Help: "The total number of accepted match score updates.",
		}),
		SummaryRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_summary_requests_total",
			Help: "The total number of AI standings summaries requested.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		FinishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_tournament_finish_duration_seconds",
			Help:    "The duration of the finish-and-archive transaction.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentsStarted,
		s.TournamentsFinished,
		s.TournamentsSuspended,
		s.ScoreUpdates,
		s.SummaryRequests,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.FinishDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTournamentsStarted() {
	s.TournamentsStarted.Inc()
}

func (s *Service) IncTournamentsFinished() {
	s.TournamentsFinished.Inc()
}

func (s *Service) IncTournamentsSuspended() {
	s.TournamentsSuspended.Inc()
}

func (s *Service) IncScoreUpdates() {
	s.ScoreUpdates.Inc()
}

func (s *Service) IncSummaryRequests() {
	s.SummaryRequests.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) ObserveFinishDuration(duration float64) {
	s.FinishDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
