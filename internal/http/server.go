package http

import (
	"net/http"

	"github.com/padelnueve/tracker/internal/auth"
	"github.com/padelnueve/tracker/internal/config"
	"github.com/padelnueve/tracker/internal/lifecycle"
	"github.com/padelnueve/tracker/internal/metrics"
	"github.com/padelnueve/tracker/internal/notifier"
	"github.com/padelnueve/tracker/internal/pubsub"
	"github.com/padelnueve/tracker/internal/store"
)

func NewServer(
	real *lifecycle.Service,
	sim *lifecycle.Service,
	authSvc *auth.Service,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	n notifier.Notifier,
	ps pubsub.PubSubClient,
	cfg config.Config,
) *Server {
	server := &Server{
		Real:           real,
		Sim:            sim,
		Auth:           authSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       n,
		PubSub:         ps,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		hub:            newHub(),
	}

	// Every change to the real tournament is pushed to live websocket
	// viewers. Simulator boards are private and not broadcast.
	if real != nil {
		real.Store().Subscribe(func(_ store.Event) {
			server.broadcastLive()
		})
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), paramsMiddleware))

	// Roster
	s.Router.Handle("GET /players", s.protected(s.ListPlayersHandler()))
	s.Router.Handle("POST /players", s.write(s.AddPlayerHandler()))
	s.Router.Handle("PUT /players/{id}", s.write(s.UpdatePlayerHandler()))
	s.Router.Handle("DELETE /players/{id}", s.write(s.DeletePlayerHandler()))
	s.Router.Handle("POST /players/import", s.admin(s.ImportPlayersHandler()))

	// Pairs
	s.Router.Handle("GET /pairs", s.protected(s.ListPairsHandler()))
	s.Router.Handle("POST /pairs", s.write(s.CreatePairHandler()))
	s.Router.Handle("DELETE /pairs/{id}", s.write(s.RemovePairHandler()))

	// Tournament lifecycle
	s.Router.Handle("GET /tournament", s.protected(s.ActiveTournamentHandler()))
	s.Router.Handle("POST /tournament/start", s.write(s.StartTournamentHandler()))
	s.Router.Handle("POST /tournament/score", s.write(s.UpdateScoreHandler()))
	s.Router.Handle("POST /tournament/finish", s.write(s.FinishTournamentHandler()))
	s.Router.Handle("POST /tournament/suspend", s.write(s.SuspendTournamentHandler()))
	s.Router.Handle("GET /tournament/standings", s.protected(s.StandingsHandler()))
	s.Router.Handle("GET /tournament/summary", s.protected(s.SummaryHandler()))
	s.Router.Handle("GET /announce", s.protected(s.AnnounceWinnerHandler()))

	// Archive
	s.Router.Handle("GET /history", s.protected(s.ListHistoryHandler()))
	s.Router.Handle("DELETE /history", s.admin(s.DeleteHistoryHandler()))
	s.Router.Handle("GET /rankings", s.protected(s.RankingsHandler()))

	// Live updates
	s.Router.Handle("GET /ws/live", Chain(s.LiveHandler(), s.authMiddleware))

	// Pub/Sub push endpoint
	s.Router.Handle("POST /pubsub/tournament-finished", Chain(s.TournamentFinishedHandler(), paramsMiddleware))
}

func (s *Server) protected(h http.Handler) http.Handler {
	return Chain(h, paramsMiddleware, s.authMiddleware)
}

func (s *Server) write(h http.Handler) http.Handler {
	return Chain(h, paramsMiddleware, s.authMiddleware, writeMiddleware)
}

func (s *Server) admin(h http.Handler) http.Handler {
	return Chain(h, paramsMiddleware, s.authMiddleware, adminMiddleware)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
