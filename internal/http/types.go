package http

import (
	"net/http"

	"github.com/padelnueve/tracker/internal/auth"
	"github.com/padelnueve/tracker/internal/config"
	"github.com/padelnueve/tracker/internal/lifecycle"
	"github.com/padelnueve/tracker/internal/metrics"
	"github.com/padelnueve/tracker/internal/notifier"
	"github.com/padelnueve/tracker/internal/pubsub"
)

// Server routes API requests to one of two lifecycle instances: Real, backed
// by the persistent store, and Sim, the in-memory sandbox handed to the
// simulator role. Real may be nil when the database failed to open; the
// simulator keeps working in that case.
type Server struct {
	Real           *lifecycle.Service
	Sim            *lifecycle.Service
	Auth           *auth.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Cfg            config.Config
	Router         *http.ServeMux

	hub *hub
}
