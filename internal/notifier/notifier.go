package notifier

import (
	"github.com/padelnueve/tracker/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendTournamentStarted announces a freshly started tournament with its
	// pairs and schedule.
	SendTournamentStarted(state *tournament.State, dryRun bool) error
	// SendFinalStandings posts the final board of an archived tournament.
	SendFinalStandings(entry *tournament.HistoryEntry, dryRun bool) error
}
