package store

import (
	"errors"

	"github.com/padelnueve/tracker/internal/tournament"
)

// Event identifies which slice of the tracked data changed. Subscribers get
// one callback per successful write.
type Event string

const (
	EventPlayers Event = "players"
	EventActive  Event = "active"
	EventHistory Event = "history"
)

var (
	// ErrNoActiveTournament is returned by mutations that need an active
	// tournament when the slot is empty.
	ErrNoActiveTournament = errors.New("no active tournament")
	// ErrSimulated is returned by operations the in-memory simulator store
	// does not permit.
	ErrSimulated = errors.New("operation not permitted in simulation mode")
)

// TournamentStore is the persistence collaborator for the tracker. Two
// implementations exist: the libsql/SQLite-backed store for real data and an
// in-memory store for the simulator; callers pick one at session start and
// never branch on it again.
type TournamentStore interface {
	// ListPlayers returns the roster ordered by name ascending.
	ListPlayers() ([]tournament.Player, error)
	// AddPlayer registers a new player. Names are trimmed; an empty trimmed
	// name is a no-op. Names need not be unique.
	AddPlayer(name string) error
	// UpdatePlayer renames a player. An empty trimmed name is a no-op.
	UpdatePlayer(id, name string) error
	// DeletePlayer removes a player from the roster.
	DeletePlayer(id string) error

	// GetActiveTournament returns the active tournament document, or nil
	// when no tournament is running.
	GetActiveTournament() (*tournament.State, error)
	// StartTournament replaces the active-tournament document wholesale.
	StartTournament(state *tournament.State) error
	// UpdateScore rewrites the active document with one score changed and
	// the played flag recomputed. Last write wins; no edit history.
	UpdateScore(matchIndex int, side tournament.Side, score int) error
	// FinishTournament archives the entry and clears the active slot as one
	// atomic unit. A half-applied transition is a correctness violation.
	FinishTournament(entry *tournament.HistoryEntry) error
	// SuspendTournament discards the active document without archiving.
	SuspendTournament() error

	// ListHistory returns archived tournaments ordered by date descending.
	ListHistory() ([]tournament.HistoryEntry, error)
	// DeleteHistory removes the given entries as one atomic bulk delete.
	DeleteHistory(ids []string) error

	// Subscribe registers a callback invoked after every successful write.
	// The returned function unsubscribes; it is safe to call more than once.
	Subscribe(fn func(Event)) (unsubscribe func())
}
