// Package lifecycle implements the tournament state machine: roster and pair
// management, the live board, the finish-and-archive transition, and the
// historical rankings built on top of the archive.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/padelnueve/tracker/internal/announcer"
	"github.com/padelnueve/tracker/internal/metrics"
	"github.com/padelnueve/tracker/internal/notifier"
	"github.com/padelnueve/tracker/internal/playtomic"
	"github.com/padelnueve/tracker/internal/pubsub"
	"github.com/padelnueve/tracker/internal/store"
	"github.com/padelnueve/tracker/internal/tournament"
)

// Service drives one tracker instance: the real one over the persistent
// store, or a simulator instance over an in-memory store. Collaborators other
// than the store may be nil; the corresponding side effects are then skipped.
type Service struct {
	store     store.TournamentStore
	notifier  notifier.Notifier
	announcer announcer.Announcer
	metrics   metrics.Metrics
	pubsub    pubsub.PubSubClient
	playtomic playtomic.PlaytomicClient
	tenantID  string
	simulated bool

	// mu guards the pair slate, which lives in memory until Start commits it
	// into the tournament document.
	mu    sync.Mutex
	slate []tournament.Pair
}

// New creates a lifecycle service over the persistent store.
func New(
	st store.TournamentStore,
	n notifier.Notifier,
	a announcer.Announcer,
	m metrics.Metrics,
	ps pubsub.PubSubClient,
	pt playtomic.PlaytomicClient,
	tenantID string,
) *Service {
	return &Service{
		store:     st,
		notifier:  n,
		announcer: a,
		metrics:   m,
		pubsub:    ps,
		playtomic: pt,
		tenantID:  tenantID,
	}
}

// NewSimulated creates a sandboxed service: in-memory store, no external side
// effects regardless of which collaborators exist on the real instance.
func NewSimulated(a announcer.Announcer, m metrics.Metrics) *Service {
	return &Service{
		store:     store.NewMemory(),
		announcer: a,
		metrics:   m,
		simulated: true,
	}
}

// Store exposes the underlying store, mainly so the HTTP layer can subscribe
// to change events.
func (s *Service) Store() store.TournamentStore {
	return s.store
}

// Simulated reports whether this instance is the sandbox.
func (s *Service) Simulated() bool {
	return s.simulated
}

// Players returns the current roster.
func (s *Service) Players() ([]tournament.Player, error) {
	return s.store.ListPlayers()
}

// AddPlayer registers a new player.
func (s *Service) AddPlayer(name string) error {
	return s.store.AddPlayer(name)
}

// UpdatePlayer renames a player. Renaming is rejected while the player is on
// the pair slate, since pair names are frozen at pair creation.
func (s *Service) UpdatePlayer(id, name string) error {
	if s.playerPaired(id) {
		return ErrPlayerPaired
	}
	return s.store.UpdatePlayer(id, name)
}

// DeletePlayer removes a player from the roster. Players on the pair slate
// cannot be removed; the pair has to be dissolved first.
func (s *Service) DeletePlayer(id string) error {
	if s.playerPaired(id) {
		return ErrPlayerPaired
	}
	return s.store.DeletePlayer(id)
}

func (s *Service) playerPaired(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pair := range s.slate {
		if pair.P1.ID == id || pair.P2.ID == id {
			return true
		}
	}
	return false
}

// Pairs returns the confirmed pairs waiting for the next tournament.
func (s *Service) Pairs() []tournament.Pair {
	s.mu.Lock()
	defer s.mu.Unlock()
	pairs := make([]tournament.Pair, len(s.slate))
	copy(pairs, s.slate)
	return pairs
}

// CreatePair confirms two roster players as a pair for the next tournament.
func (s *Service) CreatePair(p1ID, p2ID string) (tournament.Pair, error) {
	if p1ID == p2ID {
		return tournament.Pair{}, ErrSamePlayer
	}

	players, err := s.store.ListPlayers()
	if err != nil {
		return tournament.Pair{}, err
	}
	var p1, p2 *tournament.Player
	for i := range players {
		switch players[i].ID {
		case p1ID:
			p1 = &players[i]
		case p2ID:
			p2 = &players[i]
		}
	}
	if p1 == nil || p2 == nil {
		return tournament.Pair{}, ErrPlayerNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.slate) >= tournament.PairsPerTournament {
		return tournament.Pair{}, ErrPairLimit
	}
	for _, pair := range s.slate {
		for _, id := range []string{p1ID, p2ID} {
			if pair.P1.ID == id || pair.P2.ID == id {
				return tournament.Pair{}, ErrPlayerPaired
			}
		}
	}

	pair := tournament.NewPair(*p1, *p2)
	s.slate = append(s.slate, pair)
	log.Info("Pair confirmed", "pair", pair.Name)
	return pair, nil
}

// RemovePair dissolves a confirmed pair.
func (s *Service) RemovePair(pairID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pair := range s.slate {
		if pair.ID == pairID {
			s.slate = append(s.slate[:i], s.slate[i+1:]...)
			log.Info("Pair dissolved", "pair", pair.Name)
			return nil
		}
	}
	return ErrPairNotFound
}

// Start begins a tournament from the three confirmed pairs. The slate is
// consumed on success.
func (s *Service) Start(ctx context.Context) (*tournament.State, error) {
	active, err := s.store.GetActiveTournament()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrTournamentActive
	}

	s.mu.Lock()
	if len(s.slate) != tournament.PairsPerTournament {
		s.mu.Unlock()
		return nil, ErrNeedThreePairs
	}
	pairs := make([]tournament.Pair, len(s.slate))
	copy(pairs, s.slate)
	s.mu.Unlock()

	state, err := tournament.NewState(pairs)
	if err != nil {
		return nil, err
	}
	if err := s.store.StartTournament(state); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.slate = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.IncTournamentsStarted()
	}
	log.Info("Tournament started", "pairs", len(state.Pairs), "matches", len(state.Matches))

	if s.notifier != nil && !s.simulated {
		if err := s.notifier.SendTournamentStarted(state, false); err != nil {
			log.Error("Failed to announce tournament start", "error", err)
		}
	}
	return state, nil
}

// Active returns the active tournament, or nil when none is running.
func (s *Service) Active() (*tournament.State, error) {
	return s.store.GetActiveTournament()
}

// UpdateScore records one side's games for a match of the active tournament.
func (s *Service) UpdateScore(matchIndex int, side tournament.Side, score int) error {
	if score < 0 || score > MaxGames {
		return ErrInvalidScore
	}
	if err := s.store.UpdateScore(matchIndex, side, score); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncScoreUpdates()
	}
	return nil
}

// Standings returns the live board and head-to-head table for the active
// tournament.
func (s *Service) Standings() ([]tournament.RankingStat, tournament.H2HStats, error) {
	state, err := s.store.GetActiveTournament()
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		return nil, nil, store.ErrNoActiveTournament
	}
	return tournament.CalculateLiveStats(*state), tournament.CalculateH2H(*state), nil
}

// Finish archives the active tournament: the final board is computed, the
// history entry inserted and the active slot cleared in one transaction, and
// the result announced.
func (s *Service) Finish(ctx context.Context) (*tournament.HistoryEntry, error) {
	state, err := s.store.GetActiveTournament()
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, store.ErrNoActiveTournament
	}

	stats := tournament.CalculateLiveStats(*state)
	entry := &tournament.HistoryEntry{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC().Format(time.RFC3339),
		Winner:     stats[0],
		Ranking:    stats,
		H2HMatches: tournament.CalculateH2H(*state),
		Matches:    state.Matches,
		Pairs:      state.Pairs,
	}

	started := time.Now()
	if err := s.store.FinishTournament(entry); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncTournamentsFinished()
		s.metrics.ObserveFinishDuration(time.Since(started).Seconds())
	}
	log.Info("Tournament archived", "entryID", entry.ID, "winner", entry.Winner.Name)

	if s.pubsub != nil && !s.simulated {
		payload := pubsub.TournamentFinishedPayload{
			EntryID: entry.ID,
			Winner:  entry.Winner.Name,
		}
		if err := s.pubsub.SendMessage(pubsub.EventTournamentFinished, payload); err != nil {
			log.Error("Failed to publish tournament finished event", "error", err, "entryID", entry.ID)
		}
	}
	return entry, nil
}

// Suspend abandons the active tournament without archiving it.
func (s *Service) Suspend() error {
	if err := s.store.SuspendTournament(); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncTournamentsSuspended()
	}
	log.Info("Tournament suspended")
	return nil
}

// History lists archived tournaments, most recent first.
func (s *Service) History() ([]tournament.HistoryEntry, error) {
	return s.store.ListHistory()
}

// DeleteHistory removes archived tournaments by id.
func (s *Service) DeleteHistory(ids []string) error {
	return s.store.DeleteHistory(ids)
}

// Rankings aggregates the whole archive into the player and pair
// leaderboards.
func (s *Service) Rankings() (tournament.Rankings, error) {
	history, err := s.store.ListHistory()
	if err != nil {
		return tournament.Rankings{}, err
	}
	return tournament.AggregateRankings(history), nil
}

// Summary asks the announcer for a commentary on the live standings. When the
// announcer is missing or fails, a canned summary is returned instead so the
// endpoint always produces something readable.
func (s *Service) Summary(ctx context.Context) (string, error) {
	stats, _, err := s.Standings()
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IncSummaryRequests()
	}

	standings := tournament.FormatStandings(stats)
	if s.announcer == nil {
		return fallbackSummary(stats), nil
	}
	summary, err := s.announcer.Summarize(ctx, standings)
	if err != nil {
		log.Error("Summary generation failed, using fallback", "error", err)
		return fallbackSummary(stats), nil
	}
	return summary, nil
}

// AnnounceWinner synthesizes the spoken announcement for the most recently
// archived tournament.
func (s *Service) AnnounceWinner(ctx context.Context) ([]byte, error) {
	if s.announcer == nil {
		return nil, ErrNotConfigured
	}
	history, err := s.store.ListHistory()
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, store.ErrNoActiveTournament
	}
	return s.announcer.AnnounceWinner(ctx, history[0].Winner.Name)
}

func fallbackSummary(stats []tournament.RankingStat) string {
	if len(stats) == 0 {
		return "El torneo acaba de empezar. ¡Todo por decidir!"
	}
	return fmt.Sprintf("%s lidera el torneo con %d juegos a favor y %d partidos ganados.",
		stats[0].Name, stats[0].PG, stats[0].MatchesWon)
}

// ImportPlayers pulls recent matches for the configured club from Playtomic
// and registers any player not yet on the roster. It returns the number of
// players added.
func (s *Service) ImportPlayers(ctx context.Context, days int) (int, error) {
	if s.playtomic == nil || s.tenantID == "" {
		return 0, ErrNotConfigured
	}
	if days <= 0 {
		days = 30
	}

	params := &playtomic.SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,DESC",
		TenantIDs:     []string{s.tenantID},
		FromStartDate: time.Now().AddDate(0, 0, -days).Format("2006-01-02T15:04:05"),
	}
	summaries, err := s.playtomic.GetMatches(params)
	if err != nil {
		return 0, fmt.Errorf("failed to search club matches: %w", err)
	}

	existing, err := s.store.ListPlayers()
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Name] = true
	}

	added := 0
	for _, summary := range summaries {
		select {
		case <-ctx.Done():
			return added, ctx.Err()
		default:
		}

		match, err := s.playtomic.GetSpecificMatch(summary.MatchID)
		if err != nil {
			log.Error("Failed to fetch match during import", "error", err, "matchID", summary.MatchID)
			continue
		}
		for _, team := range match.Teams {
			for _, player := range team.Players {
				if player.Name == "" || known[player.Name] {
					continue
				}
				if err := s.store.AddPlayer(player.Name); err != nil {
					return added, err
				}
				known[player.Name] = true
				added++
			}
		}
	}
	log.Info("Roster import finished", "matches", len(summaries), "playersAdded", added)
	return added, nil
}
