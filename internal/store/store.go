package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/padelnueve/tracker/internal/tournament"
)

// store handles all database operations for the tracker. Documents with
// nested structure (the active tournament, history entries) are kept as JSON
// columns, mirroring the document model of the hosted database.
type store struct {
	db *sql.DB
	mu sync.RWMutex

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New creates a TournamentStore backed by the given database.
func New(db *sql.DB) TournamentStore {
	return &store{
		db:   db,
		subs: make(map[int]func(Event)),
	}
}

func (s *store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// notify fans a change event out to every subscriber. Called after the write
// committed and after the store lock was released.
func (s *store) notify(events ...Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		for _, ev := range events {
			fn(ev)
		}
	}
}

func (s *store) ListPlayers() ([]tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM players ORDER BY name COLLATE NOCASE ASC")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []tournament.Player
	for rows.Next() {
		var p tournament.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		log.Debug("Ignoring empty player name")
		return nil
	}

	s.mu.Lock()
	_, err := s.db.Exec("INSERT INTO players (id, name) VALUES (?, ?)", uuid.NewString(), name)
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to add player", "error", err, "name", name)
		return err
	}

	s.notify(EventPlayers)
	return nil
}

func (s *store) UpdatePlayer(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		log.Debug("Ignoring empty rename", "playerID", id)
		return nil
	}

	s.mu.Lock()
	_, err := s.db.Exec("UPDATE players SET name = ? WHERE id = ?", name, id)
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to update player", "error", err, "playerID", id)
		return err
	}

	s.notify(EventPlayers)
	return nil
}

func (s *store) DeletePlayer(id string) error {
	s.mu.Lock()
	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", id)
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", id)
		return err
	}

	s.notify(EventPlayers)
	return nil
}

func (s *store) GetActiveTournament() (*tournament.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getActiveLocked()
}

func (s *store) getActiveLocked() (*tournament.State, error) {
	var stateJSON string
	err := s.db.QueryRow("SELECT state_json FROM tournament_active WHERE id = 1").Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state tournament.State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active tournament: %w", err)
	}
	return &state, nil
}

func (s *store) StartTournament(state *tournament.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, err = s.db.Exec(`
		INSERT INTO tournament_active (id, state_json) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET state_json = excluded.state_json;
	`, string(stateJSON))
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to write active tournament", "error", err)
		return err
	}

	s.notify(EventActive)
	return nil
}

func (s *store) UpdateScore(matchIndex int, side tournament.Side, score int) error {
	s.mu.Lock()
	state, err := s.getActiveLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if state == nil {
		s.mu.Unlock()
		return ErrNoActiveTournament
	}

	if err := tournament.ApplyScore(state, matchIndex, side, score); err != nil {
		s.mu.Unlock()
		return err
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	_, err = s.db.Exec("UPDATE tournament_active SET state_json = ? WHERE id = 1", string(stateJSON))
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to rewrite active tournament", "error", err, "matchIndex", matchIndex)
		return err
	}

	s.notify(EventActive)
	return nil
}

// FinishTournament inserts the history document and deletes the active slot
// in a single transaction, so the lifecycle transition is never half-applied.
func (s *store) FinishTournament(entry *tournament.HistoryEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec("INSERT INTO history (id, date, entry_json) VALUES (?, ?, ?)",
			entry.ID, entry.Date, string(entryJSON)); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec("DELETE FROM tournament_active WHERE id = 1"); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}()
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to archive tournament", "error", err, "entryID", entry.ID)
		return err
	}

	s.notify(EventHistory, EventActive)
	return nil
}

func (s *store) SuspendTournament() error {
	s.mu.Lock()
	_, err := s.db.Exec("DELETE FROM tournament_active WHERE id = 1")
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to suspend tournament", "error", err)
		return err
	}

	s.notify(EventActive)
	return nil
}

func (s *store) ListHistory() ([]tournament.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT entry_json FROM history ORDER BY date DESC")
	if err != nil {
		log.Error("Failed to query history", "error", err)
		return nil, err
	}
	defer rows.Close()

	var entries []tournament.HistoryEntry
	for rows.Next() {
		var entryJSON string
		if err := rows.Scan(&entryJSON); err != nil {
			log.Error("Failed to scan history row", "error", err)
			continue
		}
		var entry tournament.HistoryEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			log.Error("Failed to unmarshal history entry", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *store) DeleteHistory(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	err := func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := tx.Exec("DELETE FROM history WHERE id = ?", id); err != nil {
				tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	}()
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to delete history entries", "error", err, "count", len(ids))
		return err
	}

	s.notify(EventHistory)
	return nil
}
