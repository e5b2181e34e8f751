package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/padelnueve/tracker/internal/tournament"
)

// memoryStore is the simulator backend. It mirrors the persistent store's
// behaviour but keeps everything in memory, and destructive roster edits
// reset the active tournament so a spectator can never see a board that
// references players the simulation no longer has.
type memoryStore struct {
	mu      sync.RWMutex
	players []tournament.Player
	active  *tournament.State

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// NewMemory creates an empty in-memory TournamentStore for simulator sessions.
func NewMemory() TournamentStore {
	return &memoryStore{
		subs: make(map[int]func(Event)),
	}
}

func (m *memoryStore) Subscribe(fn func(Event)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *memoryStore) notify(events ...Event) {
	m.subMu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		for _, ev := range events {
			fn(ev)
		}
	}
}

func (m *memoryStore) ListPlayers() ([]tournament.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]tournament.Player, len(m.players))
	copy(players, m.players)
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
	return players, nil
}

func (m *memoryStore) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	m.mu.Lock()
	m.players = append(m.players, tournament.Player{ID: uuid.NewString(), Name: name})
	m.mu.Unlock()

	m.notify(EventPlayers)
	return nil
}

func (m *memoryStore) UpdatePlayer(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	m.mu.Lock()
	for i := range m.players {
		if m.players[i].ID == id {
			m.players[i].Name = name
			break
		}
	}
	m.active = nil
	m.mu.Unlock()

	m.notify(EventPlayers, EventActive)
	return nil
}

func (m *memoryStore) DeletePlayer(id string) error {
	m.mu.Lock()
	for i := range m.players {
		if m.players[i].ID == id {
			m.players = append(m.players[:i], m.players[i+1:]...)
			break
		}
	}
	m.active = nil
	m.mu.Unlock()

	m.notify(EventPlayers, EventActive)
	return nil
}

func (m *memoryStore) GetActiveTournament() (*tournament.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneState(m.active), nil
}

func (m *memoryStore) StartTournament(state *tournament.State) error {
	m.mu.Lock()
	m.active = cloneState(state)
	m.mu.Unlock()

	m.notify(EventActive)
	return nil
}

func (m *memoryStore) UpdateScore(matchIndex int, side tournament.Side, score int) error {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return ErrNoActiveTournament
	}
	if err := tournament.ApplyScore(m.active, matchIndex, side, score); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.notify(EventActive)
	return nil
}

// FinishTournament in the simulator discards the board without archiving,
// so simulated runs never leak into the real ranking history.
func (m *memoryStore) FinishTournament(entry *tournament.HistoryEntry) error {
	m.mu.Lock()
	m.active = nil
	m.mu.Unlock()

	m.notify(EventActive)
	return nil
}

func (m *memoryStore) SuspendTournament() error {
	m.mu.Lock()
	m.active = nil
	m.mu.Unlock()

	m.notify(EventActive)
	return nil
}

func (m *memoryStore) ListHistory() ([]tournament.HistoryEntry, error) {
	return nil, nil
}

func (m *memoryStore) DeleteHistory(ids []string) error {
	return ErrSimulated
}

// cloneState deep-copies a board, including the score pointers, so callers
// can never mutate the stored document through a returned reference.
func cloneState(state *tournament.State) *tournament.State {
	if state == nil {
		return nil
	}
	out := *state
	out.Pairs = make([]tournament.Pair, len(state.Pairs))
	copy(out.Pairs, state.Pairs)
	out.Matches = make([]tournament.Match, len(state.Matches))
	for i, match := range state.Matches {
		out.Matches[i] = match
		if match.Score1 != nil {
			v := *match.Score1
			out.Matches[i].Score1 = &v
		}
		if match.Score2 != nil {
			v := *match.Score2
			out.Matches[i].Score2 = &v
		}
	}
	return &out
}
