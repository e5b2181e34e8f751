package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/padelnueve/tracker/internal/auth"
	"github.com/padelnueve/tracker/internal/lifecycle"
	"github.com/padelnueve/tracker/internal/pubsub"
	"github.com/padelnueve/tracker/internal/store"
	"github.com/padelnueve/tracker/internal/tournament"
)

// errStoreUnavailable is returned when the persistent store failed to open at
// startup; the simulator keeps working, the real tracker does not.
var errStoreUnavailable = errors.New("store not initialized")

// serviceFor picks the lifecycle instance for the request's role: simulators
// get the sandbox, everyone else the real tracker.
func (s *Server) serviceFor(r *http.Request) (*lifecycle.Service, error) {
	if roleFromContext(r) == auth.RoleSimulator {
		return s.Sim, nil
	}
	if s.Real == nil {
		return nil, errStoreUnavailable
	}
	return s.Real, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps service errors to HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lifecycle.ErrPlayerNotFound),
		errors.Is(err, lifecycle.ErrPairNotFound),
		errors.Is(err, store.ErrNoActiveTournament):
		status = http.StatusNotFound
	case errors.Is(err, lifecycle.ErrSamePlayer),
		errors.Is(err, lifecycle.ErrInvalidScore),
		errors.Is(err, tournament.ErrMatchIndex),
		errors.Is(err, tournament.ErrSide):
		status = http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrPlayerPaired),
		errors.Is(err, lifecycle.ErrPairLimit),
		errors.Is(err, lifecycle.ErrNeedThreePairs),
		errors.Is(err, lifecycle.ErrTournamentActive):
		status = http.StatusConflict
	case errors.Is(err, store.ErrSimulated):
		status = http.StatusForbidden
	case errors.Is(err, lifecycle.ErrNotConfigured),
		errors.Is(err, errStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		role, err := s.Auth.Login(req.Username, req.Password)
		if err != nil {
			log.Info("Rejected login", "username", req.Username)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := s.Auth.GenerateToken(role)
		if err != nil {
			log.Error("Failed to generate token", "error", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{
			"token": token,
			"role":  string(role),
		})
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		players, err := svc.Players()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			respondError(w, err)
			return
		}
		if players == nil {
			players = []tournament.Player{}
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := svc.AddPlayer(req.Name); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := svc.UpdatePlayer(r.PathValue("id"), req.Name); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeletePlayer(r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ImportPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}

		days := 30
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			parsedDays, err := strconv.Atoi(daysStr)
			if err == nil && parsedDays > 0 {
				days = parsedDays
			} else {
				log.Warn("Invalid 'days' parameter provided. Defaulting to 30.", "days_param", daysStr)
			}
		}

		added, err := svc.ImportPlayers(r.Context(), days)
		if err != nil {
			log.Error("Roster import failed", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"playersAdded": added})
	}
}

func (s *Server) ListPairsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, svc.Pairs())
	}
}

func (s *Server) CreatePairHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req struct {
			Player1ID string `json:"player1Id"`
			Player2ID string `json:"player2Id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		pair, err := svc.CreatePair(req.Player1ID, req.Player2ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, pair)
	}
}

func (s *Server) RemovePairHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.RemovePair(r.PathValue("id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ActiveTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		state, err := svc.Active()
		if err != nil {
			respondError(w, err)
			return
		}
		if state == nil {
			respondError(w, store.ErrNoActiveTournament)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) StartTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		state, err := svc.Start(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, state)
	}
}

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req struct {
			MatchIndex int `json:"matchIndex"`
			Side       int `json:"side"`
			Score      int `json:"score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := svc.UpdateScore(req.MatchIndex, tournament.Side(req.Side), req.Score); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) FinishTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		entry, err := svc.Finish(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}

func (s *Server) SuspendTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.Suspend(); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		stats, h2h, err := svc.Standings()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"standings":  stats,
			"h2hMatches": h2h,
		})
	}
}

func (s *Server) SummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		summary, err := svc.Summary(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
	}
}

func (s *Server) AnnounceWinnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		audio, err := svc.AnnounceWinner(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "audio/pcm")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(audio); err != nil {
			log.Error("Failed to write audio response", "error", err)
		}
	}
}

func (s *Server) ListHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		history, err := svc.History()
		if err != nil {
			respondError(w, err)
			return
		}
		if history == nil {
			history = []tournament.HistoryEntry{}
		}
		respondJSON(w, http.StatusOK, history)
	}
}

func (s *Server) DeleteHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := svc.DeleteHistory(req.IDs); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.serviceFor(r)
		if err != nil {
			respondError(w, err)
			return
		}
		rankings, err := svc.Rankings()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rankings)
	}
}

// TournamentFinishedHandler consumes the Pub/Sub push delivery for archived
// tournaments and posts the final board to Slack.
func (s *Server) TournamentFinishedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		var pubsubMsg struct {
			Message struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal push envelope", "error", err)
			http.Error(w, "Invalid push envelope", http.StatusBadRequest)
			return
		}

		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		payload := pubsub.TournamentFinishedPayload{}
		if err := s.PubSub.ProcessMessage(rawData, &payload); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Processing tournament finished event", "entryID", payload.EntryID)

		if s.Real == nil {
			http.Error(w, "Store not initialized", http.StatusServiceUnavailable)
			return
		}
		history, err := s.Real.History()
		if err != nil {
			respondError(w, err)
			return
		}
		var entry *tournament.HistoryEntry
		for i := range history {
			if history[i].ID == payload.EntryID {
				entry = &history[i]
				break
			}
		}
		if entry == nil {
			log.Warn("Archived entry not found for finished event", "entryID", payload.EntryID)
			// Acknowledge anyway; redelivery will not help.
			w.Write([]byte("OK"))
			return
		}

		if s.Notifier != nil {
			if err := s.Notifier.SendFinalStandings(entry, isDryRun); err != nil {
				log.Error("Failed to send final standings", "error", err, "entryID", entry.ID)
				http.Error(w, "Failed to send final standings", http.StatusInternalServerError)
				return
			}
		}
		w.Write([]byte("OK"))
	}
}
