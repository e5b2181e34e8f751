package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/padelnueve/tracker/internal/tournament"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is token-authenticated; cross-origin browser clients are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveSnapshot is the message broadcast to every live viewer whenever the
// real tournament changes.
type liveSnapshot struct {
	Players   []tournament.Player      `json:"players"`
	State     *tournament.State        `json:"state"`
	Standings []tournament.RankingStat `json:"standings"`
	H2H       tournament.H2HStats      `json:"h2hMatches"`
}

// hub tracks connected live viewers. Clients with a full send buffer are
// dropped rather than allowed to stall the broadcast.
type hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newHub() *hub {
	return &hub{clients: make(map[*client]bool)}
}

func (h *hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	log.Info("Live viewer connected", "viewers", count)
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	log.Info("Live viewer disconnected", "viewers", count)
}

func (h *hub) broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// broadcastLive pushes a fresh snapshot of the real tournament to every
// connected viewer.
func (s *Server) broadcastLive() {
	if s.Real == nil {
		return
	}
	snapshot, err := s.buildSnapshot()
	if err != nil {
		log.Error("Failed to build live snapshot", "error", err)
		return
	}
	message, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("Failed to marshal live snapshot", "error", err)
		return
	}
	s.hub.broadcast(message)
}

func (s *Server) buildSnapshot() (*liveSnapshot, error) {
	players, err := s.Real.Players()
	if err != nil {
		return nil, err
	}
	state, err := s.Real.Active()
	if err != nil {
		return nil, err
	}

	snapshot := &liveSnapshot{
		Players: players,
		State:   state,
	}
	if state != nil {
		snapshot.Standings = tournament.CalculateLiveStats(*state)
		snapshot.H2H = tournament.CalculateH2H(*state)
	}
	return snapshot, nil
}

// LiveHandler upgrades the connection and streams board snapshots. The first
// snapshot is sent immediately so new viewers do not wait for a change.
func (s *Server) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Real == nil {
			http.Error(w, "Store not initialized", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade live connection", "error", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, 8)}
		s.hub.register(c)

		if snapshot, err := s.buildSnapshot(); err == nil {
			if message, err := json.Marshal(snapshot); err == nil {
				select {
				case c.send <- message:
				default:
				}
			}
		}

		go s.writePump(c)
		go s.readPump(c)
	}
}

// writePump delivers broadcasts and pings to one viewer.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages; the live socket is one-way. It exists
// to notice closed connections and keep the pong deadline fresh.
func (s *Server) readPump(c *client) {
	defer func() {
		s.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
