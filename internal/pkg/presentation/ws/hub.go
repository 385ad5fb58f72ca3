package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

// conn is the part of a websocket connection the hub needs.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session is one connected realtime client. Writes are serialized per
// session, the underlying connection allows only one concurrent writer.
type Session struct {
	mu   sync.Mutex
	conn conn
}

func (s *Session) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks connected sessions and broadcasts serialized messages to
// all of them. Delivery is best effort, a failed session is dropped and
// the remaining deliveries continue.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
	log      *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		log:      log,
	}
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s] = struct{}{}
	h.log.Info("realtime client connected", "active", len(h.sessions))
}

func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s]; ok {
		delete(h.sessions, s)
		h.log.Info("realtime client disconnected", "active", len(h.sessions))
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast serializes the envelope once and delivers it to every
// session open at the time of the call. Sends happen outside the lock,
// sessions that fail to take the message are removed.
func (h *Hub) Broadcast(env types.Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		h.log.Error("failed to marshal broadcast message", "err", err.Error())
		return
	}

	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if err := s.send(b); err != nil {
			h.log.Error("failed to send to realtime client, removing session", "err", err.Error())
			s.conn.Close()
			h.Unregister(s)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades an incoming request and keeps the session registered
// until the client goes away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Error("failed to upgrade websocket connection", "err", err.Error())
			return
		}

		s := &Session{conn: c}
		h.Register(s)

		defer func() {
			h.Unregister(s)
			c.Close()
		}()

		// The bridge only broadcasts, reading serves to detect the
		// client closing the connection.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
