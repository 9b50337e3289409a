package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/services"
	"github.com/rs/zerolog/log"
)

// sendBuffer is how many events a connection may fall behind before the hub
// gives up on it.
const sendBuffer = 16

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	send chan services.SubmissionEvent
}

// Hub fans submission events out to every open connection of the quiz
// author. A teacher may hold several connections at once. Each connection
// is written by its own goroutine, so publishing never waits on a socket.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]map[Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[Conn]*client)}
}

func (h *Hub) Register(teacherID uuid.UUID, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[teacherID]
	if !ok {
		conns = make(map[Conn]*client)
		h.clients[teacherID] = conns
	}
	if _, dup := conns[conn]; dup {
		return
	}
	cl := &client{send: make(chan services.SubmissionEvent, sendBuffer)}
	conns[conn] = cl
	go h.writeLoop(teacherID, conn, cl.send)
	log.Debug().Str("teacher", teacherID.String()).Int("connections", len(conns)).Msg("live client registered")
}

func (h *Hub) Unregister(teacherID uuid.UUID, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(teacherID, conn)
}

// drop forgets conn and stops its writer. Callers hold h.mu.
func (h *Hub) drop(teacherID uuid.UUID, conn Conn) {
	conns, ok := h.clients[teacherID]
	if !ok {
		return
	}
	cl, ok := conns[conn]
	if !ok {
		return
	}
	close(cl.send)
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, teacherID)
	}
}

func (h *Hub) writeLoop(teacherID uuid.UUID, conn Conn, send <-chan services.SubmissionEvent) {
	for event := range send {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn().Err(err).Str("teacher", teacherID.String()).Msg("dropping live client")
			h.Unregister(teacherID, conn)
			conn.Close()
			return
		}
	}
}

// Connections reports how many live connections the teacher holds.
func (h *Hub) Connections(teacherID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[teacherID])
}

// PublishSubmission queues the event for every connection of teacherID.
// A connection whose queue is full is closed and forgotten.
func (h *Hub) PublishSubmission(teacherID uuid.UUID, event services.SubmissionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, cl := range h.clients[teacherID] {
		select {
		case cl.send <- event:
		default:
			log.Warn().Str("teacher", teacherID.String()).Msg("live client fell behind, dropping")
			h.drop(teacherID, conn)
			conn.Close()
		}
	}
}

var _ services.SubmissionPublisher = (*Hub)(nil)
