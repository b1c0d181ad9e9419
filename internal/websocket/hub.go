package websocket

import (
	"sync"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub fans activity-feed events out to every connection a user holds.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan *delivery
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	logger     *zap.Logger
	mu         sync.RWMutex
}

type delivery struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *delivery, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, set := range h.clients {
				for client := range set {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.userID] = set
			}
			set[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case d := <-h.deliver:
			h.mu.Lock()
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.data:
				default:
					// Slow consumer; drop the connection rather than block.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	client.Close()
}

// Stop shuts the hub down and closes every client. It blocks until Run
// has returned.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns how many live connections a user has.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) NotifyActivity(userID uuid.UUID, entry *domain.ActivityLogEntry) {
	h.send(userID, MessageTypeActivity, entry)
}

func (h *Hub) NotifyPoints(userID uuid.UUID, balance int) {
	h.send(userID, MessageTypePoints, PointsPayload{Balance: balance})
}

// send never blocks the caller: events are dropped when the hub is gone or
// its queue is full.
func (h *Hub) send(userID uuid.UUID, msgType MessageType, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		h.logger.Warn("failed to encode feed message", zap.Error(err), zap.String("type", string(msgType)))
		return
	}

	select {
	case h.deliver <- &delivery{userID: userID, data: data}:
	case <-h.done:
	default:
		h.logger.Warn("feed queue full, dropping event",
			zap.String("user_id", userID.String()),
			zap.String("type", string(msgType)))
	}
}
