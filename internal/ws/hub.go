package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/pkg/logger"

	"github.com/google/uuid"
)

const EventActivity = "activity"

// ActivityEvent is pushed to a user's sockets whenever an activity is recorded for them.
type ActivityEvent struct {
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type outbound struct {
	userID  uuid.UUID
	payload []byte
}

// Hub tracks open sockets per user. All mutations of the client set happen on
// the Run goroutine; readers take the lock.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	send       chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     log,
	}
}

// Run serves hub events until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Debug("WS connected", "user_id", client.userID, "user_clients", len(set))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.logger.Debug("WS disconnected", "user_id", client.userID)

		case msg := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser queues payload for every socket of userID. It never blocks; the
// message is dropped when the queue is full.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- outbound{userID: userID, payload: payload}:
	default:
		h.logger.Warn("WS message dropped", "user_id", userID, "reason", "buffer_full")
	}
}

// NotifyActivity pushes an activity event to the owner's open sockets.
func (h *Hub) NotifyActivity(_ context.Context, a activity.Activity) {
	if h == nil || !h.Connected(a.UserID) {
		return
	}
	b, err := json.Marshal(ActivityEvent{
		Type:        EventActivity,
		Action:      a.Action,
		Description: a.Description,
		Timestamp:   a.Timestamp,
	})
	if err != nil {
		h.logger.Warn("WS encode failed", "user_id", a.UserID, "error", err)
		return
	}
	h.SendToUser(a.UserID, b)
}

func (h *Hub) Connected(userID uuid.UUID) bool {
	if h == nil {
		return false
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
