package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"keep-notes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const hubModule = "Hub"

// ClusterChannel carries state pushes between instances.
const ClusterChannel = "cluster_events"

// Message is the frame written to clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterPayload struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

type Hub struct {
	// UserID -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	// done is closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, may be nil
	rdb *redis.Client

	// instanceID lets the hub skip its own cluster messages
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join hands the client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands the client to Run for removal; it is a no-op once the hub has
// stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info(hubModule, "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// SendState pushes a state snapshot to every connection of the user, on this
// instance and, through Redis, on the others.
func (h *Hub) SendState(userID uuid.UUID, state interface{}) {
	data, err := json.Marshal(Message{Type: "state", Data: state})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode state", map[string]interface{}{"error": err, "user_id": userID})
		return
	}

	h.deliver(userID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{
			Origin:       h.instanceID,
			TargetUserID: userID.String(),
			Message:      data,
		})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn(hubModule, "Failed to publish to cluster", map[string]interface{}{"error": err})
		}
	}
}

// Connections reports how many local connections the user has.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn(hubModule, "Client Send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			go h.leave(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn(hubModule, "Redis msg parse error", map[string]interface{}{"error": err})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliver(uid, payload.Message)
	}
}
