package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// claimChannel carries newly claimed territories between server instances.
const claimChannel = "territory:claims"

// Hub fans freshly claimed territories out to connected clients. With redis
// configured the claim travels through pub/sub so every instance delivers it;
// without redis delivery is process-local.
type Hub struct {
	redis   *redis.Client
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, 64)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Broadcast delivers one claim payload. When redis is available the payload
// goes through pub/sub only; the subscriber loop handles local fanout, so a
// claim never reaches the same client twice.
func (h *Hub) Broadcast(payload []byte) {
	if h.redis != nil {
		if err := h.redis.Publish(context.Background(), claimChannel, payload).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
		return
	}
	h.fanout(payload)
}

func (h *Hub) fanout(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), claimChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.fanout([]byte(msg.Payload))
	}
}
