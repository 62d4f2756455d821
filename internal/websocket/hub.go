package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"studybuddy-backend/internal/services"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type tokenParser interface {
	ParseStudentID(token string) (uuid.UUID, error)
}

// Subscriber delivers the payloads published on a channel until ctx is cancelled, then closes
// the returned channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) <-chan string
}

type RedisSubscriber struct {
	client *redis.Client
}

func NewRedisSubscriber(client *redis.Client) *RedisSubscriber {
	return &RedisSubscriber{client: client}
}

func (s *RedisSubscriber) Subscribe(ctx context.Context, channel string) <-chan string {
	out := make(chan string)
	pubsub := s.client.Subscribe(ctx, channel)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// client serializes writes to one connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans out each student's realtime channel to that student's open websocket connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*client
	subscriber  Subscriber
	tokens      tokenParser
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(subscriber Subscriber, tokens tokenParser) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*client),
		subscriber:  subscriber,
		tokens:      tokens,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	studentID, err := h.tokens.ParseStudentID(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn}
	h.registerConnection(studentID, c)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(studentID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ConnectionCount returns the number of open connections of a student.
func (h *Hub) ConnectionCount(studentID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[studentID])
}

func (h *Hub) registerConnection(studentID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[studentID] = append(h.connections[studentID], c)

	// Subscribe on the first connection of this student
	if len(h.connections[studentID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[studentID] = cancel
		messages := h.subscriber.Subscribe(ctx, services.StudentChannel(studentID))
		go h.forward(studentID, messages)
	}

	log.Printf("WebSocket connected: student %s (total: %d)", studentID, len(h.connections[studentID]))
}

func (h *Hub) unregisterConnection(studentID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.conn.Close()

	conns := h.connections[studentID]
	for i, existing := range conns {
		if existing == c {
			h.connections[studentID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[studentID]) == 0 {
		delete(h.connections, studentID)
		if cancel, ok := h.cancelFuncs[studentID]; ok {
			cancel()
			delete(h.cancelFuncs, studentID)
		}
	}

	log.Printf("WebSocket disconnected: student %s", studentID)
}

func (h *Hub) forward(studentID uuid.UUID, messages <-chan string) {
	for payload := range messages {
		h.broadcast(studentID, []byte(payload))
	}
}

func (h *Hub) broadcast(studentID uuid.UUID, data []byte) {
	h.mu.RLock()
	conns := append([]*client(nil), h.connections[studentID]...)
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.write(data); err != nil {
			log.Printf("WebSocket write failed for student %s: %v", studentID, err)
		}
	}
}
