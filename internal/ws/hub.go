package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Pending broadcasts the hub buffers before dropping new ones.
	broadcastBuffer = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	RoomID string
	UserID string
}

// Hub maintains active rooms and broadcasts messages. Each user's open tabs
// share one room keyed by the user ID.
type Hub struct {
	Rooms      map[string]map[*Client]bool // roomID -> set of clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *RoomMessage
	mu         sync.RWMutex
}

// RoomMessage carries a message destined for a specific room.
type RoomMessage struct {
	RoomID  string
	Message []byte
	Sender  *Client // nil for system messages
	Target  *Client // when set, only this client receives the message
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *RoomMessage, broadcastBuffer),
	}
}

// Run handles register, unregister, and broadcast events. It should be
// launched as a goroutine.
func (h *Hub) Run() {
	log := logger.Get()

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.RoomID] == nil {
				h.Rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.Rooms[client.RoomID][client] = true
			h.mu.Unlock()

			log.Info("client registered",
				zap.String("room_id", client.RoomID),
				zap.String("user_id", client.UserID),
			)

		case client := <-h.Unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

			log.Info("client unregistered",
				zap.String("room_id", client.RoomID),
				zap.String("user_id", client.UserID),
			)

		case msg := <-h.Broadcast:
			var slow []*Client
			h.mu.RLock()
			for client := range h.Rooms[msg.RoomID] {
				// Skip sender if present
				if msg.Sender != nil && client == msg.Sender {
					continue
				}
				if msg.Target != nil && client != msg.Target {
					continue
				}
				select {
				case client.Send <- msg.Message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			// Clients whose send buffer is full are disconnected.
			if len(slow) > 0 {
				h.mu.Lock()
				for _, client := range slow {
					h.removeLocked(client)
				}
				h.mu.Unlock()
			}
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.Rooms[client.RoomID]
	if !ok {
		return
	}
	if _, exists := clients[client]; exists {
		delete(clients, client)
		close(client.Send)
		if len(clients) == 0 {
			delete(h.Rooms, client.RoomID)
		}
	}
}

// ClientCount returns the number of clients in a room.
func (h *Hub) ClientCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Rooms[roomID])
}

// ProfileChanged broadcasts a profile_updated message to the user's room.
// It never blocks; when the broadcast queue is full the event is dropped.
func (h *Hub) ProfileChanged(userID, change string) {
	msg, err := newMessage(MsgTypeProfileUpdated, ProfileUpdatedPayload{UserID: userID, Change: change})
	if err != nil {
		logger.Get().Error("failed to encode profile update", zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- &RoomMessage{RoomID: userID, Message: msg}:
	default:
		logger.Get().Warn("dropping profile update, broadcast queue full",
			zap.String("user_id", userID),
			zap.String("change", change),
		)
	}
}

// SendTo queues msg for a single client. The hub only delivers it while the
// client is still registered, so callers never write to a closed Send. It
// reports false when the broadcast queue is full.
func (h *Hub) SendTo(client *Client, msg []byte) bool {
	select {
	case h.Broadcast <- &RoomMessage{RoomID: client.RoomID, Message: msg, Target: client}:
		return true
	default:
		return false
	}
}

func newMessage(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: msgType, Payload: raw})
}

// ReadPump reads messages from the WebSocket connection. It is intended to be
// run in a per-client goroutine. The provided handler is called for each
// incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("room_id", c.RoomID),
					zap.String("user_id", c.UserID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
