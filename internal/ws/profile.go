package ws

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/vanadisheart-api/internal/logger"
	"github.com/windoze95/vanadisheart-api/internal/middleware"
	"go.uber.org/zap"
)

// WebSocket message types for the profile feed.
const (
	MsgTypeConnected      = "connected"       // Connection confirmed
	MsgTypeProfileUpdated = "profile_updated" // Another request changed the profile
	MsgTypePing           = "ping"            // Client keepalive
	MsgTypePong           = "pong"            // Reply to ping
	MsgTypeError          = "error"           // Error message
)

// WSMessage is the envelope for all messages sent over the profile feed.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ProfileUpdatedPayload names the user and the part of the profile that changed.
type ProfileUpdatedPayload struct {
	UserID string `json:"user_id"`
	Change string `json:"change"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	UserID string `json:"user_id"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ProfileFeedHandler manages WebSocket connections that follow profile changes.
type ProfileFeedHandler struct {
	Hub       *Hub
	JwtSecret string
	upgrader  websocket.Upgrader
}

// NewProfileFeedHandler returns a new ProfileFeedHandler that accepts
// browser connections from allowedOrigins and from localhost.
func NewProfileFeedHandler(hub *Hub, jwtSecret string, allowedOrigins []string) *ProfileFeedHandler {
	return &ProfileFeedHandler{
		Hub:       hub,
		JwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}
		// Allow localhost for development
		return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
	}
}

// HandleProfileFeed upgrades an HTTP request to a WebSocket connection that
// receives the user's profile change events. Authentication is done via a
// "token" query parameter because browsers cannot set headers on WebSocket
// connections.
func (h *ProfileFeedHandler) HandleProfileFeed(c *gin.Context) {
	log := logger.FromGin(c)

	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token query parameter is required"})
		return
	}

	userID, err := middleware.ParseAccessToken(tokenString, h.JwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	client := &Client{
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		RoomID: userID,
		UserID: userID,
	}
	h.Hub.Register <- client

	h.reply(client, MsgTypeConnected, ConnectedPayload{UserID: userID})

	log.Info("profile feed opened", zap.String("user_id", userID))

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// handleMessage answers client keepalives. The feed is otherwise one-way.
func (h *ProfileFeedHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.reply(client, MsgTypeError, ErrorPayload{Message: "invalid message format"})
		return
	}

	switch msg.Type {
	case MsgTypePing:
		h.reply(client, MsgTypePong, struct{}{})
	default:
		h.reply(client, MsgTypeError, ErrorPayload{Message: "unknown message type: " + msg.Type})
	}
}

func (h *ProfileFeedHandler) reply(client *Client, msgType string, payload interface{}) {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		return
	}
	if !h.Hub.SendTo(client, msg) {
		logger.Get().Warn("dropping reply, broadcast queue full", zap.String("user_id", client.UserID))
	}
}
