package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yogeshsaini7172/flingzz-backend/internal/matching"
)

const (
	// Time allowed to write a message to the peer, unless overridden
	// through HubConfig
	defaultWriteWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer, unless overridden through
	// HubConfig
	defaultMaxMessageSize = 64 * 1024 // 64KB

	// Maximum number of queued frames per client
	maxQueuedMessages = 256
)

// Client represents one connected user
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string

	// Rooms this client has already been verified for
	roomsMux sync.Mutex
	rooms    map[string]*matching.ChatRoom

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, maxQueuedMessages),
		userID: userID,
		rooms:  make(map[string]*matching.ChatRoom),
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.processMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued frames into the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("BAD_FRAME", "invalid frame")
		return
	}

	switch WSMessageType(msg.Type) {
	case WSTypeMessage:
		c.handleChatMessage(msg.Data)

	case WSTypeTyping, WSTypeStopTyping:
		c.handleTypingIndicator(WSMessageType(msg.Type), msg.Data)

	default:
		log.Printf("Unknown message type from %s: %s", c.userID, msg.Type)
		c.sendError("UNKNOWN_TYPE", "unknown message type")
	}
}

func (c *Client) handleChatMessage(data json.RawMessage) {
	var frame MessageFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.RoomID == "" || frame.Body == "" {
		c.sendError("BAD_FRAME", "message requires room_id and body")
		return
	}

	frame.SenderID = c.userID
	c.hub.relayToRoom(c, frame.RoomID, newWSMessage(WSTypeMessage, frame))
}

func (c *Client) handleTypingIndicator(msgType WSMessageType, data json.RawMessage) {
	var frame TypingFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.RoomID == "" {
		c.sendError("BAD_FRAME", "typing indicator requires room_id")
		return
	}

	frame.UserID = c.userID
	c.hub.relayToRoom(c, frame.RoomID, newWSMessage(msgType, frame))
}

// authorizedRoom verifies room membership once per room and caches the
// result for the lifetime of the connection
func (c *Client) authorizedRoom(ctx context.Context, roomID string) (*matching.ChatRoom, error) {
	c.roomsMux.Lock()
	room, ok := c.rooms[roomID]
	c.roomsMux.Unlock()
	if ok {
		return room, nil
	}

	room, err := c.hub.authorizer.AuthorizeRoom(ctx, roomID, c.userID)
	if err != nil {
		return nil, err
	}

	c.roomsMux.Lock()
	c.rooms[roomID] = room
	c.roomsMux.Unlock()
	return room, nil
}

func (c *Client) sendError(code, message string) {
	data, err := json.Marshal(newWSMessage(WSTypeError, ErrorFrame{Code: code, Message: message}))
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
