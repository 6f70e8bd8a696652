package chat

import (
	"encoding/json"
	"time"
)

// WSMessageType identifies the frame kind on the wire
type WSMessageType string

const (
	WSTypeMessage    WSMessageType = "message"
	WSTypeTyping     WSMessageType = "typing"
	WSTypeStopTyping WSMessageType = "stop_typing"
	WSTypePresence   WSMessageType = "presence"
	WSTypeMatch      WSMessageType = "match"
	WSTypeError      WSMessageType = "error"
)

// WSMessage is the envelope for every websocket frame
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// MessageFrame carries a chat message within a room
type MessageFrame struct {
	RoomID   string `json:"room_id"`
	SenderID string `json:"sender_id,omitempty"`
	Body     string `json:"body"`
}

// TypingFrame signals a typing indicator within a room
type TypingFrame struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id,omitempty"`
}

// Presence statuses carried by PresenceFrame
const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// PresenceFrame announces a participant going online or offline
type PresenceFrame struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// MatchFrame notifies a connected user of a new match
type MatchFrame struct {
	MatchID    int64  `json:"match_id"`
	ChatRoomID string `json:"chat_room_id"`
}

// ErrorFrame is sent back to the offending client
type ErrorFrame struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
