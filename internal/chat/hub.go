package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/yogeshsaini7172/flingzz-backend/internal/events"
	"github.com/yogeshsaini7172/flingzz-backend/internal/matching"
)

// RoomAuthorizer resolves whether a user belongs to a chat room and
// which matches the user holds. Only matched pairs ever share a room.
type RoomAuthorizer interface {
	AuthorizeRoom(ctx context.Context, roomID, userID string) (*matching.ChatRoom, error)
	GetMatches(ctx context.Context, userID string) ([]matching.MatchWithRoom, error)
}

// HubConfig tunes per-connection limits. Zero values fall back to the
// defaults in client.go.
type HubConfig struct {
	MaxMessageSize int64
	WriteTimeout   time.Duration
}

// Hub maintains active websocket connections and relays room frames
// between matched participants. Messages are not persisted here.
type Hub struct {
	clients    map[string]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client

	authorizer RoomAuthorizer

	maxMessageSize int64
	writeTimeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(authorizer RoomAuthorizer, cfg HubConfig) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteWait
	}

	return &Hub{
		clients:        make(map[string]*Client),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		authorizer:     authorizer,
		maxMessageSize: cfg.MaxMessageSize,
		writeTimeout:   cfg.WriteTimeout,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (h *Hub) Run() {
	defer h.cleanup()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			return
		}
	}
}

// ListenEvents forwards match events from the bus to connected users.
// It returns when the context is cancelled.
func (h *Hub) ListenEvents(ctx context.Context, bus *events.Bus) {
	ch := bus.Subscribe(ctx)
	for event := range ch {
		if event.Type != events.TypeMatchCreated {
			continue
		}

		frame := MatchFrame{}
		if id, ok := event.Payload["match_id"].(int64); ok {
			frame.MatchID = id
		}
		if roomID, ok := event.Payload["chat_room_id"].(string); ok {
			frame.ChatRoomID = roomID
		}

		msg := newWSMessage(WSTypeMatch, frame)
		for _, userID := range event.UserIDs {
			h.SendToUser(userID, msg)
		}
		RecordMatchNotification()
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()

	if oldClient, exists := h.clients[client.userID]; exists {
		oldClient.close()
	}
	h.clients[client.userID] = client
	total := len(h.clients)

	h.clientsMux.Unlock()

	SetActiveConnections(total)
	log.Printf("User %s connected. Total clients: %d", client.userID, total)
	go h.broadcastPresence(client.userID, PresenceOnline)
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()

	current, exists := h.clients[client.userID]
	if exists && current == client {
		client.close()
		delete(h.clients, client.userID)
	}
	total := len(h.clients)

	h.clientsMux.Unlock()

	if exists && current == client {
		SetActiveConnections(total)
		log.Printf("User %s disconnected. Total clients: %d", client.userID, total)
		go h.broadcastPresence(client.userID, PresenceOffline)
	}
}

// broadcastPresence tells every online matched peer that the user went
// online or offline
func (h *Hub) broadcastPresence(userID, status string) {
	matches, err := h.authorizer.GetMatches(h.ctx, userID)
	if err != nil {
		log.Printf("Presence lookup failed for %s: %v", userID, err)
		return
	}

	msg := newWSMessage(WSTypePresence, PresenceFrame{UserID: userID, Status: status})
	for i := range matches {
		h.SendToUser(matches[i].OtherUser(userID), msg)
	}
}

// relayToRoom forwards a frame from the sender to the other room
// participant. Membership is verified before anything is delivered.
func (h *Hub) relayToRoom(client *Client, roomID string, msg WSMessage) {
	room, err := client.authorizedRoom(h.ctx, roomID)
	if err != nil {
		client.sendError("FORBIDDEN", "not a participant of this room")
		return
	}

	peer := room.OtherUser(client.userID)
	h.SendToUser(peer, msg)
	RecordFrameRelayed(msg.Type)
}

func (h *Hub) SendToUser(userID string, message WSMessage) {
	h.clientsMux.RLock()
	client, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling message: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) IsUserOnline(userID string) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) GetActiveConnections() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[string]*Client)
	h.clientsMux.Unlock()

	h.wg.Wait()
}

func newWSMessage(msgType WSMessageType, data interface{}) WSMessage {
	return WSMessage{
		Type:      string(msgType),
		Data:      mustMarshalJSON(data),
		Timestamp: time.Now(),
	}
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshalling: %v", err)
		return json.RawMessage(`{}`)
	}
	return data
}
