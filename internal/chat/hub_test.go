package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
	"github.com/yogeshsaini7172/flingzz-backend/internal/events"
	"github.com/yogeshsaini7172/flingzz-backend/internal/matching"
)

// fakeAuthorizer grants room access from a static membership table
type fakeAuthorizer struct {
	rooms map[string]*matching.ChatRoom
}

func (a *fakeAuthorizer) AuthorizeRoom(_ context.Context, roomID, userID string) (*matching.ChatRoom, error) {
	room, ok := a.rooms[roomID]
	if !ok {
		return nil, matching.ErrRoomNotFound
	}
	if !room.Contains(userID) {
		return nil, matching.ErrNotParticipant
	}
	return room, nil
}

func (a *fakeAuthorizer) GetMatches(_ context.Context, userID string) ([]matching.MatchWithRoom, error) {
	var result []matching.MatchWithRoom
	var id int64
	for _, room := range a.rooms {
		if room.Contains(userID) {
			id++
			result = append(result, matching.MatchWithRoom{
				Match:      matching.Match{ID: id, UserA: room.UserA, UserB: room.UserB, Status: "active"},
				ChatRoomID: room.ID,
			})
		}
	}
	return result, nil
}

type testServer struct {
	hub    *Hub
	server *httptest.Server
}

func newTestServer(t *testing.T, authorizer RoomAuthorizer) *testServer {
	t.Helper()

	hub := NewHub(authorizer, HubConfig{})
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	handler := NewHandler(hub, []string{"*"})

	// The test server injects the principal the way the auth
	// middleware would
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-Test-User")
		handler.ServeWS(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	}))
	t.Cleanup(server.Close)

	return &testServer{hub: hub, server: server}
}

func (ts *testServer) connect(t *testing.T, userID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.server.URL, "http")
	header := http.Header{"X-Test-User": []string{userID}}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Wait for the hub to register the connection
	require.Eventually(t, func() bool {
		return ts.hub.IsUserOnline(userID)
	}, time.Second, 10*time.Millisecond)

	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	// writePump may batch frames; take the first
	line := data
	if idx := strings.IndexByte(string(data), '\n'); idx >= 0 {
		line = data[:idx]
	}

	var msg WSMessage
	require.NoError(t, json.Unmarshal(line, &msg))
	return msg
}

func sendFrame(t *testing.T, conn *websocket.Conn, msgType WSMessageType, payload interface{}) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(WSMessage{
		Type:      string(msgType),
		Data:      data,
		Timestamp: time.Now(),
	}))
}

func TestHubRelaysMessageToPeer(t *testing.T) {
	authorizer := &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{
		"room-1": {ID: "room-1", UserA: "alice", UserB: "bob"},
	}}
	ts := newTestServer(t, authorizer)

	alice := ts.connect(t, "alice")
	bob := ts.connect(t, "bob")

	sendFrame(t, alice, WSTypeMessage, MessageFrame{RoomID: "room-1", Body: "hey"})

	msg := readFrame(t, bob)
	assert.Equal(t, string(WSTypeMessage), msg.Type)

	var frame MessageFrame
	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, "room-1", frame.RoomID)
	assert.Equal(t, "alice", frame.SenderID)
	assert.Equal(t, "hey", frame.Body)
}

func TestHubRejectsNonParticipant(t *testing.T) {
	authorizer := &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{
		"room-1": {ID: "room-1", UserA: "alice", UserB: "bob"},
	}}
	ts := newTestServer(t, authorizer)

	carol := ts.connect(t, "carol")

	sendFrame(t, carol, WSTypeMessage, MessageFrame{RoomID: "room-1", Body: "let me in"})

	msg := readFrame(t, carol)
	assert.Equal(t, string(WSTypeError), msg.Type)

	var frame ErrorFrame
	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, "FORBIDDEN", frame.Code)
}

func TestHubRelaysTypingIndicator(t *testing.T) {
	authorizer := &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{
		"room-1": {ID: "room-1", UserA: "alice", UserB: "bob"},
	}}
	ts := newTestServer(t, authorizer)

	alice := ts.connect(t, "alice")
	bob := ts.connect(t, "bob")

	sendFrame(t, alice, WSTypeTyping, TypingFrame{RoomID: "room-1"})

	msg := readFrame(t, bob)
	assert.Equal(t, string(WSTypeTyping), msg.Type)

	var frame TypingFrame
	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, "alice", frame.UserID)
}

func TestHubDeliversMatchEvents(t *testing.T) {
	ts := newTestServer(t, &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{}})

	bus := events.NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ts.hub.ListenEvents(ctx, bus)

	alice := ts.connect(t, "alice")

	// Give the listener time to subscribe before publishing
	require.Eventually(t, func() bool {
		return bus.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	bus.Publish(events.NewEvent(events.TypeMatchCreated, []string{"alice", "bob"}, map[string]interface{}{
		"match_id":     int64(7),
		"chat_room_id": "room-7",
	}))

	msg := readFrame(t, alice)
	assert.Equal(t, string(WSTypeMatch), msg.Type)

	var frame MatchFrame
	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, int64(7), frame.MatchID)
	assert.Equal(t, "room-7", frame.ChatRoomID)
}

func TestHubBroadcastsPresenceToMatchedPeers(t *testing.T) {
	authorizer := &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{
		"room-1": {ID: "room-1", UserA: "alice", UserB: "bob"},
	}}
	ts := newTestServer(t, authorizer)

	alice := ts.connect(t, "alice")
	bob := ts.connect(t, "bob")

	msg := readFrame(t, alice)
	assert.Equal(t, string(WSTypePresence), msg.Type)

	var frame PresenceFrame
	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, "bob", frame.UserID)
	assert.Equal(t, PresenceOnline, frame.Status)

	bob.Close()
	require.Eventually(t, func() bool {
		return !ts.hub.IsUserOnline("bob")
	}, time.Second, 10*time.Millisecond)

	msg = readFrame(t, alice)
	assert.Equal(t, string(WSTypePresence), msg.Type)

	require.NoError(t, json.Unmarshal(msg.Data, &frame))
	assert.Equal(t, "bob", frame.UserID)
	assert.Equal(t, PresenceOffline, frame.Status)
}

func TestHubReplacesDuplicateConnection(t *testing.T) {
	ts := newTestServer(t, &fakeAuthorizer{rooms: map[string]*matching.ChatRoom{}})

	first := ts.connect(t, "alice")
	_ = first

	second := ts.connect(t, "alice")
	_ = second

	assert.Equal(t, 1, ts.hub.GetActiveConnections())
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	req := httptest.NewRequest("GET", "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	wildcard := originChecker([]string{"*"})
	assert.True(t, wildcard(req))
}
