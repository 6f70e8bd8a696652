package matching

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
)

func newHandlerServer(t *testing.T, svc Service) *mux.Router {
	t.Helper()

	handler := NewHandler(svc)
	router := mux.NewRouter()
	router.HandleFunc("/swipe", handler.SwipeAction).Methods("POST")
	router.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	router.HandleFunc("/matches/{id}/ack", handler.AckMatch).Methods("POST")
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSwipeActionHandler(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")
	router := newHandlerServer(t, svc)

	rec := doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "bob", Direction: "right"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SwipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Matched)

	// Reciprocal swipe matches and returns the room
	rec = doRequest(t, router, "POST", "/swipe", "bob", SwipeActionDTO{TargetUserID: "alice", Direction: "right"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Matched)
	assert.NotEmpty(t, resp.ChatRoomID)
}

func TestSwipeActionHandlerValidation(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")
	router := newHandlerServer(t, svc)

	// Unknown direction rejected before any core logic runs
	rec := doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "bob", Direction: "up"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing target
	rec = doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{Direction: "right"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Self swipe
	rec = doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "alice", Direction: "right"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown target
	rec = doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "ghost", Direction: "right"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No principal
	rec = doRequest(t, router, "POST", "/swipe", "", SwipeActionDTO{TargetUserID: "bob", Direction: "right"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMatchesHandler(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")
	router := newHandlerServer(t, svc)

	doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "bob", Direction: "right"})
	doRequest(t, router, "POST", "/swipe", "bob", SwipeActionDTO{TargetUserID: "alice", Direction: "right"})

	rec := doRequest(t, router, "GET", "/matches", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Matches []MatchWithRoom `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.NotEmpty(t, resp.Matches[0].ChatRoomID)
}

func TestAckMatchHandler(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")
	router := newHandlerServer(t, svc)

	doRequest(t, router, "POST", "/swipe", "alice", SwipeActionDTO{TargetUserID: "bob", Direction: "right"})
	doRequest(t, router, "POST", "/swipe", "bob", SwipeActionDTO{TargetUserID: "alice", Direction: "right"})

	rec := doRequest(t, router, "POST", "/matches/1/ack", "alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "POST", "/matches/99/ack", "alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "POST", "/matches/not-a-number/ack", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
