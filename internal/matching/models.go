package matching

import "time"

// Direction of a swipe
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Swipe is a directional, immutable swipe event. At most one row
// exists per ordered (swiper, target) pair.
type Swipe struct {
	SwiperID  string    `json:"swiper_id" db:"swiper_id"`
	TargetID  string    `json:"target_id" db:"target_id"`
	Direction Direction `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match links an unordered pair of users. Rows are stored with
// user_a < user_b so (A,B) and (B,A) hit the same uniqueness key.
type Match struct {
	ID        int64     `json:"id" db:"id"`
	UserA     string    `json:"user_a" db:"user_a"`
	UserB     string    `json:"user_b" db:"user_b"`
	Status    string    `json:"status" db:"status"`
	AckedA    bool      `json:"acked_a" db:"acked_a"`
	AckedB    bool      `json:"acked_b" db:"acked_b"`
	MatchedAt time.Time `json:"matched_at" db:"matched_at"`
}

// Contains reports whether the given user is one side of the match
func (m *Match) Contains(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// OtherUser returns the opposite side of the match for the given user
func (m *Match) OtherUser(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

// ChatRoom is owned by exactly one match and created atomically with it
type ChatRoom struct {
	ID        string    `json:"id" db:"id"`
	MatchID   int64     `json:"match_id" db:"match_id"`
	UserA     string    `json:"user_a" db:"user_a"`
	UserB     string    `json:"user_b" db:"user_b"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Contains reports whether the given user is a participant of the room
func (r *ChatRoom) Contains(userID string) bool {
	return r.UserA == userID || r.UserB == userID
}

// OtherUser returns the other participant of the room for the given user
func (r *ChatRoom) OtherUser(userID string) string {
	if r.UserA == userID {
		return r.UserB
	}
	return r.UserA
}

// MatchWithRoom joins a match with its chat room for listings
type MatchWithRoom struct {
	Match
	ChatRoomID string `json:"chat_room_id" db:"chat_room_id"`
}

// CanonicalPair orders two user IDs so that the first is always the
// lesser. Every uniqueness check and insert uses this ordering.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// DTOs

type SwipeActionDTO struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
	Direction    string `json:"direction" validate:"required,oneof=left right"`
}

type SwipeResponse struct {
	Matched    bool   `json:"matched"`
	ChatRoomID string `json:"chatRoomId,omitempty"`
	Message    string `json:"message"`
}

type AckResponse struct {
	MatchID int64 `json:"match_id"`
	Acked   bool  `json:"acked"`
}
