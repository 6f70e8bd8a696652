package matching

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository persists swipes, matches and chat rooms
type Repository interface {
	InsertSwipe(ctx context.Context, swipe *Swipe) (bool, error)
	SwipeExists(ctx context.Context, swiperID, targetID string) (bool, error)
	HasRightSwipe(ctx context.Context, swiperID, targetID string) (bool, error)
	CreateMatchWithRoom(ctx context.Context, userA, userB string) (*Match, *ChatRoom, bool, error)
	GetMatchWithRoomByPair(ctx context.Context, userA, userB string) (*Match, *ChatRoom, error)
	GetMatchByID(ctx context.Context, matchID int64) (*Match, error)
	ListMatchesForUser(ctx context.Context, userID string) ([]MatchWithRoom, error)
	AcknowledgeMatch(ctx context.Context, matchID int64, userID string) error
	GetRoom(ctx context.Context, roomID string) (*ChatRoom, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// InsertSwipe records a swipe once. Returns false when the ordered
// pair already has a swipe, which makes resubmission a no-op.
func (r *postgresRepository) InsertSwipe(ctx context.Context, swipe *Swipe) (bool, error) {
	query := `
		INSERT INTO swipes (swiper_id, target_id, direction)
		VALUES ($1, $2, $3)
		ON CONFLICT (swiper_id, target_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, swipe.SwiperID, swipe.TargetID, swipe.Direction)
	if err != nil {
		return false, fmt.Errorf("failed to insert swipe: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read swipe insert result: %w", err)
	}
	return rows > 0, nil
}

func (r *postgresRepository) SwipeExists(ctx context.Context, swiperID, targetID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND target_id = $2
		)`

	if err := r.db.GetContext(ctx, &exists, query, swiperID, targetID); err != nil {
		return false, fmt.Errorf("failed to check existing swipe: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) HasRightSwipe(ctx context.Context, swiperID, targetID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND target_id = $2 AND direction = 'right'
		)`

	if err := r.db.GetContext(ctx, &exists, query, swiperID, targetID); err != nil {
		return false, fmt.Errorf("failed to check reciprocal swipe: %w", err)
	}
	return exists, nil
}

// CreateMatchWithRoom creates the match row and its chat room in one
// transaction. When a concurrent caller already created the pair, the
// insert yields no row and the existing match plus room are returned
// with created=false, so both racing callers see the same room.
func (r *postgresRepository) CreateMatchWithRoom(ctx context.Context, userA, userB string) (*Match, *ChatRoom, bool, error) {
	userA, userB = CanonicalPair(userA, userB)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback()

	var match Match
	insertMatch := `
		INSERT INTO matches (user_a, user_b, status)
		VALUES ($1, $2, 'active')
		ON CONFLICT (user_a, user_b) DO NOTHING
		RETURNING id, user_a, user_b, status, acked_a, acked_b, matched_at`

	err = tx.QueryRowxContext(ctx, insertMatch, userA, userB).StructScan(&match)
	if err == sql.ErrNoRows {
		// Lost the race. The winner's transaction has committed by the
		// time ON CONFLICT resolves, so the pair is readable now.
		tx.Rollback()
		existingMatch, existingRoom, lookupErr := r.GetMatchWithRoomByPair(ctx, userA, userB)
		if lookupErr != nil {
			return nil, nil, false, lookupErr
		}
		return existingMatch, existingRoom, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to insert match: %w", err)
	}

	room := &ChatRoom{
		ID:      uuid.New().String(),
		MatchID: match.ID,
		UserA:   userA,
		UserB:   userB,
	}

	insertRoom := `
		INSERT INTO chat_rooms (id, match_id, user_a, user_b)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if err := tx.QueryRowxContext(ctx, insertRoom, room.ID, room.MatchID, room.UserA, room.UserB).Scan(&room.CreatedAt); err != nil {
		return nil, nil, false, fmt.Errorf("failed to create chat room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, false, fmt.Errorf("failed to commit match transaction: %w", err)
	}
	return &match, room, true, nil
}

func (r *postgresRepository) GetMatchWithRoomByPair(ctx context.Context, userA, userB string) (*Match, *ChatRoom, error) {
	userA, userB = CanonicalPair(userA, userB)

	var row struct {
		Match
		RoomID        string       `db:"room_id"`
		RoomCreatedAt sql.NullTime `db:"room_created_at"`
	}
	query := `
		SELECT m.id, m.user_a, m.user_b, m.status, m.acked_a, m.acked_b, m.matched_at,
		       c.id AS room_id, c.created_at AS room_created_at
		FROM matches m
		JOIN chat_rooms c ON c.match_id = m.id
		WHERE m.user_a = $1 AND m.user_b = $2`

	err := r.db.GetContext(ctx, &row, query, userA, userB)
	if err == sql.ErrNoRows {
		return nil, nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	room := &ChatRoom{
		ID:        row.RoomID,
		MatchID:   row.Match.ID,
		UserA:     row.Match.UserA,
		UserB:     row.Match.UserB,
		CreatedAt: row.RoomCreatedAt.Time,
	}
	return &row.Match, room, nil
}

func (r *postgresRepository) GetMatchByID(ctx context.Context, matchID int64) (*Match, error) {
	var match Match
	query := `
		SELECT id, user_a, user_b, status, acked_a, acked_b, matched_at
		FROM matches WHERE id = $1`

	err := r.db.GetContext(ctx, &match, query, matchID)
	if err == sql.ErrNoRows {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

func (r *postgresRepository) ListMatchesForUser(ctx context.Context, userID string) ([]MatchWithRoom, error) {
	var matches []MatchWithRoom
	query := `
		SELECT m.id, m.user_a, m.user_b, m.status, m.acked_a, m.acked_b, m.matched_at,
		       c.id AS chat_room_id
		FROM matches m
		JOIN chat_rooms c ON c.match_id = m.id
		WHERE (m.user_a = $1 OR m.user_b = $1) AND m.status = 'active'
		ORDER BY m.matched_at DESC`

	if err := r.db.SelectContext(ctx, &matches, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// AcknowledgeMatch flips the ack flag for whichever side the user is on
func (r *postgresRepository) AcknowledgeMatch(ctx context.Context, matchID int64, userID string) error {
	query := `
		UPDATE matches
		SET acked_a = CASE WHEN user_a = $2 THEN TRUE ELSE acked_a END,
		    acked_b = CASE WHEN user_b = $2 THEN TRUE ELSE acked_b END
		WHERE id = $1 AND (user_a = $2 OR user_b = $2)`

	result, err := r.db.ExecContext(ctx, query, matchID, userID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge match: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read ack result: %w", err)
	}
	if rows == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresRepository) GetRoom(ctx context.Context, roomID string) (*ChatRoom, error) {
	var room ChatRoom
	query := `
		SELECT id, match_id, user_a, user_b, created_at
		FROM chat_rooms WHERE id = $1`

	err := r.db.GetContext(ctx, &room, query, roomID)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat room: %w", err)
	}
	return &room, nil
}
