package matching

import (
	"context"
	"errors"
	"log"

	"github.com/yogeshsaini7172/flingzz-backend/internal/events"
	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

var (
	ErrCannotSwipeSelf   = errors.New("cannot swipe on yourself")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrSwipeLimitReached = errors.New("daily swipe limit reached")
	ErrMatchNotFound     = errors.New("match not found")
	ErrRoomNotFound      = errors.New("chat room not found")
	ErrNotParticipant    = errors.New("user is not part of this chat room")
)

// ProfileStore is the slice of the profile module the matcher needs
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*profile.Profile, error)
}

// SwipeQuota caps how many new swipes a user may record per day
type SwipeQuota interface {
	Allow(ctx context.Context, userID string) (bool, error)
	Refund(ctx context.Context, userID string)
	Remaining(ctx context.Context, userID string) (int, error)
}

// Service resolves swipes into matches
type Service interface {
	RecordSwipe(ctx context.Context, swiperID string, dto *SwipeActionDTO) (*SwipeResponse, error)
	GetMatches(ctx context.Context, userID string) ([]MatchWithRoom, error)
	AckMatch(ctx context.Context, userID string, matchID int64) error
	AuthorizeRoom(ctx context.Context, roomID, userID string) (*ChatRoom, error)
	SwipesRemaining(ctx context.Context, userID string) (int, error)
}

type service struct {
	repo     Repository
	profiles ProfileStore
	quota    SwipeQuota
	bus      *events.Bus
}

func NewService(repo Repository, profiles ProfileStore, quota SwipeQuota, bus *events.Bus) Service {
	return &service{repo: repo, profiles: profiles, quota: quota, bus: bus}
}

// RecordSwipe persists the swipe and, for a reciprocal right swipe,
// resolves the pair into a match with its chat room. Resubmitting the
// same swipe never changes state but still reports any match that the
// first submission produced.
func (s *service) RecordSwipe(ctx context.Context, swiperID string, dto *SwipeActionDTO) (*SwipeResponse, error) {
	if swiperID == dto.TargetUserID {
		return nil, ErrCannotSwipeSelf
	}

	target, err := s.profiles.GetProfile(ctx, dto.TargetUserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	if !target.IsActive {
		return nil, ErrTargetNotFound
	}

	// Resubmissions of an already recorded swipe bypass the quota so a
	// retried request stays a no-op even once the cap is reached.
	duplicate, err := s.repo.SwipeExists(ctx, swiperID, dto.TargetUserID)
	if err != nil {
		return nil, err
	}
	if !duplicate {
		allowed, err := s.quota.Allow(ctx, swiperID)
		if err != nil {
			// Quota is an advisory cap. If redis is down the swipe still
			// goes through.
			log.Printf("swipe quota check failed for %s: %v", swiperID, err)
		} else if !allowed {
			RecordQuotaExhausted()
			return nil, ErrSwipeLimitReached
		}
	}

	swipe := &Swipe{
		SwiperID:  swiperID,
		TargetID:  dto.TargetUserID,
		Direction: Direction(dto.Direction),
	}

	inserted, err := s.repo.InsertSwipe(ctx, swipe)
	if err != nil {
		return nil, err
	}
	if !duplicate && !inserted {
		// Two identical submissions raced past the existence check.
		// Only the one that landed should hold a quota unit.
		s.quota.Refund(ctx, swiperID)
	}
	if inserted {
		RecordSwipe(dto.Direction)
		s.bus.Publish(events.NewEvent(events.TypeSwipeRecorded, []string{swiperID}, map[string]interface{}{
			"target_id": dto.TargetUserID,
			"direction": dto.Direction,
		}))
	} else {
		RecordDuplicateSwipe()
	}

	if swipe.Direction != DirectionRight {
		return &SwipeResponse{Matched: false, Message: "Swipe recorded"}, nil
	}

	return s.resolveMatch(ctx, swiperID, dto.TargetUserID, inserted)
}

// resolveMatch checks for a reciprocal right swipe and creates the
// match plus chat room when one exists. Duplicate submissions reach
// this path too so a retried request reports the match it created.
func (s *service) resolveMatch(ctx context.Context, swiperID, targetID string, firstSubmission bool) (*SwipeResponse, error) {
	reciprocal, err := s.repo.HasRightSwipe(ctx, targetID, swiperID)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		message := "Swipe recorded"
		if !firstSubmission {
			message = "Swipe already recorded"
		}
		return &SwipeResponse{Matched: false, Message: message}, nil
	}

	match, room, created, err := s.repo.CreateMatchWithRoom(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	if created {
		RecordMatch()
		s.bus.Publish(events.NewEvent(events.TypeMatchCreated, []string{match.UserA, match.UserB}, map[string]interface{}{
			"match_id":     match.ID,
			"chat_room_id": room.ID,
		}))
	} else if firstSubmission {
		// Both sides swiped at the same moment and this caller lost
		// the insert race. The outcome is identical either way.
		RecordMatchRaceLost()
	}

	return &SwipeResponse{
		Matched:    true,
		ChatRoomID: room.ID,
		Message:    "It's a match!",
	}, nil
}

func (s *service) GetMatches(ctx context.Context, userID string) ([]MatchWithRoom, error) {
	return s.repo.ListMatchesForUser(ctx, userID)
}

func (s *service) AckMatch(ctx context.Context, userID string, matchID int64) error {
	return s.repo.AcknowledgeMatch(ctx, matchID, userID)
}

// AuthorizeRoom verifies the user belongs to the room before the chat
// layer attaches them to it
func (s *service) AuthorizeRoom(ctx context.Context, roomID, userID string) (*ChatRoom, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Contains(userID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}

func (s *service) SwipesRemaining(ctx context.Context, userID string) (int, error) {
	return s.quota.Remaining(ctx, userID)
}
