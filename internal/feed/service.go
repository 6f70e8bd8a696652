// internal/feed/service.go

package feed

import (
	"context"
	"errors"
	"time"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

var ErrInvalidCursor = errors.New("invalid feed cursor")

// ProfileStore is the slice of the profile repository the feed needs
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*profile.Profile, error)
	GetPreferences(ctx context.Context, userID string) (*profile.PartnerPreferences, error)
}

type Service interface {
	GetFeed(ctx context.Context, userID string, req *FeedRequest) (*FeedResponse, error)
	PairingFeed(ctx context.Context, userID string, req *FeedRequest) (*PairingResponse, error)
}

type service struct {
	repo        Repository
	profiles    ProfileStore
	ranker      *Ranker
	defaultPage int
	maxPage     int
}

func NewService(repo Repository, profiles ProfileStore, ranker *Ranker, defaultPage, maxPage int) Service {
	return &service{
		repo:        repo,
		profiles:    profiles,
		ranker:      ranker,
		defaultPage: defaultPage,
		maxPage:     maxPage,
	}
}

func (s *service) GetFeed(ctx context.Context, userID string, req *FeedRequest) (*FeedResponse, error) {
	scored, hasMore, nextCursor, err := s.rankedPage(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	profiles := make([]*profile.Profile, 0, len(scored))
	for _, c := range scored {
		profiles = append(profiles, c.Profile)
	}

	RecordFeedServed(len(profiles))

	return &FeedResponse{
		Profiles:   profiles,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) PairingFeed(ctx context.Context, userID string, req *FeedRequest) (*PairingResponse, error) {
	scored, hasMore, nextCursor, err := s.rankedPage(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	RecordFeedServed(len(scored))

	return &PairingResponse{
		Candidates: scored,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

// rankedPage fetches one cursor page of eligible candidates and ranks
// it. Request overrides narrow the stated preferences; they never
// widen them past the caller's own settings.
func (s *service) rankedPage(ctx context.Context, userID string, req *FeedRequest) ([]*ScoredCandidate, bool, string, error) {
	requester, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, false, "", err
	}

	prefs, err := s.profiles.GetPreferences(ctx, userID)
	if err != nil {
		return nil, false, "", err
	}

	filters, err := s.buildFilters(req, prefs)
	if err != nil {
		return nil, false, "", err
	}

	// Fetch one extra to learn whether another page exists
	limit := filters.Limit
	filters.Limit = limit + 1

	candidates, err := s.repo.FindCandidates(ctx, userID, filters)
	if err != nil {
		return nil, false, "", err
	}

	hasMore := len(candidates) > limit
	if hasMore {
		candidates = candidates[:limit]
	}

	nextCursor := ""
	if hasMore && len(candidates) > 0 {
		nextCursor = candidates[len(candidates)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	scored := s.ranker.Rank(requester, prefs, candidates, limit)
	return scored, hasMore, nextCursor, nil
}

func (s *service) buildFilters(req *FeedRequest, prefs *profile.PartnerPreferences) (*CandidateFilters, error) {
	f := &CandidateFilters{
		Genders: prefs.PreferredGenders,
		MinAge:  prefs.AgeMin,
		MaxAge:  prefs.AgeMax,
		Limit:   s.defaultPage,
	}

	if req.Limit > 0 {
		f.Limit = req.Limit
	}
	if f.Limit > s.maxPage {
		f.Limit = s.maxPage
	}

	// Narrow the preference range with request-level filters
	if req.AgeMin > f.MinAge {
		f.MinAge = req.AgeMin
	}
	if req.AgeMax > 0 && req.AgeMax < f.MaxAge {
		f.MaxAge = req.AgeMax
	}
	if req.Gender != "" {
		f.Genders = []string{req.Gender}
	}

	if req.Cursor != "" {
		cursor, err := time.Parse(time.RFC3339Nano, req.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		f.Cursor = &cursor
	}

	return f, nil
}
