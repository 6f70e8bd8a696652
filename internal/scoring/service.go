// internal/scoring/service.go

package scoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

var ErrScoreNotFound = errors.New("score record not found")

// ProfileStore is the slice of the profile repository the scoring
// service needs
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*profile.Profile, error)
	SetTotalQCS(ctx context.Context, userID string, total int) error
}

type Service interface {
	// ComputeQCS recomputes and persists the score breakdown for one
	// user, updating the cached total on the profile row
	ComputeQCS(ctx context.Context, userID string) (*QCSRecord, error)

	// GetQCS returns the stored breakdown, computing it on demand if absent
	GetQCS(ctx context.Context, userID string) (*QCSRecord, error)

	// CachedTotal returns the cached total score, falling back to a
	// fresh compute on a cache miss
	CachedTotal(ctx context.Context, userID string) (int, error)

	// RecomputeAll refreshes every active profile's score in batch
	RecomputeAll(ctx context.Context) error
}

type service struct {
	engine   *Engine
	repo     Repository
	profiles ProfileStore
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewService(engine *Engine, repo Repository, profiles ProfileStore, cache *redis.Client, cacheTTL time.Duration) Service {
	return &service{
		engine:   engine,
		repo:     repo,
		profiles: profiles,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *service) ComputeQCS(ctx context.Context, userID string) (*QCSRecord, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := s.engine.ScoreProfile(p)

	rec := &QCSRecord{
		UserID:       userID,
		Completeness: b.Completeness,
		Affiliation:  b.Affiliation,
		PsychDepth:   b.PsychDepth,
		Behavioral:   b.Behavioral,
		Total:        b.Total,
	}

	if err := s.repo.UpsertRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist score: %w", err)
	}

	// The profile's cached total converges to the record total. A
	// failure here is retried on the next compute, not surfaced.
	if err := s.profiles.SetTotalQCS(ctx, userID, rec.Total); err != nil {
		log.Printf("Failed to update cached total_qcs for %s: %v", userID, err)
	}

	s.cacheTotal(ctx, userID, rec.Total)
	RecordQCSTotal(rec.Total)

	return rec, nil
}

func (s *service) GetQCS(ctx context.Context, userID string) (*QCSRecord, error) {
	rec, err := s.repo.GetRecord(ctx, userID)
	if errors.Is(err, ErrScoreNotFound) {
		return s.ComputeQCS(ctx, userID)
	}
	return rec, err
}

func (s *service) CachedTotal(ctx context.Context, userID string) (int, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, totalCacheKey(userID)).Result()
		if err == nil {
			if total, convErr := strconv.Atoi(val); convErr == nil {
				return total, nil
			}
		}
	}

	rec, err := s.GetQCS(ctx, userID)
	if err != nil {
		return 0, err
	}
	return rec.Total, nil
}

func (s *service) RecomputeAll(ctx context.Context) error {
	ids, err := s.repo.ListActiveUserIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := s.ComputeQCS(ctx, id); err != nil {
			log.Printf("Batch score recompute failed for %s: %v", id, err)
		}
	}

	return nil
}

func (s *service) cacheTotal(ctx context.Context, userID string, total int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, totalCacheKey(userID), total, s.cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache QCS total for %s: %v", userID, err)
	}
}

func totalCacheKey(userID string) string {
	return "qcs:total:" + userID
}
