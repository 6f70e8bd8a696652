package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
	"github.com/yogeshsaini7172/flingzz-backend/internal/scoring"
)

// fakeRepository serves candidates from a slice, honouring the cursor
// and limit the way the SQL implementation does
type fakeRepository struct {
	candidates []*profile.Profile
}

func (r *fakeRepository) FindCandidates(_ context.Context, userID string, f *CandidateFilters) ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, c := range r.candidates {
		if c.UserID == userID {
			continue
		}
		if f.Cursor != nil && !c.CreatedAt.Before(*f.Cursor) {
			continue
		}
		out = append(out, c)
		if len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type fakeProfileStore struct {
	profiles map[string]*profile.Profile
	prefs    map[string]*profile.PartnerPreferences
}

func (s *fakeProfileStore) GetProfile(_ context.Context, userID string) (*profile.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) GetPreferences(_ context.Context, userID string) (*profile.PartnerPreferences, error) {
	if prefs, ok := s.prefs[userID]; ok {
		return prefs, nil
	}
	return profile.DefaultPreferences(userID), nil
}

func testProfile(userID string, age int, createdAt time.Time) *profile.Profile {
	return &profile.Profile{
		UserID:      userID,
		FirstName:   userID,
		DateOfBirth: time.Now().AddDate(-age, 0, -1),
		Gender:      "female",
		Interests:   pq.StringArray{"music", "travel"},
		IsActive:    true,
		IsPublic:    true,
		CreatedAt:   createdAt,
	}
}

func newTestFeed(requester *profile.Profile, prefs *profile.PartnerPreferences, candidates ...*profile.Profile) Service {
	repo := &fakeRepository{candidates: candidates}
	store := &fakeProfileStore{
		profiles: map[string]*profile.Profile{requester.UserID: requester},
		prefs:    map[string]*profile.PartnerPreferences{},
	}
	if prefs != nil {
		store.prefs[requester.UserID] = prefs
	}
	ranker := NewRanker(scoring.NewEngine(nil))
	return NewService(repo, store, ranker, 20, 50)
}

func TestGetFeedExcludesHardFilterFailures(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)
	prefs := &profile.PartnerPreferences{UserID: "me", AgeMin: 18, AgeMax: 25}

	svc := newTestFeed(requester, prefs,
		testProfile("young", 20, now.Add(-1*time.Minute)),
		testProfile("old", 30, now.Add(-2*time.Minute)),
	)

	resp, err := svc.GetFeed(context.Background(), "me", &FeedRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, "young", resp.Profiles[0].UserID)
}

func TestGetFeedNeverContainsRequester(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)

	svc := newTestFeed(requester, nil,
		requester,
		testProfile("other", 21, now.Add(-time.Minute)),
	)

	resp, err := svc.GetFeed(context.Background(), "me", &FeedRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, "other", resp.Profiles[0].UserID)
}

func TestGetFeedPagination(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)

	candidates := make([]*profile.Profile, 0, 5)
	for i := 0; i < 5; i++ {
		candidates = append(candidates, testProfile(
			string(rune('a'+i)), 21, now.Add(-time.Duration(i+1)*time.Minute)))
	}

	svc := newTestFeed(requester, nil, candidates...)

	first, err := svc.GetFeed(context.Background(), "me", &FeedRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, first.Profiles, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.GetFeed(context.Background(), "me", &FeedRequest{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Len(t, second.Profiles, 2)

	// No candidate appears on both pages
	seen := map[string]bool{}
	for _, p := range first.Profiles {
		seen[p.UserID] = true
	}
	for _, p := range second.Profiles {
		assert.False(t, seen[p.UserID], "candidate %s repeated across pages", p.UserID)
	}
}

func TestGetFeedInvalidCursor(t *testing.T) {
	requester := testProfile("me", 22, time.Now())
	svc := newTestFeed(requester, nil)

	_, err := svc.GetFeed(context.Background(), "me", &FeedRequest{Cursor: "not-a-timestamp"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestGetFeedLimitClamped(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)

	candidates := make([]*profile.Profile, 0, 60)
	for i := 0; i < 60; i++ {
		candidates = append(candidates, testProfile(
			fmt.Sprintf("user-%d", i), 21, now.Add(-time.Duration(i+1)*time.Second)))
	}

	svc := newTestFeed(requester, nil, candidates...)

	resp, err := svc.GetFeed(context.Background(), "me", &FeedRequest{Limit: 500})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Profiles), 50)
}

func TestPairingFeedScoresDescending(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)
	requester.Interests = pq.StringArray{"music", "travel", "reading"}

	similar := testProfile("similar", 21, now.Add(-time.Minute))
	similar.Interests = pq.StringArray{"music", "travel", "reading"}

	dissimilar := testProfile("dissimilar", 21, now.Add(-2*time.Minute))
	dissimilar.Interests = pq.StringArray{"gaming"}

	svc := newTestFeed(requester, nil, dissimilar, similar)

	resp, err := svc.PairingFeed(context.Background(), "me", &FeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)

	assert.Equal(t, "similar", resp.Candidates[0].Profile.UserID)
	assert.Greater(t, resp.Candidates[0].Score, resp.Candidates[1].Score)
}

func TestRankerTieBreakNewerFirst(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)

	older := testProfile("older", 21, now.Add(-time.Hour))
	newer := testProfile("newer", 21, now.Add(-time.Minute))

	ranker := NewRanker(scoring.NewEngine(nil))
	scored := ranker.Rank(requester, profile.DefaultPreferences("me"), []*profile.Profile{older, newer}, 10)

	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].Score, scored[1].Score)
	assert.Equal(t, "newer", scored[0].Profile.UserID)
}

func TestRankerDropsZeroScores(t *testing.T) {
	now := time.Now()
	requester := testProfile("me", 22, now)
	tooOld := testProfile("old", 40, now)

	prefs := &profile.PartnerPreferences{UserID: "me", AgeMin: 18, AgeMax: 25}

	ranker := NewRanker(scoring.NewEngine(nil))
	scored := ranker.Rank(requester, prefs, []*profile.Profile{tooOld}, 10)

	assert.Empty(t, scored)
}
