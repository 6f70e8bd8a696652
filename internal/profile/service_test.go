package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps profiles in memory
type fakeRepository struct {
	profiles map[string]*Profile
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: make(map[string]*Profile)}
}

func (r *fakeRepository) CreateProfile(_ context.Context, p *Profile) error {
	if _, exists := r.profiles[p.UserID]; exists {
		return ErrProfileExists
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeRepository) GetProfile(_ context.Context, userID string) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeRepository) UpdateProfile(_ context.Context, p *Profile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		return ErrProfileNotFound
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeRepository) SetActive(_ context.Context, userID string, active bool) error {
	p, ok := r.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.IsActive = active
	return nil
}

func (r *fakeRepository) SetTotalQCS(_ context.Context, userID string, total int) error {
	return nil
}

func (r *fakeRepository) GetPreferences(_ context.Context, userID string) (*PartnerPreferences, error) {
	return DefaultPreferences(userID), nil
}

func (r *fakeRepository) UpsertPreferences(_ context.Context, _ *PartnerPreferences) error {
	return nil
}

func (r *fakeRepository) BlockUser(_ context.Context, _, _ string) error   { return nil }
func (r *fakeRepository) UnblockUser(_ context.Context, _, _ string) error { return nil }
func (r *fakeRepository) GetBlockedUsers(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func setupDTO(interests ...string) *SetupProfileDTO {
	return &SetupProfileDTO{
		FirstName:   "Asha",
		DateOfBirth: "2000-01-15",
		Gender:      "female",
		Interests:   StringSet(interests),
	}
}

func TestSetupProfileRejectsTooManyInterests(t *testing.T) {
	svc := NewService(newFakeRepository(), 3)
	ctx := context.Background()

	_, err := svc.SetupProfile(ctx, "user-1", setupDTO("music", "art", "film", "chess"))
	assert.ErrorIs(t, err, ErrTooManyInterests)

	p, err := svc.SetupProfile(ctx, "user-1", setupDTO("music", "art", "film"))
	require.NoError(t, err)
	assert.Len(t, p.Interests, 3)
}

func TestUpdateProfileRejectsTooManyInterests(t *testing.T) {
	svc := NewService(newFakeRepository(), 3)
	ctx := context.Background()

	_, err := svc.SetupProfile(ctx, "user-1", setupDTO("music"))
	require.NoError(t, err)

	tooMany := StringSet{"music", "art", "film", "chess"}
	_, err = svc.UpdateProfile(ctx, "user-1", &UpdateProfileDTO{Interests: &tooMany})
	assert.ErrorIs(t, err, ErrTooManyInterests)

	ok := StringSet{"music", "art"}
	p, err := svc.UpdateProfile(ctx, "user-1", &UpdateProfileDTO{Interests: &ok})
	require.NoError(t, err)
	assert.Len(t, p.Interests, 2)
}
