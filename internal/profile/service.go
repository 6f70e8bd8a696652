// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileExists    = errors.New("profile already exists")
	ErrInvalidBirthDate = errors.New("invalid date of birth")
	ErrUnderage         = errors.New("user must be at least 18")
	ErrTooManyInterests = errors.New("too many interests")
	ErrCannotBlockSelf  = errors.New("cannot block yourself")
)

type Service interface {
	SetupProfile(ctx context.Context, userID string, dto *SetupProfileDTO) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, dto *UpdateProfileDTO) (*Profile, error)
	DeactivateProfile(ctx context.Context, userID string) error

	GetPreferences(ctx context.Context, userID string) (*PartnerPreferences, error)
	UpdatePreferences(ctx context.Context, userID string, dto *UpdatePreferencesDTO) (*PartnerPreferences, error)

	BlockUser(ctx context.Context, blockerID, blockedID string) error
	UnblockUser(ctx context.Context, blockerID, blockedID string) error
	GetBlockedUsers(ctx context.Context, userID string) ([]string, error)
}

type service struct {
	repo         Repository
	maxInterests int
}

func NewService(repo Repository, maxInterests int) Service {
	return &service{repo: repo, maxInterests: maxInterests}
}

func (s *service) SetupProfile(ctx context.Context, userID string, dto *SetupProfileDTO) (*Profile, error) {
	dob, err := time.Parse("2006-01-02", dto.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	if AgeAt(dob, time.Now()) < 18 {
		return nil, ErrUnderage
	}
	if len(dto.Interests) > s.maxInterests {
		return nil, ErrTooManyInterests
	}

	p := &Profile{
		UserID:          userID,
		FirstName:       dto.FirstName,
		DateOfBirth:     dob,
		Gender:          dto.Gender,
		Interests:       []string(dto.Interests),
		RelationshipGoals: []string(dto.RelationshipGoals),
		Images:          dto.Images,
		IsActive:        true,
		IsPublic:        true,
	}

	p.University = optional(dto.University)
	p.FieldOfStudy = optional(dto.FieldOfStudy)
	p.BodyType = optional(dto.BodyType)
	p.SkinTone = optional(dto.SkinTone)
	p.PersonalityType = optional(dto.PersonalityType)
	p.Values = optional(dto.Values)
	p.Mindset = optional(dto.Mindset)
	p.Bio = optional(dto.Bio)
	if dto.YearOfStudy > 0 {
		p.YearOfStudy = &dto.YearOfStudy
	}
	if dto.HeightCm > 0 {
		p.HeightCm = &dto.HeightCm
	}
	if dto.IsPublic != nil {
		p.IsPublic = *dto.IsPublic
	}

	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, dto *UpdateProfileDTO) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.FirstName != nil {
		p.FirstName = *dto.FirstName
	}
	if dto.University != nil {
		p.University = dto.University
	}
	if dto.FieldOfStudy != nil {
		p.FieldOfStudy = dto.FieldOfStudy
	}
	if dto.YearOfStudy != nil {
		p.YearOfStudy = dto.YearOfStudy
	}
	if dto.HeightCm != nil {
		p.HeightCm = dto.HeightCm
	}
	if dto.BodyType != nil {
		p.BodyType = dto.BodyType
	}
	if dto.SkinTone != nil {
		p.SkinTone = dto.SkinTone
	}
	if dto.PersonalityType != nil {
		p.PersonalityType = dto.PersonalityType
	}
	if dto.Values != nil {
		p.Values = dto.Values
	}
	if dto.Mindset != nil {
		p.Mindset = dto.Mindset
	}
	if dto.Interests != nil {
		if len(*dto.Interests) > s.maxInterests {
			return nil, ErrTooManyInterests
		}
		p.Interests = []string(*dto.Interests)
	}
	if dto.RelationshipGoals != nil {
		p.RelationshipGoals = []string(*dto.RelationshipGoals)
	}
	if dto.Bio != nil {
		p.Bio = dto.Bio
	}
	if dto.Images != nil {
		p.Images = *dto.Images
	}
	if dto.IsPublic != nil {
		p.IsPublic = *dto.IsPublic
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) DeactivateProfile(ctx context.Context, userID string) error {
	// Profiles are never hard-deleted
	return s.repo.SetActive(ctx, userID, false)
}

func (s *service) GetPreferences(ctx context.Context, userID string) (*PartnerPreferences, error) {
	return s.repo.GetPreferences(ctx, userID)
}

func (s *service) UpdatePreferences(ctx context.Context, userID string, dto *UpdatePreferencesDTO) (*PartnerPreferences, error) {
	prefs := &PartnerPreferences{
		UserID:           userID,
		PreferredGenders: []string(dto.PreferredGenders),
		AgeMin:           dto.AgeMin,
		AgeMax:           dto.AgeMax,
		PreferredGoals:   []string(dto.PreferredGoals),
	}

	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}

	return prefs, nil
}

func (s *service) BlockUser(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return ErrCannotBlockSelf
	}
	return s.repo.BlockUser(ctx, blockerID, blockedID)
}

func (s *service) UnblockUser(ctx context.Context, blockerID, blockedID string) error {
	return s.repo.UnblockUser(ctx, blockerID, blockedID)
}

func (s *service) GetBlockedUsers(ctx context.Context, userID string) ([]string, error) {
	return s.repo.GetBlockedUsers(ctx, userID)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
