package profile

import (
	"time"

	"github.com/lib/pq"
)

// Profile is the normalized user profile used across scoring, feed and
// matching. Optional attributes are pointers; set-valued attributes are
// canonical string slices produced by the boundary normalization step.
type Profile struct {
	UserID          string         `json:"user_id" db:"user_id"`
	FirstName       string         `json:"first_name" db:"first_name"`
	DateOfBirth     time.Time      `json:"date_of_birth" db:"date_of_birth"`
	Gender          string         `json:"gender" db:"gender"`
	University      *string        `json:"university,omitempty" db:"university"`
	FieldOfStudy    *string        `json:"field_of_study,omitempty" db:"field_of_study"`
	YearOfStudy     *int           `json:"year_of_study,omitempty" db:"year_of_study"`
	HeightCm        *int           `json:"height_cm,omitempty" db:"height_cm"`
	BodyType        *string        `json:"body_type,omitempty" db:"body_type"`
	SkinTone        *string        `json:"skin_tone,omitempty" db:"skin_tone"`
	PersonalityType *string        `json:"personality_type,omitempty" db:"personality_type"`
	Values          *string        `json:"values,omitempty" db:"core_values"`
	Mindset         *string        `json:"mindset,omitempty" db:"mindset"`
	Interests       pq.StringArray `json:"interests" db:"interests"`
	RelationshipGoals pq.StringArray `json:"relationship_goals" db:"relationship_goals"`
	Bio             *string        `json:"bio,omitempty" db:"bio"`
	Images          pq.StringArray `json:"images" db:"images"`
	TotalQCS        int            `json:"total_qcs" db:"total_qcs"`
	IsActive        bool           `json:"is_active" db:"is_active"`
	IsPublic        bool           `json:"is_public" db:"is_public"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// Age derives the current age in whole years from the date of birth
func (p *Profile) Age() int {
	return AgeAt(p.DateOfBirth, time.Now())
}

// AgeAt derives the age in whole years at the given instant
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// PartnerPreferences is owned 1:1 by a profile and drives the hard
// filters in pairing. AgeMin <= AgeMax is enforced at the boundary and
// by a database constraint.
type PartnerPreferences struct {
	UserID           string         `json:"user_id" db:"user_id"`
	PreferredGenders pq.StringArray `json:"preferred_genders" db:"preferred_genders"`
	AgeMin           int            `json:"age_min" db:"age_min"`
	AgeMax           int            `json:"age_max" db:"age_max"`
	PreferredGoals   pq.StringArray `json:"preferred_goals" db:"preferred_goals"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences returns the documented fallback used when a user
// has not stated preferences yet: any gender, full allowed age range.
func DefaultPreferences(userID string) *PartnerPreferences {
	return &PartnerPreferences{
		UserID: userID,
		AgeMin: 18,
		AgeMax: 100,
	}
}

// Block records a directional block between two users
type Block struct {
	BlockerID string    `json:"blocker_id" db:"blocker_id"`
	BlockedID string    `json:"blocked_id" db:"blocked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
