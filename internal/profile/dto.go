// internal/profile/dto.go
package profile

// DTOs for API requests/responses

type SetupProfileDTO struct {
	FirstName       string    `json:"first_name" validate:"required,min=1,max=100"`
	DateOfBirth     string    `json:"date_of_birth" validate:"required"`
	Gender          string    `json:"gender" validate:"required,oneof=male female non_binary other"`
	University      string    `json:"university,omitempty"`
	FieldOfStudy    string    `json:"field_of_study,omitempty"`
	YearOfStudy     int       `json:"year_of_study,omitempty" validate:"omitempty,min=1,max=8"`
	HeightCm        int       `json:"height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	BodyType        string    `json:"body_type,omitempty"`
	SkinTone        string    `json:"skin_tone,omitempty"`
	PersonalityType string    `json:"personality_type,omitempty"`
	Values          string    `json:"values,omitempty"`
	Mindset         string    `json:"mindset,omitempty"`
	Interests       StringSet `json:"interests,omitempty"`
	RelationshipGoals StringSet `json:"relationship_goals,omitempty"`
	Bio             string    `json:"bio,omitempty" validate:"omitempty,max=500"`
	Images          []string  `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsPublic        *bool     `json:"is_public,omitempty"`
}

type UpdateProfileDTO struct {
	FirstName       *string    `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	University      *string    `json:"university,omitempty"`
	FieldOfStudy    *string    `json:"field_of_study,omitempty"`
	YearOfStudy     *int       `json:"year_of_study,omitempty" validate:"omitempty,min=1,max=8"`
	HeightCm        *int       `json:"height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	BodyType        *string    `json:"body_type,omitempty"`
	SkinTone        *string    `json:"skin_tone,omitempty"`
	PersonalityType *string    `json:"personality_type,omitempty"`
	Values          *string    `json:"values,omitempty"`
	Mindset         *string    `json:"mindset,omitempty"`
	Interests       *StringSet `json:"interests,omitempty"`
	RelationshipGoals *StringSet `json:"relationship_goals,omitempty"`
	Bio             *string    `json:"bio,omitempty" validate:"omitempty,max=500"`
	Images          *[]string  `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsPublic        *bool      `json:"is_public,omitempty"`
}

type UpdatePreferencesDTO struct {
	PreferredGenders StringSet `json:"preferred_genders,omitempty"`
	AgeMin           int       `json:"age_min" validate:"required,min=18,max=100"`
	AgeMax           int       `json:"age_max" validate:"required,min=18,max=100,gtefield=AgeMin"`
	PreferredGoals   StringSet `json:"preferred_goals,omitempty"`
}
