package profile

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	// Profiles
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
	SetActive(ctx context.Context, userID string, active bool) error
	SetTotalQCS(ctx context.Context, userID string, total int) error

	// Preferences
	GetPreferences(ctx context.Context, userID string) (*PartnerPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *PartnerPreferences) error

	// Blocks
	BlockUser(ctx context.Context, blockerID, blockedID string) error
	UnblockUser(ctx context.Context, blockerID, blockedID string) error
	GetBlockedUsers(ctx context.Context, userID string) ([]string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProfile(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, first_name, date_of_birth, gender, university,
			field_of_study, year_of_study, height_cm, body_type, skin_tone,
			personality_type, core_values, mindset, interests, relationship_goals,
			bio, images, is_active, is_public
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.FirstName, p.DateOfBirth, p.Gender, p.University,
		p.FieldOfStudy, p.YearOfStudy, p.HeightCm, p.BodyType, p.SkinTone,
		p.PersonalityType, p.Values, p.Mindset, p.Interests, p.RelationshipGoals,
		p.Bio, p.Images, p.IsActive, p.IsPublic,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $2, university = $3, field_of_study = $4,
		    year_of_study = $5, height_cm = $6, body_type = $7, skin_tone = $8,
		    personality_type = $9, core_values = $10, mindset = $11, interests = $12,
		    relationship_goals = $13, bio = $14, images = $15, is_public = $16,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(
		ctx, query,
		p.UserID, p.FirstName, p.University, p.FieldOfStudy,
		p.YearOfStudy, p.HeightCm, p.BodyType, p.SkinTone,
		p.PersonalityType, p.Values, p.Mindset, p.Interests,
		p.RelationshipGoals, p.Bio, p.Images, p.IsPublic,
	)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) SetActive(ctx context.Context, userID string, active bool) error {
	query := `UPDATE profiles SET is_active = $2, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, active)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) SetTotalQCS(ctx context.Context, userID string, total int) error {
	query := `UPDATE profiles SET total_qcs = $2, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, total)
	return err
}

func (r *postgresRepository) GetPreferences(ctx context.Context, userID string) (*PartnerPreferences, error) {
	var prefs PartnerPreferences
	query := `SELECT * FROM partner_preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, &prefs, query, userID)
	if err == sql.ErrNoRows {
		// A profile is always pair-scoreable: absent preferences fall
		// back to the documented defaults instead of erroring.
		return DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return &prefs, nil
}

func (r *postgresRepository) UpsertPreferences(ctx context.Context, prefs *PartnerPreferences) error {
	query := `
		INSERT INTO partner_preferences (user_id, preferred_genders, age_min, age_max, preferred_goals)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			preferred_genders = $2,
			age_min = $3,
			age_max = $4,
			preferred_goals = $5,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		prefs.UserID, prefs.PreferredGenders, prefs.AgeMin, prefs.AgeMax, prefs.PreferredGoals,
	).Scan(&prefs.UpdatedAt)
}

func (r *postgresRepository) BlockUser(ctx context.Context, blockerID, blockedID string) error {
	query := `
		INSERT INTO blocks (blocker_id, blocked_id)
		VALUES ($1, $2)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *postgresRepository) UnblockUser(ctx context.Context, blockerID, blockedID string) error {
	query := `DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`

	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *postgresRepository) GetBlockedUsers(ctx context.Context, userID string) ([]string, error) {
	var blocked pq.StringArray
	query := `SELECT COALESCE(array_agg(blocked_id), '{}') FROM blocks WHERE blocker_id = $1`

	if err := r.db.GetContext(ctx, &blocked, query, userID); err != nil {
		return nil, err
	}
	return []string(blocked), nil
}
