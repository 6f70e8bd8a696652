package feed

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

type Repository interface {
	// FindCandidates builds the eligible candidate page for a user.
	// The result is recomputed on every call; swipe and match state
	// changes invalidate any earlier answer.
	FindCandidates(ctx context.Context, userID string, f *CandidateFilters) ([]*profile.Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) FindCandidates(ctx context.Context, userID string, f *CandidateFilters) ([]*profile.Profile, error) {
	// Exclusion set: self, already swiped (either direction), blocked
	// in either direction, already matched. Cursor pages on created_at
	// so concurrent inserts ahead of the cursor never reshuffle pages.
	query := `
		SELECT p.*
		FROM profiles p
		WHERE p.user_id <> $1
		  AND p.is_active = TRUE
		  AND p.is_public = TRUE
		  AND EXTRACT(YEAR FROM AGE(p.date_of_birth)) BETWEEN $2 AND $3
		  AND (cardinality($4::text[]) = 0 OR p.gender = ANY($4))
		  AND NOT EXISTS (
			SELECT 1 FROM swipes s
			WHERE s.swiper_id = $1 AND s.target_id = p.user_id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM blocks b
			WHERE (b.blocker_id = $1 AND b.blocked_id = p.user_id)
			   OR (b.blocker_id = p.user_id AND b.blocked_id = $1)
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.user_a = LEAST($1, p.user_id)
			  AND m.user_b = GREATEST($1, p.user_id)
		  )
		  AND ($5::timestamptz IS NULL OR p.created_at < $5)
		ORDER BY p.created_at DESC
		LIMIT $6
	`

	var candidates []*profile.Profile
	err := r.db.SelectContext(
		ctx, &candidates, query,
		userID, f.MinAge, f.MaxAge, pq.StringArray(f.Genders), f.Cursor, f.Limit,
	)
	if err != nil {
		return nil, err
	}

	return candidates, nil
}
