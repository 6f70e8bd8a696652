package scoring

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	UpsertRecord(ctx context.Context, rec *QCSRecord) error
	GetRecord(ctx context.Context, userID string) (*QCSRecord, error)
	ListActiveUserIDs(ctx context.Context) ([]string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertRecord(ctx context.Context, rec *QCSRecord) error {
	query := `
		INSERT INTO qcs_scores (user_id, completeness, affiliation, psych_depth, behavioral, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET
			completeness = $2,
			affiliation = $3,
			psych_depth = $4,
			behavioral = $5,
			total = $6,
			computed_at = CURRENT_TIMESTAMP
		RETURNING computed_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		rec.UserID, rec.Completeness, rec.Affiliation, rec.PsychDepth, rec.Behavioral, rec.Total,
	).Scan(&rec.ComputedAt)
}

func (r *postgresRepository) GetRecord(ctx context.Context, userID string) (*QCSRecord, error) {
	var rec QCSRecord
	query := `SELECT * FROM qcs_scores WHERE user_id = $1`

	err := r.db.GetContext(ctx, &rec, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *postgresRepository) ListActiveUserIDs(ctx context.Context) ([]string, error) {
	var ids pq.StringArray
	query := `SELECT COALESCE(array_agg(user_id), '{}') FROM profiles WHERE is_active = TRUE`

	if err := r.db.GetContext(ctx, &ids, query); err != nil {
		return nil, err
	}
	return []string(ids), nil
}
