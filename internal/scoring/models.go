package scoring

import "time"

// QCSRecord is the persisted per-profile score breakdown. The cached
// total_qcs on the profile row converges to Total on every recompute.
type QCSRecord struct {
	UserID       string    `json:"user_id" db:"user_id"`
	Completeness int       `json:"completeness" db:"completeness"`
	Affiliation  int       `json:"affiliation" db:"affiliation"`
	PsychDepth   int       `json:"psych_depth" db:"psych_depth"`
	Behavioral   int       `json:"behavioral" db:"behavioral"`
	Total        int       `json:"total" db:"total"`
	ComputedAt   time.Time `json:"computed_at" db:"computed_at"`
}

// ComputeResponse is the qcs_compute API response shape
type ComputeResponse struct {
	TotalScore int       `json:"total_score"`
	Components Breakdown `json:"components"`
}
