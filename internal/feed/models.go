// internal/feed/models.go
package feed

import (
	"time"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
	"github.com/yogeshsaini7172/flingzz-backend/internal/scoring"
)

// CandidateFilters narrows the candidate pool. The exclusion set
// (self, swiped, blocked, matched) is always applied; these are the
// additional hard filters.
type CandidateFilters struct {
	Genders []string
	MinAge  int
	MaxAge  int
	Cursor  *time.Time
	Limit   int
}

// FeedRequest is the client request for the swiping feed
type FeedRequest struct {
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=50"`
	AgeMin int    `json:"age_min" validate:"omitempty,min=18,max=100"`
	AgeMax int    `json:"age_max" validate:"omitempty,min=18,max=100"`
	Gender string `json:"gender,omitempty" validate:"omitempty,oneof=male female non_binary other"`
	Cursor string `json:"cursor,omitempty"`
}

// FeedResponse carries one ranked page of candidates
type FeedResponse struct {
	Profiles   []*profile.Profile `json:"profiles"`
	HasMore    bool               `json:"hasMore"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

// ScoredCandidate pairs a candidate with its compatibility score for
// the requesting user
type ScoredCandidate struct {
	Profile   *profile.Profile  `json:"profile"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"qcs_breakdown"`
}

// PairingResponse carries one ranked page of scored candidates
type PairingResponse struct {
	Candidates []*ScoredCandidate `json:"candidates"`
	HasMore    bool               `json:"hasMore"`
	NextCursor string             `json:"nextCursor,omitempty"`
}
