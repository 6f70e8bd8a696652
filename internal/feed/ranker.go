package feed

import (
	"sort"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
	"github.com/yogeshsaini7172/flingzz-backend/internal/scoring"
)

// Ranker orders a candidate page by pairwise compatibility
type Ranker struct {
	engine *scoring.Engine
}

func NewRanker(engine *scoring.Engine) *Ranker {
	return &Ranker{engine: engine}
}

// Rank scores every candidate against the requester, drops hard-filter
// failures (score 0), sorts by descending score with newer profiles
// winning exact ties, and truncates to limit.
func (r *Ranker) Rank(requester *profile.Profile, prefs *profile.PartnerPreferences, candidates []*profile.Profile, limit int) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, len(candidates))

	for _, c := range candidates {
		score := r.engine.ScorePair(requester, c, prefs)
		if score <= 0 {
			continue
		}
		scoring.RecordPairScore(score)

		scored = append(scored, &ScoredCandidate{
			Profile:   c,
			Score:     score,
			Breakdown: r.engine.ScoreProfile(c),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Profile.CreatedAt.After(scored[j].Profile.CreatedAt)
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}
