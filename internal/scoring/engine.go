package scoring

import (
	"strings"

	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

// Component caps. Each QCS component is clamped independently, so the
// total is bounded by their sum (100).
const (
	completenessCap = 25
	affiliationCap  = 25
	psychDepthCap   = 25
	behavioralCap   = 25

	// Completeness
	completenessBase  = 10
	bioBonus          = 5
	imageBonus        = 5
	interestBonus     = 5
	bioLengthThreshold = 20
	minImagesForBonus  = 2
	minInterestsForBonus = 3

	// Affiliation tiers
	tierTop     = 25
	tierMid     = 15
	tierDefault = 10

	// Psychographic depth
	psychBase        = 10
	personalityBonus = 5
	valuesBonus      = 10

	// Behavioral placeholder until a live signal is wired in
	behavioralBaseline = 15
)

// Pairwise soft-score weights
const (
	weightInterests = 0.40
	weightValues    = 0.20
	weightGoals     = 0.20
	weightCloseness = 0.20
)

// topTierKeywords and midTierKeywords classify universities for the
// affiliation component. Matching is case-insensitive substring.
var topTierKeywords = []string{"iit", "iim", "aiims", "iisc", "bits pilani", "isb"}

var midTierKeywords = []string{
	"nit", "delhi university", "du ", "mumbai university", "christ",
	"symbiosis", "manipal", "vit", "srm", "amity",
}

// Breakdown is the per-component QCS decomposition for one profile
type Breakdown struct {
	Completeness int `json:"completeness"`
	Affiliation  int `json:"affiliation"`
	PsychDepth   int `json:"psych_depth"`
	Behavioral   int `json:"behavioral"`
	Total        int `json:"total"`
}

// BehavioralSource supplies the behavioral component. No live signal is
// computed yet; ConstantBehavioral is the documented placeholder.
type BehavioralSource interface {
	BehavioralScore(userID string) int
}

// ConstantBehavioral returns a fixed baseline for every user
type ConstantBehavioral struct{}

func (ConstantBehavioral) BehavioralScore(string) int { return behavioralBaseline }

// Engine computes profile quality and pairwise compatibility scores.
// Both computations are pure: identical inputs always yield identical
// outputs, with no hidden time-dependent state beyond age derivation.
type Engine struct {
	behavioral BehavioralSource
}

func NewEngine(behavioral BehavioralSource) *Engine {
	if behavioral == nil {
		behavioral = ConstantBehavioral{}
	}
	return &Engine{behavioral: behavioral}
}

// ScoreProfile computes the QCS breakdown for a single profile.
// Missing fields substitute defaults; a profile is always scoreable.
func (e *Engine) ScoreProfile(p *profile.Profile) Breakdown {
	b := Breakdown{
		Completeness: e.scoreCompleteness(p),
		Affiliation:  e.scoreAffiliation(p.University),
		PsychDepth:   e.scorePsychDepth(p),
		Behavioral:   clamp(e.behavioral.BehavioralScore(p.UserID), behavioralCap),
	}
	b.Total = b.Completeness + b.Affiliation + b.PsychDepth + b.Behavioral
	return b
}

func (e *Engine) scoreCompleteness(p *profile.Profile) int {
	score := completenessBase
	if p.Bio != nil && len(*p.Bio) > bioLengthThreshold {
		score += bioBonus
	}
	if len(p.Images) >= minImagesForBonus {
		score += imageBonus
	}
	if len(p.Interests) >= minInterestsForBonus {
		score += interestBonus
	}
	return clamp(score, completenessCap)
}

func (e *Engine) scoreAffiliation(university *string) int {
	if university == nil || *university == "" {
		return tierDefault
	}

	name := strings.ToLower(*university)
	for _, kw := range topTierKeywords {
		if strings.Contains(name, kw) {
			return tierTop
		}
	}
	for _, kw := range midTierKeywords {
		if strings.Contains(name, kw) {
			return tierMid
		}
	}
	return tierDefault
}

func (e *Engine) scorePsychDepth(p *profile.Profile) int {
	score := psychBase
	if p.PersonalityType != nil && *p.PersonalityType != "" {
		score += personalityBonus
	}
	if p.Values != nil && *p.Values != "" {
		score += valuesBonus
	}
	return clamp(score, psychDepthCap)
}

// ScorePair computes the pairwise compatibility of candidate b for
// observer a. Hard filters (age range, preferred gender) yield 0, not a
// low score; passing candidates get a weighted soft score in (0, 100].
func (e *Engine) ScorePair(a, b *profile.Profile, prefsA *profile.PartnerPreferences) float64 {
	if prefsA == nil {
		prefsA = profile.DefaultPreferences(a.UserID)
	}

	if !PassesHardFilters(b, prefsA) {
		return 0
	}

	soft := weightInterests*jaccard(a.Interests, b.Interests) +
		weightValues*valuesAgreement(a.Values, b.Values) +
		weightGoals*jaccard(a.RelationshipGoals, b.RelationshipGoals) +
		weightCloseness*qcsCloseness(a.TotalQCS, b.TotalQCS)

	return soft * 100
}

// PassesHardFilters reports whether candidate b satisfies the
// observer's stated hard constraints
func PassesHardFilters(b *profile.Profile, prefs *profile.PartnerPreferences) bool {
	age := b.Age()
	if age < prefs.AgeMin || age > prefs.AgeMax {
		return false
	}
	return genderAllowed(b.Gender, prefs.PreferredGenders)
}

// genderAllowed treats an empty preference set as "any gender"
func genderAllowed(gender string, preferred []string) bool {
	if len(preferred) == 0 {
		return true
	}
	for _, g := range preferred {
		if strings.EqualFold(g, gender) {
			return true
		}
	}
	return false
}

// jaccard computes the Jaccard similarity coefficient of two string
// sets. Two empty sets share nothing and score 0.
func jaccard(s1, s2 []string) float64 {
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	set := make(map[string]bool, len(s1))
	for _, v := range s1 {
		set[strings.ToLower(v)] = true
	}

	matches := 0
	for _, v := range s2 {
		if set[strings.ToLower(v)] {
			matches++
		}
	}

	union := len(s1) + len(s2) - matches
	if union == 0 {
		return 0
	}
	return float64(matches) / float64(union)
}

func valuesAgreement(v1, v2 *string) float64 {
	if v1 == nil || v2 == nil || *v1 == "" || *v2 == "" {
		return 0
	}
	if strings.EqualFold(*v1, *v2) {
		return 1
	}
	return 0
}

// qcsCloseness bands candidates by quality tier: the further apart two
// total scores are, the lower the contribution. This keeps pairing
// "compatible tier" rather than "highest score wins".
func qcsCloseness(qcsA, qcsB int) float64 {
	diff := qcsA - qcsB
	if diff < 0 {
		diff = -diff
	}
	if diff > 100 {
		diff = 100
	}
	return 1 - float64(diff)/100
}

func clamp(v, cap int) int {
	if v > cap {
		return cap
	}
	if v < 0 {
		return 0
	}
	return v
}
