package usecase

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/skinsage/backend/internal/domain"
)

// Signal weights for scoring. Each signal is independent; the score is
// their sum and may go negative.
const (
	concernActiveBonus = 18  // per matched concern's active-ingredient bank
	spfBonus           = 25  // SPF/broad-spectrum/UV marker under a sunscreen intent
	textureBonus       = 10  // skin-type-appropriate texture language
	irritantPenalty    = -30 // irritant words under a fragrance sensitivity
	comedogenicPenalty = -12 // high-comedogenicity ingredient under an acne concern
	withinBudgetBonus  = 6   // known price at or under the ceiling
	overBudgetPenalty  = -10 // known price over the ceiling
	ratingBonusCap     = 10  // rating contribution is capped
	regionalBrandBonus = 6   // known regional brand
)

const (
	// defaultTopN bounds the ranked output
	defaultTopN = 12

	// explainThreshold is the score at or above which the explanation
	// claims a concern match
	explainThreshold = 30
)

// activeBank maps each concern to its active-ingredient keyword bank,
// matched against the lowercased name+snippet text
var activeBank = map[domain.Concern][]string{
	domain.ConcernAcne:         {"salicylic", "benzoyl peroxide", "azelaic", "retinol", "adapalene"},
	domain.ConcernPigmentation: {"vitamin c", "ascorbic", "arbutin", "kojic", "azelaic", "niacinamide", "tranexamic"},
	domain.ConcernRedness:      {"azelaic", "niacinamide", "allantoin", "centella", "madecassoside"},
	domain.ConcernDehydration:  {"hyaluronic", "glycerin", "panthenol", "squalane"},
	domain.ConcernOil:          {"niacinamide", "zinc", "salicylic"},
}

// sunscreenPrunedActives are removed from the acne bank when sunscreen is
// a selected category; sunscreen listings legitimately lack acne actives
// and must not be penalized for it
var sunscreenPrunedActives = map[string]bool{
	"salicylic":        true,
	"benzoyl peroxide": true,
}

// irritantWords trigger the fragrance-sensitivity penalty
var irritantWords = []string{"fragrance", "parfum", "linalool", "limonene", "eugenol", "citrus"}

// comedogenicWords are pore-clogging ingredients penalized for
// acne-concerned profiles
var comedogenicWords = []string{"isopropyl myristate", "isopropyl palmitate", "coconut oil"}

// regionalBrands get a small boost; these are well-distributed brands in
// the primary market
var regionalBrands = []string{
	"minimalist", "dot & key", "aqualogica", "re'equil",
	"dr. sheth", "plum", "derma co", "foxtale",
}

// Texture and marker patterns evaluated over the candidate text
var (
	spfMarkerPattern     = regexp.MustCompile(`(spf|broad[- ]spectrum|pa\+|sunscreen|uva|uvb)`)
	oilyTexturePattern   = regexp.MustCompile(`(gel|fluid|oil[- ]?free|matte)`)
	dryTexturePattern    = regexp.MustCompile(`(cream|balm|rich|ceramide)`)
	soothingPattern      = regexp.MustCompile(`(fragrance[- ]?free|mineral|zinc oxide|titanium dioxide|soothing)`)
	fragranceFreePattern = regexp.MustCompile(`fragrance[- ]?free`)
	mineralFilterPattern = regexp.MustCompile(`(mineral|zinc oxide|titanium dioxide)`)
	brighteningPattern   = regexp.MustCompile(`(vitamin c|arbutin|azelaic|niacinamide|brightening)`)
)

// ScorerConfig tunes result ranking
type ScorerConfig struct {
	TopN               int
	EnableDebugLogging bool
}

// Scorer computes a fit score and explanation per candidate and produces
// the final ranked shortlist
type Scorer struct {
	topN  int
	debug bool
}

// NewScorer creates a scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	return &Scorer{
		topN:  topN,
		debug: config.EnableDebugLogging,
	}
}

// Rank scores every candidate, sorts descending (stable, so ties keep
// accumulation order) and truncates to the top N. The returned slice is
// never nil: an empty shortlist is a valid outcome.
func (s *Scorer) Rank(candidates []domain.Candidate, profile domain.Profile, intent domain.Intent) []domain.RankedResult {
	ranked := make([]domain.RankedResult, 0, len(candidates))

	for _, c := range candidates {
		score, penalizedForFragrance := s.scoreCandidate(c, profile, intent)
		ranked = append(ranked, domain.RankedResult{
			Candidate: c,
			Score:     score,
			Why:       explain(c, profile, score, penalizedForFragrance),
		})

		if s.debug {
			log.Printf("[SCORE] %q -> %d", c.Name, score)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked
}

// scoreCandidate sums the independent signals for one candidate. The
// second return reports whether the fragrance-irritant penalty fired, so
// the explanation can avoid contradicting the score.
func (s *Scorer) scoreCandidate(c domain.Candidate, profile domain.Profile, intent domain.Intent) (int, bool) {
	text := strings.ToLower(c.Name + " " + c.Snippet)
	sunscreen := intent.HasCategory(domain.CategorySunscreen)

	score := 0

	for _, concern := range intent.Concerns {
		if bankMatches(concern, text, sunscreen) {
			score += concernActiveBonus
		}
	}

	if sunscreen && spfMarkerPattern.MatchString(text) {
		score += spfBonus
	}

	switch profile.SkinType {
	case domain.SkinOily:
		if oilyTexturePattern.MatchString(text) {
			score += textureBonus
		}
	case domain.SkinDry:
		if dryTexturePattern.MatchString(text) {
			score += textureBonus
		}
	case domain.SkinSensitive:
		if soothingPattern.MatchString(text) {
			score += textureBonus
		}
	}

	fragrancePenalized := false
	if profile.HasSensitivity("fragrance") && containsAny(text, irritantWords) {
		score += irritantPenalty
		fragrancePenalized = true
	}

	if profile.HasConcern(string(domain.ConcernAcne)) && containsAny(text, comedogenicWords) {
		score += comedogenicPenalty
	}

	if intent.BudgetMax != nil && c.Price != nil {
		if c.Price.Value <= *intent.BudgetMax {
			score += withinBudgetBonus
		} else {
			// Over-budget survivors of the never-go-empty exception are
			// still ranked down
			score += overBudgetPenalty
		}
	}

	if c.Rating != nil {
		score += ratingBonus(*c.Rating)
	}

	brandText := strings.ToLower(c.Brand + " " + c.Name)
	if containsAny(brandText, regionalBrands) {
		score += regionalBrandBonus
	}

	return score, fragrancePenalized
}

// bankMatches tests a concern's active bank against the text. When
// sunscreen is a selected category the acne bank is pruned of the
// dedicated acne actives; the other banks are never pruned.
func bankMatches(concern domain.Concern, text string, sunscreen bool) bool {
	for _, active := range activeBank[concern] {
		if sunscreen && concern == domain.ConcernAcne && sunscreenPrunedActives[active] {
			continue
		}
		if strings.Contains(text, active) {
			return true
		}
	}
	return false
}

// ratingBonus scales a provider rating (out of 5) into a capped bonus
func ratingBonus(rating float64) int {
	bonus := int(math.Round(rating * 2))
	if bonus > ratingBonusCap {
		return ratingBonusCap
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}

// containsAny reports whether the text contains any of the given words
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// explain builds a short justification from the same text the score was
// computed over. It is derived, not stored, and must never contradict the
// score: a fragrance-penalized candidate is never praised as
// fragrance-free.
func explain(c domain.Candidate, profile domain.Profile, score int, fragrancePenalized bool) string {
	text := strings.ToLower(c.Name + " " + c.Snippet)
	var bits []string

	if spfMarkerPattern.MatchString(text) {
		bits = append(bits, "broad-spectrum SPF")
	}
	if !fragrancePenalized && fragranceFreePattern.MatchString(text) {
		bits = append(bits, "fragrance-free")
	}
	if profile.SkinType == domain.SkinOily && oilyTexturePattern.MatchString(text) {
		bits = append(bits, "oily-skin friendly texture")
	}
	if mineralFilterPattern.MatchString(text) {
		bits = append(bits, "mineral filters")
	}
	if brighteningPattern.MatchString(text) {
		bits = append(bits, "brightening actives")
	}
	if score >= explainThreshold {
		bits = append(bits, "matches your concerns")
	}

	if len(bits) == 0 {
		return "Good overall fit."
	}
	return "Picked for " + strings.Join(bits, "; ") + "."
}
