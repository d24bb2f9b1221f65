package services

import (
	"math"
	"strings"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

// ScoreInput bundles everything the scorer looks at. Any slice may be nil when
// its upstream fetch failed; missing inputs simply apply no penalty.
type ScoreInput struct {
	Product          *models.Product
	Recalls          []models.ProductRecall
	Reviews          []models.ProductReview
	BlacklistMatches []string
}

// SafetyScore is the scorer's verdict.
type SafetyScore struct {
	CosmicScore    int
	CosmicClarity  models.CosmicClarity
	ActiveRecalls  int
	UrgentRecalls  int
	ConcernReviews int
	TotalReviews   int
}

// ScoreProduct computes the cosmic score and clarity.
//
// score = baseline
//   - Σ severity weight of active recalls - PerRecallPenalty × active recalls
//   - ReviewConcernWeight × (concern reviews / all reviews)
//   - BlacklistMatchPenalty × distinct blacklist matches
//
// clamped to [0, 100].
func ScoreProduct(in ScoreInput, cfg SafetyConfig) SafetyScore {
	baseline := cfg.DefaultBaseline
	if in.Product != nil && in.Product.BaselineScore != nil {
		baseline = *in.Product.BaselineScore
	}
	raw := float64(baseline)

	var out SafetyScore
	for _, recall := range in.Recalls {
		if !recall.IsActive {
			continue
		}
		out.ActiveRecalls++
		if recall.Severity == models.RecallUrgent {
			out.UrgentRecalls++
		}
		raw -= recallWeight(recall.Severity, cfg) + cfg.PerRecallPenalty
	}

	out.TotalReviews = len(in.Reviews)
	if out.TotalReviews > 0 {
		for i := range in.Reviews {
			if IsSafetyConcern(&in.Reviews[i], cfg) {
				out.ConcernReviews++
			}
		}
		ratio := float64(out.ConcernReviews) / float64(out.TotalReviews)
		raw -= ratio * cfg.ReviewConcernWeight
	}

	matches := distinctCount(in.BlacklistMatches)
	raw -= float64(matches) * cfg.BlacklistMatchPenalty

	out.CosmicScore = clampScore(raw)
	out.CosmicClarity = deriveClarity(out, matches, cfg)
	return out
}

// IsSafetyConcern flags a review with a low rating or a concern keyword.
func IsSafetyConcern(review *models.ProductReview, cfg SafetyConfig) bool {
	if review.Rating <= cfg.LowRatingThreshold {
		return true
	}
	return containsAny(strings.ToLower(review.Title+" "+review.Content), cfg.ConcernKeywords)
}

func recallWeight(severity models.RecallSeverity, cfg SafetyConfig) float64 {
	switch severity {
	case models.RecallUrgent:
		return cfg.UrgentRecallPenalty
	case models.RecallModerate, models.RecallMedium:
		return cfg.ModerateRecallPenalty
	default:
		return cfg.LowRecallPenalty
	}
}

// deriveClarity lets qualitative signals dominate: any blacklist hit or urgent
// recall curses the product regardless of the number.
func deriveClarity(s SafetyScore, blacklistMatches int, cfg SafetyConfig) models.CosmicClarity {
	switch {
	case blacklistMatches > 0, s.UrgentRecalls > 0:
		return models.ClarityCursed
	case s.CosmicScore < cfg.CursedThreshold:
		return models.ClarityCursed
	case s.CosmicScore >= cfg.BlessedThreshold && s.ActiveRecalls == 0:
		return models.ClarityBlessed
	default:
		return models.ClarityQuestionable
	}
}

func clampScore(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func distinctCount(names []string) int {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			seen[n] = struct{}{}
		}
	}
	return len(seen)
}
