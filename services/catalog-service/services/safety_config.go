package services

import "time"

// SafetyConfig holds every tunable used by ingredient evaluation and scoring.
// The keyword sets and weights are heuristics, not a toxicology model.
type SafetyConfig struct {
	DefaultBaseline int

	UrgentRecallPenalty   float64
	ModerateRecallPenalty float64
	LowRecallPenalty      float64
	PerRecallPenalty      float64

	ReviewConcernWeight float64
	LowRatingThreshold  int
	ConcernKeywords     []string

	BlacklistMatchPenalty float64

	BlessedThreshold int
	CursedThreshold  int

	TransparencyMinLength  int
	GenericIngredientTerms []string

	StaleAfter time.Duration
}

// DefaultSafetyConfig returns the production defaults.
func DefaultSafetyConfig() SafetyConfig {
	return SafetyConfig{
		DefaultBaseline: 50,

		UrgentRecallPenalty:   30,
		ModerateRecallPenalty: 20,
		LowRecallPenalty:      0,
		PerRecallPenalty:      10,

		ReviewConcernWeight: 40,
		LowRatingThreshold:  2,
		ConcernKeywords:     []string{"sick", "allergic", "reaction", "vomit", "diarrhea", "itchy", "unsafe"},

		BlacklistMatchPenalty: 25,

		BlessedThreshold: 80,
		CursedThreshold:  40,

		TransparencyMinLength:  50,
		GenericIngredientTerms: []string{"by-product", "derivative"},

		StaleAfter: 24 * time.Hour,
	}
}
