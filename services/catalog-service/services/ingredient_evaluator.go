package services

import (
	"strings"
	"unicode/utf8"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

// IngredientEvaluation is the result of checking an ingredient list.
type IngredientEvaluation struct {
	Suspicious   []string                 `json:"suspicious"`
	Transparency models.TransparencyLevel `json:"transparency"`
}

// EvaluateIngredients matches the active blacklist against ingredientText and
// grades how much the text discloses. Matching is a case-insensitive substring
// search; results follow blacklist order with duplicate names removed.
func EvaluateIngredients(ingredientText string, blacklist []models.BlacklistEntry, cfg SafetyConfig) IngredientEvaluation {
	text := strings.TrimSpace(ingredientText)
	lowered := strings.ToLower(text)

	suspicious := make([]string, 0)
	seen := make(map[string]struct{})
	if lowered != "" {
		for _, entry := range blacklist {
			if !entry.IsActive {
				continue
			}
			name := strings.ToLower(strings.TrimSpace(entry.IngredientName))
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			if strings.Contains(lowered, name) {
				seen[name] = struct{}{}
				suspicious = append(suspicious, strings.TrimSpace(entry.IngredientName))
			}
		}
	}

	return IngredientEvaluation{
		Suspicious:   suspicious,
		Transparency: gradeTransparency(lowered, cfg),
	}
}

// gradeTransparency expects already lower-cased, trimmed text.
func gradeTransparency(lowered string, cfg SafetyConfig) models.TransparencyLevel {
	if lowered == "" || utf8.RuneCountInString(lowered) < cfg.TransparencyMinLength {
		return models.TransparencyPoor
	}
	if containsAny(lowered, cfg.GenericIngredientTerms) {
		return models.TransparencyGood
	}
	return models.TransparencyExcellent
}

// containsAny reports whether lowered contains any of terms, ignoring case of terms.
func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
