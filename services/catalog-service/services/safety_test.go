package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/stretchr/testify/assert"
)

func blacklist(names ...string) []models.BlacklistEntry {
	out := make([]models.BlacklistEntry, 0, len(names))
	for _, n := range names {
		out = append(out, models.BlacklistEntry{ID: uuid.New(), IngredientName: n, Severity: models.BlacklistHigh, IsActive: true})
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestEvaluateIngredients_MixedCaseMatch(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.EvaluateIngredients("Chicken, rice, contains BhA and other preservatives", blacklist("BHA"), cfg)

	assert.Equal(t, []string{"BHA"}, got.Suspicious)
}

func TestEvaluateIngredients_OrderAndDedup(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	bl := blacklist("Propylene Glycol", "BHA", "bha", "Ethoxyquin", "Xylitol")
	bl[4].IsActive = false

	got := services.EvaluateIngredients("ethoxyquin, xylitol, bha, propylene glycol", bl, cfg)

	assert.Equal(t, []string{"Propylene Glycol", "BHA", "Ethoxyquin"}, got.Suspicious)
}

func TestEvaluateIngredients_EmptyText(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.EvaluateIngredients("   ", blacklist("BHA"), cfg)

	assert.Empty(t, got.Suspicious)
	assert.NotNil(t, got.Suspicious)
	assert.Equal(t, models.TransparencyPoor, got.Transparency)
}

// Transparency threshold is 50 characters in the default config.
func TestEvaluateIngredients_Transparency(t *testing.T) {
	cfg := services.DefaultSafetyConfig()

	tests := []struct {
		name string
		text string
		want models.TransparencyLevel
	}{
		{"short", "chicken, rice", models.TransparencyPoor},
		{"generic", "chicken by-product meal, corn, wheat, animal fat preserved with tocopherols", models.TransparencyGood},
		{"generic derivative", "deboned chicken, vegetable protein derivatives, brown rice, oatmeal, carrots", models.TransparencyGood},
		{"detailed", "deboned free-range chicken from Ohio farms, brown rice, oatmeal, carrots, salmon oil", models.TransparencyExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.EvaluateIngredients(tt.text, nil, cfg).Transparency)
		})
	}
}

func TestEvaluateIngredients_Idempotent(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	bl := blacklist("BHA", "BHT", "Carrageenan")
	text := "Chicken, carrageenan, BHT, mixed tocopherols"

	assert.Equal(t, services.EvaluateIngredients(text, bl, cfg), services.EvaluateIngredients(text, bl, cfg))
}

func TestScoreProduct_UrgentRecall(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{
		Product: &models.Product{},
		Recalls: []models.ProductRecall{{Severity: models.RecallUrgent, IsActive: true}},
	}, cfg)

	assert.Equal(t, 10, got.CosmicScore)
	assert.Equal(t, models.ClarityCursed, got.CosmicClarity)
	assert.Equal(t, 1, got.ActiveRecalls)
}

func TestScoreProduct_ReviewRatio(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	reviews := []models.ProductReview{
		{Rating: 5, Content: "My dog loves it"},
		{Rating: 4, Content: "Good value"},
		{Rating: 5, Content: "Shiny coat after a month"},
		{Rating: 4, Content: "Made my cat ITCHY for days"},
	}

	got := services.ScoreProduct(services.ScoreInput{
		Product: &models.Product{BaselineScore: intPtr(90)},
		Reviews: reviews,
	}, cfg)

	assert.Equal(t, 80, got.CosmicScore)
	assert.Equal(t, 1, got.ConcernReviews)
	assert.Equal(t, models.ClarityBlessed, got.CosmicClarity)
}

func TestScoreProduct_RecallWeights(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{
		Product: &models.Product{BaselineScore: intPtr(100)},
		Recalls: []models.ProductRecall{
			{Severity: models.RecallModerate, IsActive: true},
			{Severity: models.RecallMedium, IsActive: true},
			{Severity: models.RecallLow, IsActive: true},
			{Severity: models.RecallUrgent, IsActive: false},
		},
	}, cfg)

	// 100 - (20+10) - (20+10) - (0+10)
	assert.Equal(t, 30, got.CosmicScore)
	assert.Equal(t, 3, got.ActiveRecalls)
	assert.Equal(t, models.ClarityCursed, got.CosmicClarity)
}

func TestScoreProduct_ClampsAtZero(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{
		Product: &models.Product{BaselineScore: intPtr(20)},
		Recalls: []models.ProductRecall{
			{Severity: models.RecallUrgent, IsActive: true},
			{Severity: models.RecallUrgent, IsActive: true},
		},
		BlacklistMatches: []string{"BHA", "bha", "Ethoxyquin"},
	}, cfg)

	assert.Equal(t, 0, got.CosmicScore)
}

func TestScoreProduct_ClampsAtHundred(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{Product: &models.Product{BaselineScore: intPtr(140)}}, cfg)
	assert.Equal(t, 100, got.CosmicScore)
}

func TestScoreProduct_BlacklistCursesProduct(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{
		Product:          &models.Product{BaselineScore: intPtr(100)},
		BlacklistMatches: []string{"BHA", "BHA"},
	}, cfg)

	assert.Equal(t, 75, got.CosmicScore)
	assert.Equal(t, models.ClarityCursed, got.CosmicClarity)
}

func TestScoreProduct_PartialInputs(t *testing.T) {
	cfg := services.DefaultSafetyConfig()
	got := services.ScoreProduct(services.ScoreInput{}, cfg)

	assert.Equal(t, 50, got.CosmicScore)
	assert.Equal(t, models.ClarityQuestionable, got.CosmicClarity)
}

func TestIsSafetyConcern(t *testing.T) {
	cfg := services.DefaultSafetyConfig()

	assert.True(t, services.IsSafetyConcern(&models.ProductReview{Rating: 2, Content: "meh"}, cfg))
	assert.True(t, services.IsSafetyConcern(&models.ProductReview{Rating: 5, Content: "Allergic reaction but still 5 stars?"}, cfg))
	assert.True(t, services.IsSafetyConcern(&models.ProductReview{Rating: 4, Title: "Vomiting", Content: "twice after eating"}, cfg))
	assert.False(t, services.IsSafetyConcern(&models.ProductReview{Rating: 3, Content: "fine"}, cfg))
}
