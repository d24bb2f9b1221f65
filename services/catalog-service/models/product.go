package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CosmicClarity is the qualitative safety label shown next to the score.
type CosmicClarity string

const (
	ClarityBlessed      CosmicClarity = "blessed"
	ClarityQuestionable CosmicClarity = "questionable"
	ClarityCursed       CosmicClarity = "cursed"
	ClarityUnknown      CosmicClarity = "unknown"
)

// TransparencyLevel grades how much an ingredient list discloses.
type TransparencyLevel string

const (
	TransparencyExcellent TransparencyLevel = "excellent"
	TransparencyGood      TransparencyLevel = "good"
	TransparencyPoor      TransparencyLevel = "poor"
)

// Product is a catalog entry together with its derived safety attributes.
type Product struct {
	ID                    uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                  string            `gorm:"type:varchar(255);not null;index" json:"name"`
	Brand                 string            `gorm:"type:varchar(255);index" json:"brand"`
	Category              string            `gorm:"type:varchar(100);index" json:"category"`
	Ingredients           string            `gorm:"type:text" json:"ingredients"`
	ImageURL              string            `gorm:"type:text" json:"image_url,omitempty"`
	SourceURL             string            `gorm:"type:text" json:"source_url,omitempty"`
	Barcode               *string           `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	BaselineScore         *int              `json:"baseline_score,omitempty"`
	CosmicScore           int               `gorm:"not null;default:50;check:cosmic_score BETWEEN 0 AND 100" json:"cosmic_score"`
	CosmicClarity         CosmicClarity     `gorm:"type:varchar(20);not null;default:'unknown'" json:"cosmic_clarity"`
	ClarityOverridden     bool              `gorm:"not null;default:false" json:"clarity_overridden"`
	TransparencyLevel     TransparencyLevel `gorm:"type:varchar(20);not null;default:'poor'" json:"transparency_level"`
	IsBlacklisted         bool              `gorm:"not null;default:false" json:"is_blacklisted"`
	SuspiciousIngredients []string          `gorm:"type:jsonb;serializer:json" json:"suspicious_ingredients"`
	DisposalInstructions  string            `gorm:"type:text" json:"disposal_instructions,omitempty"`
	LastAnalyzedAt        *time.Time        `json:"last_analyzed_at,omitempty"`
	CreatedBy             string            `gorm:"type:varchar(64)" json:"created_by,omitempty"`
	CreatedAt             time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt    `gorm:"index" json:"-"`
}

// IsStale reports whether the stored analysis is missing or older than maxAge.
func (p *Product) IsStale(now time.Time, maxAge time.Duration) bool {
	if p.LastAnalyzedAt == nil {
		return true
	}
	return now.Sub(*p.LastAnalyzedAt) > maxAge
}

// CreateProductRequest is the admin payload for adding a product.
type CreateProductRequest struct {
	Name                 string `json:"name" binding:"required,min=1,max=255"`
	Brand                string `json:"brand" binding:"max=255"`
	Category             string `json:"category" binding:"max=100"`
	Ingredients          string `json:"ingredients"`
	ImageURL             string `json:"image_url" binding:"omitempty,url"`
	SourceURL            string `json:"source_url" binding:"omitempty,url"`
	Barcode              string `json:"barcode" binding:"omitempty,barcode"`
	BaselineScore        *int   `json:"baseline_score" binding:"omitempty,gte=0,lte=100"`
	DisposalInstructions string `json:"disposal_instructions"`
}

// UpdateProductRequest carries the fields an admin may change. Derived safety
// fields are written only by analysis.
type UpdateProductRequest struct {
	Name                 *string `json:"name" binding:"omitempty,min=1,max=255"`
	Brand                *string `json:"brand" binding:"omitempty,max=255"`
	Category             *string `json:"category" binding:"omitempty,max=100"`
	Ingredients          *string `json:"ingredients"`
	ImageURL             *string `json:"image_url" binding:"omitempty,url"`
	SourceURL            *string `json:"source_url" binding:"omitempty,url"`
	Barcode              *string `json:"barcode" binding:"omitempty,barcode"`
	BaselineScore        *int    `json:"baseline_score" binding:"omitempty,gte=0,lte=100"`
	DisposalInstructions *string `json:"disposal_instructions"`
}

// ClarityOverrideRequest is the admin "bless / curse" action.
type ClarityOverrideRequest struct {
	Clarity CosmicClarity `json:"clarity" binding:"required,oneof=blessed questionable cursed"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Clarity  CosmicClarity
	Search   string
	Page     int
	Limit    int
}
