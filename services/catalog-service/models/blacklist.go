package models

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistSeverity grades how harmful a flagged ingredient is.
type BlacklistSeverity string

const (
	BlacklistHigh   BlacklistSeverity = "high"
	BlacklistMedium BlacklistSeverity = "medium"
	BlacklistLow    BlacklistSeverity = "low"
)

// BlacklistEntry is a flagged ingredient name.
type BlacklistEntry struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IngredientName string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"ingredient_name"`
	Reason         string            `gorm:"type:text" json:"reason"`
	Severity       BlacklistSeverity `gorm:"type:varchar(20);not null;default:'medium'" json:"severity"`
	IsActive       bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name used by the rest of the platform.
func (BlacklistEntry) TableName() string {
	return "ingredient_blacklist"
}

// CreateBlacklistRequest is the admin payload for flagging an ingredient.
type CreateBlacklistRequest struct {
	IngredientName string            `json:"ingredient_name" binding:"required,min=2,max=255"`
	Reason         string            `json:"reason"`
	Severity       BlacklistSeverity `json:"severity" binding:"required,oneof=high medium low"`
}

// UpdateBlacklistRequest edits an existing entry.
type UpdateBlacklistRequest struct {
	Reason   *string            `json:"reason"`
	Severity *BlacklistSeverity `json:"severity" binding:"omitempty,oneof=high medium low"`
	IsActive *bool              `json:"is_active"`
}
