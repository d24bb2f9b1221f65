package models

import (
	"time"

	"github.com/google/uuid"
)

// RecallSeverity grades a product recall.
type RecallSeverity string

const (
	RecallUrgent   RecallSeverity = "urgent"
	RecallModerate RecallSeverity = "moderate"
	// RecallMedium is accepted as a legacy alias of moderate.
	RecallMedium RecallSeverity = "medium"
	RecallLow    RecallSeverity = "low"
)

// ProductRecall is an official recall notice. Recalls are never deleted,
// only deactivated.
type ProductRecall struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product       `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	RecallNumber    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"recall_number"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	Severity        RecallSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	RecallDate      time.Time      `gorm:"not null" json:"recall_date"`
	AffectedBatches []string       `gorm:"type:jsonb;serializer:json" json:"affected_batches,omitempty"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateRecallRequest is the admin payload for issuing a recall.
type CreateRecallRequest struct {
	ProductID       uuid.UUID      `json:"product_id" binding:"required"`
	RecallNumber    string         `json:"recall_number" binding:"required,max=64"`
	Title           string         `json:"title" binding:"required,max=255"`
	Description     string         `json:"description"`
	Severity        RecallSeverity `json:"severity" binding:"required,oneof=urgent moderate medium low"`
	RecallDate      time.Time      `json:"recall_date" binding:"required"`
	AffectedBatches []string       `json:"affected_batches"`
}
