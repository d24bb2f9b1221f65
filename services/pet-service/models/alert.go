package models

import (
	"time"

	"github.com/google/uuid"
)

type SubjectType string

const (
	SubjectPet       SubjectType = "pet"
	SubjectLivestock SubjectType = "livestock"
)

const (
	EventRecallIssued      = "recall_issued"
	EventRecallDeactivated = "recall_deactivated"
)

// RecallAlert tells an owner that something their animal eats was recalled.
// One alert exists per (recall, subject).
type RecallAlert struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerUserID  string      `gorm:"type:varchar(64);not null;index" json:"owner_user_id"`
	SubjectType  SubjectType `gorm:"type:varchar(20);not null;uniqueIndex:idx_alert_recall_subject" json:"subject_type"`
	SubjectID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_alert_recall_subject" json:"subject_id"`
	SubjectName  string      `gorm:"type:varchar(100)" json:"subject_name"`
	ProductID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string      `gorm:"type:varchar(255)" json:"product_name,omitempty"`
	RecallNumber string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_alert_recall_subject" json:"recall_number"`
	Severity     string      `gorm:"type:varchar(20);not null" json:"severity"`
	Message      string      `gorm:"type:text;not null" json:"message"`
	IsRead       bool        `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// RecallEvent is the catalog service's recall notification as received
// from the queue.
type RecallEvent struct {
	EventType    string    `json:"event_type"`
	RecallID     string    `json:"recall_id"`
	RecallNumber string    `json:"recall_number"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Severity     string    `json:"severity"`
	Title        string    `json:"title"`
	Timestamp    time.Time `json:"timestamp"`
}

type AlertFilter struct {
	OwnerUserID string
	UnreadOnly  bool
	Page        int
	Limit       int
}
