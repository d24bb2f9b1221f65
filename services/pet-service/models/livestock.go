package models

import (
	"time"

	"github.com/google/uuid"
)

// Livestock is a herd or flock tracked as one unit.
type Livestock struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerUserID string    `gorm:"type:varchar(64);not null;index" json:"owner_user_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Species     string    `gorm:"type:varchar(50);not null" json:"species"`
	HeadCount   int       `gorm:"not null;default:1" json:"head_count"`
	Location    string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Livestock) TableName() string {
	return "livestock"
}

// FeedRecord logs a feeding. ProductID optionally points at a catalog product
// so recalls can reach the herd's owner.
type FeedRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LivestockID uuid.UUID  `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"livestock_id"`
	Livestock   *Livestock `gorm:"foreignKey:LivestockID" json:"-"`
	FeedName    string     `gorm:"type:varchar(255);not null" json:"feed_name"`
	Brand       string     `gorm:"type:varchar(255)" json:"brand,omitempty"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	Unit        string     `gorm:"type:varchar(20);not null" json:"unit"`
	FedAt       time.Time  `gorm:"not null;index" json:"fed_at"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type CreateLivestockRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Species   string `json:"species" binding:"required,min=1,max=50"`
	HeadCount int    `json:"head_count" binding:"required,gte=1"`
	Location  string `json:"location" binding:"max=255"`
	Notes     string `json:"notes"`
}

type UpdateLivestockRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Species   *string `json:"species" binding:"omitempty,min=1,max=50"`
	HeadCount *int    `json:"head_count" binding:"omitempty,gte=1"`
	Location  *string `json:"location" binding:"omitempty,max=255"`
	Notes     *string `json:"notes"`
}

type CreateFeedRecordRequest struct {
	FeedName  string     `json:"feed_name" binding:"required,min=1,max=255"`
	Brand     string     `json:"brand" binding:"max=255"`
	ProductID *uuid.UUID `json:"product_id"`
	Quantity  float64    `json:"quantity" binding:"required,gt=0"`
	Unit      string     `json:"unit" binding:"required,oneof=kg lb g bale scoop"`
	FedAt     *time.Time `json:"fed_at"`
	Notes     string     `json:"notes"`
}
