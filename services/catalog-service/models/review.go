package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductReview is a community review of a product.
type ProductReview struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     string         `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Rating     int            `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Title      string         `gorm:"type:varchar(255)" json:"title,omitempty"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	IsVerified bool           `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateReviewRequest is the payload for posting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content" binding:"required,min=1"`
}

// UpdateReviewRequest is the payload for editing a review.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}
