package models

import (
	"time"

	"github.com/google/uuid"
)

type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesFish   Species = "fish"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Pet is a companion animal owned by one user.
type Pet struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerUserID string     `gorm:"type:varchar(64);not null;index" json:"owner_user_id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Species     Species    `gorm:"type:varchar(20);not null" json:"species"`
	Breed       string     `gorm:"type:varchar(100)" json:"breed,omitempty"`
	Sex         string     `gorm:"type:varchar(10)" json:"sex,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	WeightKg    *float64   `json:"weight_kg,omitempty"`
	Allergies   []string   `gorm:"type:jsonb;serializer:json" json:"allergies"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// SavedProduct links a pet to a catalog product the owner wants to track.
// ProductID is a weak reference into the catalog service.
type SavedProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PetID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_pet_product;constraint:OnDelete:CASCADE" json:"pet_id"`
	Pet         *Pet      `gorm:"foreignKey:PetID" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_pet_product;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CreatePetRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Species   Species    `json:"species" binding:"required,oneof=dog cat bird fish rabbit other"`
	Breed     string     `json:"breed" binding:"max=100"`
	Sex       string     `json:"sex" binding:"omitempty,oneof=male female unknown"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  *float64   `json:"weight_kg" binding:"omitempty,gt=0"`
	Allergies []string   `json:"allergies" binding:"omitempty,dive,min=1,max=100"`
	Notes     string     `json:"notes"`
}

type UpdatePetRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Species   *Species   `json:"species" binding:"omitempty,oneof=dog cat bird fish rabbit other"`
	Breed     *string    `json:"breed" binding:"omitempty,max=100"`
	Sex       *string    `json:"sex" binding:"omitempty,oneof=male female unknown"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  *float64   `json:"weight_kg" binding:"omitempty,gt=0"`
	Allergies []string   `json:"allergies" binding:"omitempty,dive,min=1,max=100"`
	Notes     *string    `json:"notes"`
}

type SaveProductRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"max=255"`
	Notes       string    `json:"notes"`
}
