package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScanKind identifies what the client scanned.
type ScanKind string

const (
	ScanKindBarcode ScanKind = "barcode"
	ScanKindImage   ScanKind = "image"
)

// ScanStatus is the outcome recorded for a scan attempt.
type ScanStatus string

const (
	ScanStatusFound    ScanStatus = "found"
	ScanStatusInternet ScanStatus = "internet"
	ScanStatusNotFound ScanStatus = "not_found"
	ScanStatusFailed   ScanStatus = "failed"
	// ScanStatusRecorded marks client-submitted history entries.
	ScanStatusRecorded ScanStatus = "recorded"
)

// ResultSource says where a resolved product came from.
type ResultSource string

const (
	SourceLocal    ResultSource = "local"
	SourceInternet ResultSource = "internet"
	SourceNone     ResultSource = "none"
)

// ScanHistory is an append-only log entry of one scan attempt. ProductID is
// a weak reference; deleting a product leaves its history intact.
type ScanHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         string          `gorm:"type:varchar(64);not null;index" json:"user_id"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ScanType       ScanKind        `gorm:"type:varchar(20);not null" json:"scan_type"`
	ScannedData    string          `gorm:"type:text;not null" json:"scanned_data"`
	Status         ScanStatus      `gorm:"type:varchar(20);not null" json:"status"`
	AnalysisResult json.RawMessage `gorm:"type:jsonb" json:"analysis_result,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName keeps the singular table name used by the original schema.
func (ScanHistory) TableName() string {
	return "scan_history"
}

// ScanPayload is what the scanner hands to the intake workflow.
type ScanPayload struct {
	Kind  ScanKind `json:"kind" binding:"required,scankind"`
	Value string   `json:"value"`
}

// RecordScanRequest lets a client log a scan it resolved on its own.
type RecordScanRequest struct {
	ScannedData    string          `json:"scannedData" binding:"required"`
	ScanType       ScanKind        `json:"scanType" binding:"omitempty,scankind"`
	ProductID      *uuid.UUID      `json:"productId"`
	AnalysisResult json.RawMessage `json:"analysisResult"`
}

// AnalysisResult is the output of one safety analysis.
type AnalysisResult struct {
	CosmicScore           int               `json:"cosmicScore"`
	CosmicClarity         CosmicClarity     `json:"cosmicClarity"`
	SuspiciousIngredients []string          `json:"suspiciousIngredients"`
	TransparencyLevel     TransparencyLevel `json:"transparencyLevel"`
	IsBlacklisted         bool              `json:"isBlacklisted"`
	ActiveRecalls         int               `json:"activeRecalls"`
	SafetyConcernReviews  int               `json:"safetyConcernReviews"`
	TotalReviews          int               `json:"totalReviews"`
	Partial               bool              `json:"partial,omitempty"`
	AnalyzedAt            time.Time         `json:"analyzedAt"`
}

// ScanResult is returned to the scanner UI.
type ScanResult struct {
	ScanID   *uuid.UUID      `json:"scanId,omitempty"`
	Status   ScanStatus      `json:"status"`
	Source   ResultSource    `json:"source"`
	Product  *Product        `json:"product"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// InternetSearchRequest asks the external search collaborator for a product.
type InternetSearchRequest struct {
	Type  ScanKind `json:"type" binding:"required,scankind"`
	Query string   `json:"query" binding:"required"`
}

// InternetSearchResponse wraps an optional internet candidate.
type InternetSearchResponse struct {
	Source  ResultSource `json:"source,omitempty"`
	Product *Product     `json:"product"`
}

// AcceptCandidateRequest turns an internet candidate into a catalog product.
type AcceptCandidateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Brand       string `json:"brand" binding:"max=255"`
	Category    string `json:"category" binding:"max=100"`
	Ingredients string `json:"ingredients"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	SourceURL   string `json:"source_url" binding:"omitempty,url"`
	Barcode     string `json:"barcode" binding:"omitempty,barcode"`
}

// PresignUploadRequest asks for a presigned image upload URL.
type PresignUploadRequest struct {
	Purpose     string `json:"purpose" binding:"required,oneof=scan product"`
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// PresignUploadResponse is returned to the client before a direct S3 upload.
type PresignUploadResponse struct {
	UploadURL string            `json:"upload_url"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers"`
	ExpiresIn int64             `json:"expires_in"`
}
