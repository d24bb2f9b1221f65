package models

import "time"

const (
	EventRecallIssued      = "recall_issued"
	EventRecallDeactivated = "recall_deactivated"
	EventProductAnalyzed   = "product_analyzed"
)

// RecallEvent is published to SNS when a recall is issued or withdrawn.
type RecallEvent struct {
	EventType    string         `json:"event_type"`
	RecallID     string         `json:"recall_id"`
	RecallNumber string         `json:"recall_number"`
	ProductID    string         `json:"product_id"`
	ProductName  string         `json:"product_name"`
	Severity     RecallSeverity `json:"severity"`
	Title        string         `json:"title"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ProductAnalyzedEvent is published after a product's score changes.
type ProductAnalyzedEvent struct {
	EventType     string        `json:"event_type"`
	ProductID     string        `json:"product_id"`
	CosmicScore   int           `json:"cosmic_score"`
	CosmicClarity CosmicClarity `json:"cosmic_clarity"`
	PreviousScore int           `json:"previous_score"`
	Timestamp     time.Time     `json:"timestamp"`
}
