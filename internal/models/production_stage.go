package models

import "time"

// ProductionStage is one named phase of manufacturing for an order. Stage
// numbers define display order only; nothing prevents a later stage from
// reaching 100% before an earlier one.
type ProductionStage struct {
	ID                int        `json:"id"`
	OrderID           int        `json:"order_id"`
	StageName         string     `json:"stage_name"`
	StageNumber       int        `json:"stage_number"`
	Status            string     `json:"status"` // 'pending', 'in_progress', 'completed'
	CompletionPercent int        `json:"completion_percent"`
	Photos            []string   `json:"photos,omitempty"` // storage object URLs
	Notes             string     `json:"notes,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type CreateStageRequest struct {
	OrderID     int    `json:"order_id"`
	StageName   string `json:"stage_name"`
	StageNumber int    `json:"stage_number"`
}

// UpdateStageRequest is a partial update; absent fields leave the stage's
// current values alone, which is why the percent is a pointer.
type UpdateStageRequest struct {
	Status            string   `json:"status"`
	CompletionPercent *int     `json:"completion_percent"`
	Notes             string   `json:"notes"`
	Photos            []string `json:"photos"`
}

// OrderProgress is the progress view for one order: each stage plus the
// overall unweighted mean.
type OrderProgress struct {
	OrderID        int               `json:"order_id"`
	OverallPercent int               `json:"overall_percent"`
	Stages         []ProductionStage `json:"stages"`
}
