package domain

import "time"

// BatchItemResult is the outcome of one attempted item. Exactly one of
// Result/Error is meaningful depending on Success.
type BatchItemResult struct {
	ItemID  string `json:"item_id"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult aggregates per-item outcomes of one operation run.
// Invariant: SuccessCount + FailureCount == TotalItems == len(Results),
// even under partial failure.
type BatchResult struct {
	OperationID  string            `json:"operation_id"`
	TotalItems   int               `json:"total_items"`
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	Results      []BatchItemResult `json:"results"`
	Duration     time.Duration     `json:"duration"`
	CompletedAt  time.Time         `json:"completed_at"`
}

// ProgressUpdate is an ephemeral UI-facing progress snapshot. It is produced
// and consumed within a single operation's lifetime and never persisted.
type ProgressUpdate struct {
	OperationID            string         `json:"operation_id"`
	Progress               float64        `json:"progress"` // [0,100]
	Status                 string         `json:"status"`
	EstimatedTimeRemaining time.Duration  `json:"estimated_time_remaining"`
	Data                   map[string]any `json:"data,omitempty"`
}
