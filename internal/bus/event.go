package bus

import "fabline/internal/pipeline"

// StageChangeEvent announces that an order item moved to a new pipeline
// stage. Events are transient: they exist for the duration of a notification
// and are never persisted.
type StageChangeEvent struct {
	OrderID       string         `json:"order_id"`
	ItemID        string         `json:"item_id"`
	NewStage      pipeline.Stage `json:"new_stage"`
	PreviousStage pipeline.Stage `json:"previous_stage"`
	NextStage     pipeline.Stage `json:"next_stage"`
}
