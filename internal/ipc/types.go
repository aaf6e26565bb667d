package ipc

import (
	"sort"
	"time"

	"fabline/internal/bus"
	"fabline/internal/progress"
	"fabline/internal/reconcile"
)

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StageChange mirrors a bus event for IPC consumers.
type StageChange struct {
	OrderID       string `json:"order_id"`
	ItemID        string `json:"item_id"`
	NewStage      string `json:"new_stage"`
	PreviousStage string `json:"previous_stage"`
	NextStage     string `json:"next_stage"`
}

// StatusResponse represents combined daemon status information.
type StatusResponse struct {
	Running        bool          `json:"running"`
	TrackedOrders  []string      `json:"tracked_orders"`
	PendingChanges int           `json:"pending_changes"`
	RecentEvents   []StageChange `json:"recent_events"`
	LockPath       string        `json:"lock_path"`
	DirectoryPath  string        `json:"directory_path"`
	PID            int           `json:"pid"`
}

// TrackRequest adds an order to the daemon's watch set.
type TrackRequest struct {
	OrderID string `json:"order_id"`
}

// TrackResponse confirms the watch set after the change.
type TrackResponse struct {
	TrackedOrders []string `json:"tracked_orders"`
}

// UntrackRequest removes an order from the watch set.
type UntrackRequest struct {
	OrderID string `json:"order_id"`
}

// UntrackResponse confirms the watch set after the change.
type UntrackResponse struct {
	TrackedOrders []string `json:"tracked_orders"`
}

// ProgressRequest computes an order's completion summary.
type ProgressRequest struct {
	OrderID string `json:"order_id"`
}

// ItemProgress is the per-item slice of a progress summary.
type ItemProgress struct {
	ItemID     string  `json:"item_id"`
	Stage      string  `json:"stage"`
	StageLabel string  `json:"stage_label"`
	Percentage float64 `json:"percentage"`
	Terminal   bool    `json:"terminal"`
}

// ProgressResponse carries the order-level rollup.
type ProgressResponse struct {
	OrderID        string         `json:"order_id"`
	Percentage     float64        `json:"percentage"`
	TotalItems     int            `json:"total_items"`
	CompletedItems int            `json:"completed_items"`
	Items          []ItemProgress `json:"items"`
}

// ChangesRequest lists pending reconciliation changes.
type ChangesRequest struct{}

// PendingChange mirrors a reconcile.ChangeRecord for IPC consumers.
type PendingChange struct {
	Seq       uint64    `json:"seq"`
	SubjectID string    `json:"subject_id"`
	Field     string    `json:"field"`
	Previous  string    `json:"previous"`
	New       string    `json:"new"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangesResponse carries the pending collection snapshot.
type ChangesResponse struct {
	Changes []PendingChange `json:"changes"`
}

// RetryRequest forces an immediate reconciliation pass.
type RetryRequest struct{}

// RetryResponse reports the pending count after the pass.
type RetryResponse struct {
	PendingChanges int `json:"pending_changes"`
}

// Employee mirrors a directory snapshot record for IPC consumers.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// EmployeesRequest lists the directory snapshot.
type EmployeesRequest struct{}

// EmployeesResponse carries the snapshot ordered by employee ID.
type EmployeesResponse struct {
	Employees []Employee `json:"employees"`
}

// EmployeeSetRequest records an employee edit in the directory snapshot.
type EmployeeSetRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// EmployeeSetResponse reports the stored record and any change queued for
// synchronization.
type EmployeeSetResponse struct {
	Employee       Employee       `json:"employee"`
	Change         *PendingChange `json:"change,omitempty"`
	PendingChanges int            `json:"pending_changes"`
}

func fromStageChange(ev bus.StageChangeEvent) StageChange {
	return StageChange{
		OrderID:       ev.OrderID,
		ItemID:        ev.ItemID,
		NewStage:      ev.NewStage.String(),
		PreviousStage: ev.PreviousStage.String(),
		NextStage:     ev.NextStage.String(),
	}
}

func fromSummary(summary progress.Summary) ProgressResponse {
	resp := ProgressResponse{
		OrderID:        summary.OrderID,
		Percentage:     summary.Percentage,
		TotalItems:     summary.TotalItems,
		CompletedItems: summary.CompletedItems,
		Items:          make([]ItemProgress, 0, len(summary.PerItem)),
	}
	for id, item := range summary.PerItem {
		resp.Items = append(resp.Items, ItemProgress{
			ItemID:     id,
			Stage:      item.Stage.String(),
			StageLabel: item.Stage.Label(),
			Percentage: item.Percentage,
			Terminal:   item.Terminal,
		})
	}
	sort.Slice(resp.Items, func(i, j int) bool {
		return resp.Items[i].ItemID < resp.Items[j].ItemID
	})
	return resp
}

func fromChangeRecords(records []reconcile.ChangeRecord) []PendingChange {
	changes := make([]PendingChange, 0, len(records))
	for _, rec := range records {
		changes = append(changes, PendingChange{
			Seq:       rec.Seq,
			SubjectID: rec.SubjectID,
			Field:     string(rec.Field),
			Previous:  rec.Previous,
			New:       rec.New,
			CreatedAt: rec.CreatedAt,
		})
	}
	return changes
}
