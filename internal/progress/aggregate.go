package progress

import "fabline/internal/pipeline"

// ItemProgress is the derived state of one order item.
type ItemProgress struct {
	Stage      pipeline.Stage
	Percentage float64
	// Terminal marks items the order backend already closed out, independent
	// of what the ledger says about their stage.
	Terminal bool
}

// Summary is the order-level completion rollup. It is recomputed on demand
// and never cached beyond a single derivation call.
type Summary struct {
	OrderID        string
	Percentage     float64
	PerItem        map[string]ItemProgress
	TotalItems     int
	CompletedItems int
}

// Contribution returns the completion points one item adds to the order
// percentage. Each working stage contributes its ordinal times 25; terminal
// items contribute the full 100 regardless of derived stage.
func Contribution(item ItemProgress) float64 {
	if item.Terminal {
		return 100
	}
	return float64(item.Stage.Ordinal()) * 25
}

// Aggregate converts per-item derived stages into the order summary.
//
// The order percentage is the arithmetic mean of item contributions, clamped
// to 100. An order with zero items reports 0. CompletedItems counts items
// that are terminal or whose derived stage is the final working stage; the
// two criteria can disagree for an item parked at the final stage without a
// terminal status, and both are applied as independent checks.
func Aggregate(orderID string, items map[string]ItemProgress) Summary {
	summary := Summary{
		OrderID:    orderID,
		PerItem:    make(map[string]ItemProgress, len(items)),
		TotalItems: len(items),
	}
	if len(items) == 0 {
		return summary
	}

	var total float64
	for id, item := range items {
		points := Contribution(item)
		item.Percentage = points
		summary.PerItem[id] = item
		total += points
		if item.Terminal || item.Stage == pipeline.StageFinished {
			summary.CompletedItems++
		}
	}

	percentage := total / float64(len(items))
	if percentage > 100 {
		percentage = 100
	}
	summary.Percentage = percentage
	return summary
}
