package pipeline

import "fabline/internal/ledger"

// DefaultStage is reported for items with no ledger assignments: a fresh
// order item is assumed to be on the smith's bench.
const DefaultStage = StageSmithing

// Derive computes an item's current pipeline stage from its order's
// normalized ledger.
//
// Rows are scanned in ascending stage-index order; for every row assigned to
// the item the candidate stage is the row's own stage when the row is still
// open and the successor stage when the row is done. The last matching row
// wins: higher-index rows represent strictly later pipeline positions, so
// their candidate overrides anything derived from earlier rows regardless of
// status. This keeps derivation monotonic as the ledger grows.
func Derive(itemID string, records []ledger.Record) Stage {
	stage := DefaultStage
	for _, rec := range records {
		if !rec.HasItem(itemID) {
			continue
		}
		stage = candidate(rec)
	}
	return stage
}

func candidate(rec ledger.Record) Stage {
	done := rec.Status == ledger.StatusDone
	switch rec.StageIndex {
	case 1:
		if done {
			return StagePuttying
		}
		return StageSmithing
	case 2:
		if done {
			return StageFinalAssembly
		}
		return StagePuttying
	case 3:
		if done {
			return StageFinished
		}
		return StageFinalAssembly
	case 4:
		// The billing row reports Finished only once closed out; an open
		// billing row still shows the item on the assembly floor.
		if done {
			return StageFinished
		}
		return StageFinalAssembly
	default:
		return DefaultStage
	}
}

// DeriveAll computes stages for every item ID in one pass per item.
func DeriveAll(itemIDs []string, records []ledger.Record) map[string]Stage {
	stages := make(map[string]Stage, len(itemIDs))
	for _, id := range itemIDs {
		stages[id] = Derive(id, records)
	}
	return stages
}
