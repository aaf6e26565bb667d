package ledger

import (
	"encoding/json"
	"sort"
	"strings"
)

// rawRecord mirrors the backend's ledger row shape. Fields the backend omits
// or mistypes are tolerated; the row is skipped or defaulted instead of
// failing the whole ledger.
type rawRecord struct {
	StageIndex int      `json:"stageIndex"`
	StageName  string   `json:"stageName"`
	Status     string   `json:"status"`
	Items      []string `json:"itemAssignments"`
}

// Normalize parses a raw ledger payload into an ordered record sequence.
//
// A missing, null, or non-list payload yields an empty slice: absence of a
// ledger means "no progress yet", never an error. Rows with a stage index
// outside 1..4 are dropped. The result is sorted by ascending stage index
// (stable) so derivation always scans a fixed order.
func Normalize(raw json.RawMessage) []Record {
	if len(raw) == 0 {
		return nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}

	records := make([]Record, 0, len(rows))
	for _, rowRaw := range rows {
		// Rows decode independently: one mistyped row is dropped without
		// discarding the rest of the ledger.
		var row rawRecord
		if err := json.Unmarshal(rowRaw, &row); err != nil {
			continue
		}
		if row.StageIndex < 1 || row.StageIndex > 4 {
			continue
		}
		items := make([]string, 0, len(row.Items))
		for _, id := range row.Items {
			if id = strings.TrimSpace(id); id != "" {
				items = append(items, id)
			}
		}
		records = append(records, Record{
			StageIndex: row.StageIndex,
			StageName:  strings.TrimSpace(row.StageName),
			Status:     ParseStatus(row.Status),
			Items:      items,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StageIndex < records[j].StageIndex
	})
	return records
}
