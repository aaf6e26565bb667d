package ledger_test

import (
	"encoding/json"
	"testing"

	"fabline/internal/ledger"
)

func TestNormalizeToleratesBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "null", raw: "null"},
		{name: "object instead of list", raw: `{"stageIndex":1}`},
		{name: "bare string", raw: `"oops"`},
		{name: "truncated json", raw: `[{"stageIndex":1`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records := ledger.Normalize(json.RawMessage(tc.raw))
			if len(records) != 0 {
				t.Fatalf("expected empty ledger, got %d records", len(records))
			}
		})
	}
}

func TestNormalizeSortsAndFilters(t *testing.T) {
	raw := json.RawMessage(`[
		{"stageIndex": 3, "stageName": "Final assembly", "status": "in_progress", "itemAssignments": ["a"]},
		{"stageIndex": 0, "stageName": "bogus", "status": "done", "itemAssignments": ["a"]},
		{"stageIndex": 1, "stageName": "Smithing", "status": "done", "itemAssignments": ["a", " ", "b"]},
		{"stageIndex": 9, "stageName": "bogus", "status": "done", "itemAssignments": ["a"]}
	]`)

	records := ledger.Normalize(raw)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].StageIndex != 1 || records[1].StageIndex != 3 {
		t.Fatalf("records not sorted by stage index: %+v", records)
	}
	if got := records[0].Items; len(got) != 2 {
		t.Fatalf("blank item assignments should be dropped, got %v", got)
	}
	if records[0].Status != ledger.StatusDone {
		t.Fatalf("status = %q, want done", records[0].Status)
	}
}

func TestNormalizeDegradesUnknownStatus(t *testing.T) {
	raw := json.RawMessage(`[{"stageIndex": 2, "status": "exploded", "itemAssignments": ["a"]}]`)
	records := ledger.Normalize(raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != ledger.StatusPending {
		t.Fatalf("unknown status should degrade to pending, got %q", records[0].Status)
	}
}

func TestRecordHasItem(t *testing.T) {
	rec := ledger.Record{Items: []string{"a", "b"}}
	if !rec.HasItem("b") {
		t.Fatal("expected HasItem to find b")
	}
	if rec.HasItem("c") {
		t.Fatal("did not expect HasItem to find c")
	}
}

func TestNormalizeSkipsRowsThatFailToDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"stageIndex": 1, "stageName": "Smithing", "status": "done", "itemAssignments": ["a"]},
		{"stageIndex": "two", "status": "done", "itemAssignments": ["a"]},
		{"stageIndex": 3, "status": "in_progress", "itemAssignments": ["a"]}
	]`)

	records := ledger.Normalize(raw)
	if len(records) != 2 {
		t.Fatalf("one mistyped row must not discard the ledger, got %d records", len(records))
	}
	if records[0].StageIndex != 1 || records[1].StageIndex != 3 {
		t.Fatalf("surviving rows = %+v, want stage indexes 1 and 3", records)
	}
}
