package pipeline_test

import (
	"testing"

	"fabline/internal/ledger"
	"fabline/internal/pipeline"
)

func row(index int, status ledger.Status, items ...string) ledger.Record {
	return ledger.Record{StageIndex: index, Status: status, Items: items}
}

func TestDeriveDefaultsToSmithing(t *testing.T) {
	if got := pipeline.Derive("a", nil); got != pipeline.StageSmithing {
		t.Fatalf("empty ledger: got %v, want smithing", got)
	}

	records := []ledger.Record{row(1, ledger.StatusDone, "other")}
	if got := pipeline.Derive("a", records); got != pipeline.StageSmithing {
		t.Fatalf("unassigned item: got %v, want smithing", got)
	}
}

func TestDeriveRowCandidates(t *testing.T) {
	tests := []struct {
		name   string
		record ledger.Record
		want   pipeline.Stage
	}{
		{"row 1 open", row(1, ledger.StatusInProgress, "a"), pipeline.StageSmithing},
		{"row 1 done", row(1, ledger.StatusDone, "a"), pipeline.StagePuttying},
		{"row 2 open", row(2, ledger.StatusPending, "a"), pipeline.StagePuttying},
		{"row 2 done", row(2, ledger.StatusDone, "a"), pipeline.StageFinalAssembly},
		{"row 3 open", row(3, ledger.StatusInProgress, "a"), pipeline.StageFinalAssembly},
		{"row 3 done", row(3, ledger.StatusDone, "a"), pipeline.StageFinished},
		{"row 4 open", row(4, ledger.StatusInProgress, "a"), pipeline.StageFinalAssembly},
		{"row 4 done", row(4, ledger.StatusDone, "a"), pipeline.StageFinished},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pipeline.Derive("a", []ledger.Record{tc.record}); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeriveLastMatchWins(t *testing.T) {
	records := []ledger.Record{
		row(1, ledger.StatusDone, "a"),
		row(2, ledger.StatusInProgress, "a"),
	}
	if got := pipeline.Derive("a", records); got != pipeline.StagePuttying {
		t.Fatalf("got %v, want puttying", got)
	}

	// A later completed row overrides an earlier open one even though the
	// earlier row claims the item is still in flight.
	records = []ledger.Record{
		row(1, ledger.StatusInProgress, "a"),
		row(3, ledger.StatusDone, "a"),
	}
	if got := pipeline.Derive("a", records); got != pipeline.StageFinished {
		t.Fatalf("got %v, want finished", got)
	}
}

func TestDeriveIsMonotonic(t *testing.T) {
	base := []ledger.Record{
		row(1, ledger.StatusDone, "a"),
		row(2, ledger.StatusInProgress, "a"),
	}
	before := pipeline.Derive("a", base)

	grown := append(append([]ledger.Record{}, base...), row(3, ledger.StatusDone, "a"))
	after := pipeline.Derive("a", grown)

	if after < before {
		t.Fatalf("derivation regressed: %v -> %v", before, after)
	}
	if after != pipeline.StageFinished {
		t.Fatalf("got %v, want finished", after)
	}
}

func TestDeriveAll(t *testing.T) {
	records := []ledger.Record{
		row(1, ledger.StatusDone, "a", "b"),
		row(2, ledger.StatusInProgress, "b"),
	}
	stages := pipeline.DeriveAll([]string{"a", "b", "c"}, records)
	if stages["a"] != pipeline.StagePuttying {
		t.Fatalf("a = %v, want puttying", stages["a"])
	}
	if stages["b"] != pipeline.StagePuttying {
		t.Fatalf("b = %v, want puttying", stages["b"])
	}
	if stages["c"] != pipeline.StageSmithing {
		t.Fatalf("c = %v, want smithing default", stages["c"])
	}
}

func TestStageOrdinalAndNext(t *testing.T) {
	if pipeline.StagePending.Ordinal() != 0 {
		t.Fatal("pending should have no working ordinal")
	}
	if pipeline.StageFinished.Ordinal() != 4 {
		t.Fatalf("finished ordinal = %d, want 4", pipeline.StageFinished.Ordinal())
	}
	if pipeline.StageFinished.Next() != pipeline.StageFinished {
		t.Fatal("Next should saturate at finished")
	}
	if pipeline.StageSmithing.Next() != pipeline.StagePuttying {
		t.Fatal("Next(smithing) should be puttying")
	}
}

func TestParseStageRoundTrip(t *testing.T) {
	for _, stage := range []pipeline.Stage{
		pipeline.StagePending,
		pipeline.StageSmithing,
		pipeline.StagePuttying,
		pipeline.StageFinalAssembly,
		pipeline.StageFinished,
	} {
		parsed, ok := pipeline.ParseStage(stage.String())
		if !ok || parsed != stage {
			t.Fatalf("round trip failed for %v", stage)
		}
	}
	if _, ok := pipeline.ParseStage("bogus"); ok {
		t.Fatal("expected bogus stage name to fail parsing")
	}
}
