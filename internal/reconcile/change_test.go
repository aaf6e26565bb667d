package reconcile_test

import (
	"testing"

	"fabline/internal/reconcile"
)

func TestDetectReturnsFirstDifferingField(t *testing.T) {
	before := reconcile.Employee{ID: "emp-1", Name: "Kari Holm", Role: "smith"}
	after := reconcile.Employee{ID: "emp-1", Name: "Kari Holm-Berg", Role: "foreman"}

	change, ok := reconcile.Detect(before, after)
	if !ok {
		t.Fatal("expected a change")
	}
	// Both fields differ; name is first in the watched order and wins.
	if change.Field != reconcile.FieldName {
		t.Fatalf("field = %q, want name", change.Field)
	}
	if change.Previous != "Kari Holm" || change.New != "Kari Holm-Berg" {
		t.Fatalf("unexpected values %+v", change)
	}
	if change.SubjectID != "emp-1" {
		t.Fatalf("subject = %q, want emp-1", change.SubjectID)
	}
}

func TestDetectRoleOnly(t *testing.T) {
	before := reconcile.Employee{ID: "emp-2", Name: "Ove Lund", Role: "painter"}
	after := reconcile.Employee{ID: "emp-2", Name: "Ove Lund", Role: "glazier"}

	change, ok := reconcile.Detect(before, after)
	if !ok {
		t.Fatal("expected a change")
	}
	if change.Field != reconcile.FieldRole {
		t.Fatalf("field = %q, want role", change.Field)
	}
}

func TestDetectNoChange(t *testing.T) {
	emp := reconcile.Employee{ID: "emp-3", Name: "Siri Dahl", Role: "smith"}
	if _, ok := reconcile.Detect(emp, emp); ok {
		t.Fatal("identical snapshots must not produce a change")
	}
}

func TestDetectAssignsUniqueIdentity(t *testing.T) {
	before := reconcile.Employee{ID: "emp-4", Name: "A", Role: "smith"}
	afterOne := reconcile.Employee{ID: "emp-4", Name: "B", Role: "smith"}
	afterTwo := reconcile.Employee{ID: "emp-4", Name: "C", Role: "smith"}

	first, _ := reconcile.Detect(before, afterOne)
	second, _ := reconcile.Detect(afterOne, afterTwo)
	if first.Seq == second.Seq {
		t.Fatalf("rapid successive edits must get distinct identities, both got %d", first.Seq)
	}
	if second.Seq < first.Seq {
		t.Fatalf("sequence must be monotonic: %d then %d", first.Seq, second.Seq)
	}
}
