package directory_test

import (
	"context"
	"testing"

	"fabline/internal/directory"
	"fabline/internal/reconcile"
	"fabline/internal/testsupport"
)

func TestRecordEditFirstSightingProducesNoChange(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenDirectory(t, cfg)

	_, ok, err := store.RecordEdit(context.Background(), reconcile.Employee{
		ID: "emp-1", Name: "kari holm", Role: "smith",
	})
	if err != nil {
		t.Fatalf("RecordEdit: %v", err)
	}
	if ok {
		t.Fatal("first sighting must not produce a change")
	}

	emp, found, err := store.Get(context.Background(), "emp-1")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if emp.Name != "Kari Holm" {
		t.Fatalf("name should be canonicalized, got %q", emp.Name)
	}
}

func TestRecordEditDetectsFieldChange(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenDirectory(t, cfg)
	ctx := context.Background()

	seed := reconcile.Employee{ID: "emp-1", Name: "Kari Holm", Role: "smith"}
	if _, _, err := store.RecordEdit(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	change, ok, err := store.RecordEdit(ctx, reconcile.Employee{
		ID: "emp-1", Name: "Kari Holm", Role: "foreman",
	})
	if err != nil {
		t.Fatalf("RecordEdit: %v", err)
	}
	if !ok {
		t.Fatal("expected a role change")
	}
	if change.Field != reconcile.FieldRole || change.Previous != "smith" || change.New != "foreman" {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestRecordEditIgnoresFormattingOnlyNameEdits(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenDirectory(t, cfg)
	ctx := context.Background()

	if _, _, err := store.RecordEdit(ctx, reconcile.Employee{ID: "emp-1", Name: "Kari Holm", Role: "smith"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, ok, err := store.RecordEdit(ctx, reconcile.Employee{ID: "emp-1", Name: "  kari   holm ", Role: "smith"})
	if err != nil {
		t.Fatalf("RecordEdit: %v", err)
	}
	if ok {
		t.Fatal("whitespace/case-only edit must not produce a change")
	}
}

func TestListReturnsOrderedSnapshots(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenDirectory(t, cfg)
	ctx := context.Background()

	for _, emp := range []reconcile.Employee{
		{ID: "emp-2", Name: "Ove Lund", Role: "painter"},
		{ID: "emp-1", Name: "Kari Holm", Role: "smith"},
	} {
		if _, _, err := store.RecordEdit(ctx, emp); err != nil {
			t.Fatalf("seed %s: %v", emp.ID, err)
		}
	}

	employees, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(employees) != 2 || employees[0].ID != "emp-1" {
		t.Fatalf("unexpected listing %+v", employees)
	}
}

func TestCanonicalName(t *testing.T) {
	if got := directory.CanonicalName("  ove   lund "); got != "Ove Lund" {
		t.Fatalf("got %q, want %q", got, "Ove Lund")
	}
	if got := directory.CanonicalName("   "); got != "" {
		t.Fatalf("blank name should canonicalize to empty, got %q", got)
	}
}
