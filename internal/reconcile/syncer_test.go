package reconcile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fabline/internal/config"
	"fabline/internal/reconcile"
)

func TestHTTPSyncerPostsChange(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employees/changes" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Backend.BaseURL = server.URL
	syncer := reconcile.NewHTTPSyncer(&cfg)

	change := reconcile.ChangeRecord{
		Seq:       1,
		SubjectID: "emp-1",
		Field:     reconcile.FieldRole,
		Previous:  "smith",
		New:       "foreman",
		CreatedAt: time.Now().UTC(),
	}
	if err := syncer.Sync(context.Background(), change); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if received["subjectId"] != "emp-1" || received["field"] != "role" || received["newValue"] != "foreman" {
		t.Fatalf("unexpected payload %v", received)
	}
}

func TestHTTPSyncerTreatsNonSuccessAsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Backend.BaseURL = server.URL
	syncer := reconcile.NewHTTPSyncer(&cfg)

	err := syncer.Sync(context.Background(), reconcile.ChangeRecord{SubjectID: "emp-1", Field: reconcile.FieldName})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}
