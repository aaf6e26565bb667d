package testsupport

import (
	"testing"

	"fabline/internal/config"
	"fabline/internal/directory"
)

// MustOpenDirectory opens a directory.Store for tests and registers cleanup.
func MustOpenDirectory(t testing.TB, cfg *config.Config) *directory.Store {
	t.Helper()

	store, err := directory.Open(cfg)
	if err != nil {
		t.Fatalf("directory.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
