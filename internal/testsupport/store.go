package testsupport

import (
	"testing"

	"shunt/internal/catalog"
	"shunt/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.OpenStore(cfg)
	if err != nil {
		t.Fatalf("catalog.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
