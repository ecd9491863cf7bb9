package service

import (
	"context"
	"testing"

	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/sse"
)

type testEnv struct {
	store *repository.MemoryStore
	repos *repository.Repositories
	hub   *sse.Hub
	svcs  *Services
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	repos := repository.NewRepositories(store, nil)
	hub := sse.NewHub(nil)
	return &testEnv{
		store: store,
		repos: repos,
		hub:   hub,
		svcs:  NewServices(repos, hub, nil, nil),
	}
}

func ptr[T any](v T) *T { return &v }

var ctx = context.Background()

// registerClient attaches a buffered client to the hub and returns its id.
func registerClient(env *testEnv, events chan sse.Event) string {
	env.hub.Register(&sse.Client{ID: "test", Events: events})
	return "test"
}
