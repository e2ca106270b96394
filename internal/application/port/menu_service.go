package port

import (
	"context"

	"panda-menu/internal/domain/entity"
)

// FetchState is the registry loading state of a menu service instance.
type FetchState int

const (
	// StateIdle means no data is cached and nothing is loading.
	StateIdle FetchState = iota
	// StateLoading means a registry fetch is in flight.
	StateLoading
	// StateLoaded means registry data is cached.
	StateLoaded
	// StateFailed means the last fetch failed and no data is cached.
	StateFailed
)

func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MenuState is everything a presentation variant may read.
type MenuState struct {
	Loading          bool
	Error            string
	CurrentLocation  entity.CurrentLocation
	SortedCategories []entity.CategorySummary
	LastUpdate       string
}

// MenuService defines the interface for the registry-backed menu data.
type MenuService interface {
	// Open signals that the menu became visible. It starts a fetch when no data is cached,
	// no fetch is in flight and the last attempt did not fail.
	Open(ctx context.Context)

	// Snapshot resolves the cached registry against page.
	Snapshot(ctx context.Context, page entity.PageLocation) MenuState

	// Locate detects the network and service of page without building the menu.
	Locate(ctx context.Context, page entity.PageLocation) entity.CurrentLocation

	// Retry discards cached data and error so the next Open fetches again.
	Retry(ctx context.Context)

	// Await blocks until the in-flight fetch, if any, has completed.
	Await(ctx context.Context) error

	// State reports the current fetch state.
	State(ctx context.Context) FetchState

	// ActiveNetwork returns a displayed network from the cached registry.
	ActiveNetwork(ctx context.Context, networkKey string) (entity.Network, error)
}
