package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"panda-menu/internal/adapter/storage/memory"
	"panda-menu/internal/application/port"
	"panda-menu/internal/config"
	"panda-menu/internal/domain"
	"panda-menu/internal/domain/entity"
	"panda-menu/internal/metrics"
)

// fakeRegistryRepo hands out registries or errors and can hold fetches until released.
type fakeRegistryRepo struct {
	calls   atomic.Int32
	mu      sync.Mutex
	gate    chan struct{}
	results []fakeResult
}

type fakeResult struct {
	registry *entity.Registry
	err      error
	panics   bool
}

func (f *fakeRegistryRepo) FetchRegistry(ctx context.Context) (*entity.Registry, error) {
	n := int(f.calls.Add(1)) - 1

	f.mu.Lock()
	gate := f.gate
	res := f.results[min(n, len(f.results)-1)]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if res.panics {
		panic("registry exploded")
	}
	return res.registry, res.err
}

func testRegistry() *entity.Registry {
	return &entity.Registry{
		Metadata: map[string]entity.NetworkMetadata{
			"bal": {DisplayName: "BAL Devnets", Description: "Block-level access lists"},
		},
		Networks: []entity.NetworkEntry{
			{Key: "holesky", Network: entity.Network{Status: entity.NetworkActive}},
			{Key: "bal-devnet-1", Network: entity.Network{
				Status: entity.NetworkActive,
				ServiceURLs: []entity.ServiceURL{
					{Key: "explorer", URL: "https://explorer.bal-devnet-1.example.io"},
				},
			}},
			{Key: "bal-devnet-0", Network: entity.Network{Status: entity.NetworkInactive}},
		},
		LastUpdate: "2026-10-18T09:00:00Z",
	}
}

func newTestService(t *testing.T, repo *fakeRegistryRepo, cfg config.Config) port.MenuService {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := memory.NewCacheRepository(config.CacheConfig{CleanupInterval: time.Minute}, zap.NewNop())
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	return NewMenuService(ctx, repo, cache, m, zap.NewNop(), cfg)
}

func await(t *testing.T, svc port.MenuService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Await(ctx))
}

func explorerPage() entity.PageLocation {
	return entity.PageLocation{Origin: "https://explorer.bal-devnet-1.example.io", Hostname: "explorer.bal-devnet-1.example.io"}
}

func TestMenuService_LazyLoad(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	assert.Equal(t, port.StateIdle, svc.State(ctx))
	state := svc.Snapshot(ctx, explorerPage())
	assert.False(t, state.Loading)
	assert.Empty(t, state.SortedCategories)
	assert.True(t, state.CurrentLocation.IsZero())
	assert.Equal(t, int32(0), repo.calls.Load(), "nothing is fetched before the menu opens")

	svc.Open(ctx)
	await(t, svc)

	assert.Equal(t, port.StateLoaded, svc.State(ctx))
	state = svc.Snapshot(ctx, explorerPage())
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Equal(t, entity.CurrentLocation{NetworkKey: "bal-devnet-1", ServiceKey: "explorer", CategoryKey: "bal"}, state.CurrentLocation)
	require.Len(t, state.SortedCategories, 2)
	assert.Equal(t, "bal", state.SortedCategories[0].CategoryKey)
	assert.Equal(t, "testnets", state.SortedCategories[1].CategoryKey)
	assert.Equal(t, "2026-10-18T09:00:00Z", state.LastUpdate)

	svc.Open(ctx)
	await(t, svc)
	assert.Equal(t, int32(1), repo.calls.Load(), "cached data is reused")
}

func TestMenuService_SingleInFlight(t *testing.T) {
	repo := &fakeRegistryRepo{gate: make(chan struct{}), results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	svc.Open(ctx)
	svc.Open(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Open(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, port.StateLoading, svc.State(ctx))
	assert.True(t, svc.Snapshot(ctx, explorerPage()).Loading)

	close(repo.gate)
	await(t, svc)

	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, port.StateLoaded, svc.State(ctx))
}

func TestMenuService_FailureAndRetry(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{
		{err: errors.New("external service interaction failed: registry returned status 502")},
		{registry: testRegistry()},
	}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	svc.Open(ctx)
	await(t, svc)

	assert.Equal(t, port.StateFailed, svc.State(ctx))
	state := svc.Snapshot(ctx, explorerPage())
	assert.Equal(t, "external service interaction failed: registry returned status 502", state.Error, "message is surfaced verbatim")
	assert.Empty(t, state.SortedCategories)

	svc.Open(ctx)
	await(t, svc)
	assert.Equal(t, int32(1), repo.calls.Load(), "a failed state needs an explicit retry")

	svc.Retry(ctx)
	assert.Equal(t, port.StateIdle, svc.State(ctx))
	assert.Empty(t, svc.Snapshot(ctx, explorerPage()).Error)

	svc.Open(ctx)
	await(t, svc)
	assert.Equal(t, int32(2), repo.calls.Load())
	assert.Equal(t, port.StateLoaded, svc.State(ctx))
}

func TestMenuService_RetryDropsLoadedData(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	svc.Open(ctx)
	await(t, svc)
	require.Equal(t, port.StateLoaded, svc.State(ctx))

	svc.Retry(ctx)
	assert.Equal(t, port.StateIdle, svc.State(ctx))
	assert.Empty(t, svc.Snapshot(ctx, explorerPage()).SortedCategories)

	svc.Open(ctx)
	await(t, svc)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestMenuService_StaleResultIsApplied(t *testing.T) {
	repo := &fakeRegistryRepo{gate: make(chan struct{}), results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	svc.Open(ctx)
	svc.Retry(ctx)
	close(repo.gate)
	await(t, svc)

	assert.Equal(t, port.StateLoaded, svc.State(ctx))
}

func TestMenuService_PanicBecomesFailure(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{panics: true}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	svc.Open(ctx)
	await(t, svc)

	assert.Equal(t, port.StateFailed, svc.State(ctx))
	assert.Contains(t, svc.Snapshot(ctx, explorerPage()).Error, "registry exploded")
}

func TestMenuService_AwaitTimeout(t *testing.T) {
	repo := &fakeRegistryRepo{gate: make(chan struct{}), results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	defer close(repo.gate)

	svc.Open(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, svc.Await(ctx))
}

func TestMenuService_ActiveNetwork(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	_, err := svc.ActiveNetwork(ctx, "holesky")
	require.ErrorIs(t, err, domain.ErrRegistryNotLoaded)

	svc.Open(ctx)
	await(t, svc)

	n, err := svc.ActiveNetwork(ctx, "bal-devnet-1")
	require.NoError(t, err)
	assert.Len(t, n.ServiceURLs, 1)

	_, err = svc.ActiveNetwork(ctx, "bal-devnet-0")
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound, "inactive networks are not displayed")

	_, err = svc.ActiveNetwork(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}

func TestMenuService_Locate(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{registry: testRegistry()}}}
	svc := newTestService(t, repo, config.Config{})
	ctx := context.Background()

	assert.True(t, svc.Locate(ctx, explorerPage()).IsZero(), "nothing to match before loading")

	svc.Open(ctx)
	await(t, svc)

	assert.Equal(t,
		entity.CurrentLocation{NetworkKey: "bal-devnet-1", ServiceKey: "explorer", CategoryKey: "bal"},
		svc.Locate(ctx, explorerPage()))
}

func TestMenuService_RetryDiscardsInFlightRefresh(t *testing.T) {
	repo := &fakeRegistryRepo{results: []fakeResult{{registry: testRegistry()}}}
	cfg := config.Config{Registry: config.RegistryConfig{RefreshInterval: 5 * time.Millisecond}}
	svc := newTestService(t, repo, cfg)
	ctx := context.Background()

	svc.Open(ctx)
	await(t, svc)
	require.Equal(t, port.StateLoaded, svc.State(ctx))

	gate := make(chan struct{})
	repo.mu.Lock()
	repo.gate = gate
	repo.mu.Unlock()
	before := repo.calls.Load()

	require.Eventually(t, func() bool { return repo.calls.Load() > before }, 2*time.Second, time.Millisecond,
		"a refresh is in flight")

	svc.Retry(ctx)
	close(gate)

	impl := svc.(*menuService)
	require.Eventually(t, func() bool { return !impl.isRefreshing.Load() }, 2*time.Second, time.Millisecond)

	assert.Equal(t, port.StateIdle, svc.State(ctx), "the reset wins over the refresh result")
	assert.Empty(t, svc.Snapshot(ctx, explorerPage()).SortedCategories)
}

func TestMenuService_BackgroundRefresh(t *testing.T) {
	refreshed := testRegistry()
	refreshed.LastUpdate = "later"
	repo := &fakeRegistryRepo{results: []fakeResult{
		{registry: testRegistry()},
		{err: errors.New("flaky")},
		{registry: refreshed},
	}}
	cfg := config.Config{Registry: config.RegistryConfig{RefreshInterval: 10 * time.Millisecond}}
	svc := newTestService(t, repo, cfg)
	ctx := context.Background()

	svc.Open(ctx)
	await(t, svc)

	require.Eventually(t, func() bool {
		return svc.Snapshot(ctx, explorerPage()).LastUpdate == "later"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, svc.Snapshot(ctx, explorerPage()).Error, "refresh failures never surface")
}
