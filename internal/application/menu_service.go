package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"panda-menu/internal/application/port"
	"panda-menu/internal/config"
	"panda-menu/internal/domain"
	"panda-menu/internal/domain/entity"
	domainRepo "panda-menu/internal/domain/repository"
	"panda-menu/internal/domain/resolver"
	"panda-menu/internal/metrics"
	"panda-menu/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check to ensure menuService implements MenuService
var _ port.MenuService = (*menuService)(nil)

// menuService implements port.MenuService. It owns the fetch state machine; the registry
// itself lives in the cache repository.
type menuService struct {
	registryRepo domainRepo.RegistryRepository
	cacheRepo    domainRepo.CacheRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
	cfg          config.Config
	rootCtx      context.Context

	isFetching   *atomic.Bool
	isRefreshing *atomic.Bool

	mu      sync.Mutex
	lastErr error
	done    chan struct{}
	// generation is bumped by Retry; a refresh started in an older generation is discarded.
	generation uint64
}

// NewMenuService creates a new instance of the menu service.
func NewMenuService(
	rootCtx context.Context,
	registryRepo domainRepo.RegistryRepository,
	cacheRepo domainRepo.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg config.Config,
) port.MenuService {
	s := &menuService{
		registryRepo: registryRepo,
		cacheRepo:    cacheRepo,
		metrics:      m,
		logger:       logger.Named("MenuService"),
		cfg:          cfg,
		rootCtx:      rootCtx,
		isFetching:   new(atomic.Bool),
		isRefreshing: new(atomic.Bool),
	}

	go s.startBackgroundRefresh()

	return s
}

// Open starts the lazy registry fetch if the service is idle.
func (s *menuService) Open(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cachedRegistry(ctx); found {
		return
	}
	if s.lastErr != nil {
		s.logger.Debug("Open ignored: last fetch failed, waiting for retry")
		return
	}
	if !s.isFetching.CompareAndSwap(false, true) {
		s.logger.Debug("Open ignored: registry fetch already in flight")
		s.metrics.IncSuppressed()
		return
	}

	done := make(chan struct{})
	s.done = done
	s.logger.Info("Menu opened without data, fetching registry")
	go s.load(done)
}

// load fetches the registry once and settles the state machine. Panics become failures.
func (s *menuService) load(done chan struct{}) {
	start := time.Now()
	var (
		registry *entity.Registry
		err      error
	)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Registry fetch panicked", zap.Any("panic", r))
			registry, err = nil, fmt.Errorf("%w: registry fetch panicked: %v", apperrors.ErrInternal, r)
		}
		s.finishLoad(registry, err, time.Since(start))
		close(done)
	}()

	registry, err = s.registryRepo.FetchRegistry(s.rootCtx)
}

func (s *menuService) finishLoad(registry *entity.Registry, err error, took time.Duration) {
	if err == nil {
		if cacheErr := s.cacheRepo.SetRegistry(s.rootCtx, registry, 0); cacheErr != nil {
			err = fmt.Errorf("%w: caching registry: %v", apperrors.ErrInternal, cacheErr)
		}
	}

	s.mu.Lock()
	s.lastErr = err
	s.done = nil
	s.isFetching.Store(false)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Registry fetch failed", zap.Error(err), zap.Duration("took", took))
		s.metrics.ObserveFetch(metrics.ResultFailure, took, 0)
		return
	}

	s.logger.Info("Registry loaded",
		zap.Int("networks", len(registry.Networks)),
		zap.Duration("took", took),
	)
	s.metrics.ObserveFetch(metrics.ResultSuccess, took, len(registry.Networks))
}

// Snapshot resolves the cached registry against page.
func (s *menuService) Snapshot(ctx context.Context, page entity.PageLocation) port.MenuState {
	state := port.MenuState{
		Loading:          s.isFetching.Load(),
		SortedCategories: []entity.CategorySummary{},
	}

	s.mu.Lock()
	if s.lastErr != nil {
		state.Error = s.lastErr.Error()
	}
	s.mu.Unlock()

	registry, found := s.cachedRegistry(ctx)
	if !found {
		return state
	}

	location := resolver.DetectCurrentLocation(registry.Networks, page)
	grouped := resolver.GroupNetworksByCategory(registry.Networks)

	state.CurrentLocation = location
	state.SortedCategories = resolver.SortCategories(grouped, registry.Metadata, location)
	state.LastUpdate = registry.LastUpdate

	s.metrics.ObserveResolve(!location.IsZero())
	s.logger.Debug("Resolved page location",
		zap.String("origin", page.Origin),
		zap.String("network", location.NetworkKey),
		zap.String("service", location.ServiceKey),
		zap.String("category", location.CategoryKey),
	)

	return state
}

// Locate detects the page location against the cached registry. Without data the
// location is empty.
func (s *menuService) Locate(ctx context.Context, page entity.PageLocation) entity.CurrentLocation {
	registry, found := s.cachedRegistry(ctx)
	if !found {
		return entity.CurrentLocation{}
	}
	return resolver.DetectCurrentLocation(registry.Networks, page)
}

// Retry drops the cached registry and the last error.
func (s *menuService) Retry(ctx context.Context) {
	s.mu.Lock()
	s.lastErr = nil
	s.generation++
	s.mu.Unlock()

	if err := s.cacheRepo.DeleteRegistry(ctx); err != nil {
		s.logger.Warn("Failed to discard cached registry on retry", zap.Error(err))
	}
	s.metrics.IncRetry()
	s.logger.Info("Menu data reset, next open will fetch again")
}

// Await blocks until the in-flight fetch completes or ctx is done.
func (s *menuService) Await(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for registry: %v", apperrors.ErrTimeout, ctx.Err())
	}
}

// State reports the current fetch state.
func (s *menuService) State(ctx context.Context) port.FetchState {
	if s.isFetching.Load() {
		return port.StateLoading
	}
	if _, found := s.cachedRegistry(ctx); found {
		return port.StateLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return port.StateFailed
	}
	return port.StateIdle
}

// ActiveNetwork returns the active network with networkKey from the cached registry.
func (s *menuService) ActiveNetwork(ctx context.Context, networkKey string) (entity.Network, error) {
	registry, found := s.cachedRegistry(ctx)
	if !found {
		return entity.Network{}, domain.ErrRegistryNotLoaded
	}

	for _, e := range registry.Networks {
		if e.Key != networkKey {
			continue
		}
		if !e.Network.IsActive() {
			break
		}
		return e.Network, nil
	}

	return entity.Network{}, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, networkKey)
}

func (s *menuService) cachedRegistry(ctx context.Context) (*entity.Registry, bool) {
	registry, found, err := s.cacheRepo.GetRegistry(ctx)
	if err != nil {
		s.logger.Warn("Cache error when getting registry", zap.Error(err))
		return nil, false
	}
	return registry, found
}

// startBackgroundRefresh periodically replaces a loaded registry with a fresh copy.
// Failures keep the data already cached.
func (s *menuService) startBackgroundRefresh() {
	interval := s.cfg.Registry.GetRefreshInterval()
	if interval <= 0 {
		s.logger.Info("Background refresh disabled (interval <= 0)")
		return
	}

	s.logger.Info("Starting background refresh", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.rootCtx.Done():
			s.logger.Info("Background refresh stopping due to context cancellation.")
			return
		}
	}
}

func (s *menuService) refresh() {
	if _, found := s.cachedRegistry(s.rootCtx); !found {
		s.logger.Debug("Background refresh tick: nothing loaded, skipping")
		return
	}
	if !s.isRefreshing.CompareAndSwap(false, true) {
		s.logger.Debug("Background refresh tick: refresh already in progress")
		return
	}
	defer s.isRefreshing.Store(false)

	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	start := time.Now()
	registry, err := s.registryRepo.FetchRegistry(s.rootCtx)
	took := time.Since(start)
	if err != nil {
		if s.rootCtx.Err() != nil {
			s.logger.Warn("Background refresh cancelled due to application shutdown")
			return
		}
		s.logger.Warn("Background refresh failed, keeping cached registry", zap.Error(err))
		s.metrics.ObserveFetch(metrics.ResultFailure, took, 0)
		return
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Info("Background refresh discarded: menu was reset while fetching")
		return
	}
	err = s.cacheRepo.SetRegistry(s.rootCtx, registry, 0)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("Failed to cache refreshed registry", zap.Error(err))
		return
	}
	s.metrics.ObserveFetch(metrics.ResultSuccess, took, len(registry.Networks))
	s.logger.Info("Background refresh replaced registry", zap.Int("networks", len(registry.Networks)))
}
