package memory

import (
	"context"
	"fmt"
	"time"

	"panda-menu/internal/config"
	"panda-menu/internal/domain/entity"
	domainRepo "panda-menu/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	registryKey = "registry_v1"
)

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache      *cache.Cache
	logger     *zap.Logger
	defaultTTL time.Duration
}

// NewCacheRepository creates a new in-memory cache repository instance.
// A non-positive default expiration keeps entries until they are deleted.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	if defaultExpiration <= 0 {
		defaultExpiration = cache.NoExpiration
	}
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:      c,
		logger:     logger.Named("MemoryCacheStorage"),
		defaultTTL: defaultExpiration,
	}
}

// GetRegistry retrieves the cached registry, returning found status.
func (r *CacheRepository) GetRegistry(_ context.Context) (*entity.Registry, bool, error) {
	if x, found := r.cache.Get(registryKey); found {
		if registry, ok := x.(*entity.Registry); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", registryKey))
			return registry, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", registryKey), zap.Any("type", fmt.Sprintf("%T", x)),
		)
		return nil, false, fmt.Errorf("cache entry %s has unexpected type %T", registryKey, x)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", registryKey))
	return nil, false, nil
}

// SetRegistry caches the registry with a given TTL.
func (r *CacheRepository) SetRegistry(_ context.Context, registry *entity.Registry, ttl time.Duration) error {
	if registry == nil {
		return fmt.Errorf("refusing to cache nil registry")
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	r.cache.Set(registryKey, registry, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", registryKey), zap.Duration("ttl", ttl))
	return nil
}

// DeleteRegistry drops the cached registry.
func (r *CacheRepository) DeleteRegistry(_ context.Context) error {
	r.cache.Delete(registryKey)
	r.logger.Debug("Memory cache delete", zap.String("key", registryKey))
	return nil
}
