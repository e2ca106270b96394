package repository

import (
	"context"
	"time"

	"panda-menu/internal/domain/entity"
)

// CacheRepository defines the interface for keeping the loaded registry in memory.
type CacheRepository interface {
	// GetRegistry retrieves the cached registry, returning found status.
	GetRegistry(ctx context.Context) (*entity.Registry, bool, error)

	// SetRegistry stores the registry. A non-positive TTL uses the repository default.
	SetRegistry(ctx context.Context, registry *entity.Registry, ttl time.Duration) error

	// DeleteRegistry discards the cached registry.
	DeleteRegistry(ctx context.Context) error
}
