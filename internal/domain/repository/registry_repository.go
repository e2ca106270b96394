package repository

import (
	"context"

	"panda-menu/internal/domain/entity"
)

// RegistryRepository defines the interface for accessing the network registry.
type RegistryRepository interface {
	// FetchRegistry retrieves the registry document from the underlying data source.
	FetchRegistry(ctx context.Context) (*entity.Registry, error)
}
