package registry

import (
	dto "panda-menu/internal/adapter/storage/registry/dto"
	"panda-menu/internal/domain/entity"

	"go.uber.org/zap"
)

// mapStatus converts a raw status string to its domain counterpart.
// Unknown values are kept verbatim; they never count as active.
func mapStatus(raw string, networkKey string, logger *zap.Logger) entity.NetworkStatus {
	status := entity.NetworkStatus(raw)
	if !status.IsKnown() && logger != nil {
		logger.Warn("Unknown network status in registry",
			zap.String("network", networkKey),
			zap.String("status", raw),
		)
	}
	return status
}

// toDomainRegistry converts the raw registry document to domain entities, keeping key order.
func toDomainRegistry(raw *dto.RegistryRaw, logger *zap.Logger) *entity.Registry {
	registry := &entity.Registry{
		Metadata:   make(map[string]entity.NetworkMetadata, len(raw.NetworkMetadata)),
		LastUpdate: raw.LastUpdate,
	}

	for key, metaRaw := range raw.NetworkMetadata {
		registry.Metadata[key] = toDomainMetadata(metaRaw)
	}

	if raw.Networks == nil {
		return registry
	}

	registry.Networks = make([]entity.NetworkEntry, 0, raw.Networks.Len())
	for pair := raw.Networks.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			if logger != nil {
				logger.Warn("Skipping registry network with empty key")
			}
			continue
		}
		registry.Networks = append(registry.Networks, entity.NetworkEntry{
			Key:     pair.Key,
			Network: toDomainNetwork(pair.Key, pair.Value, logger),
		})
	}

	return registry
}

func toDomainNetwork(key string, raw dto.NetworkRaw, logger *zap.Logger) entity.Network {
	network := entity.Network{
		Name:        raw.Name,
		Repository:  raw.Repository,
		Path:        raw.Path,
		URL:         raw.URL,
		Status:      mapStatus(raw.Status, key, logger),
		LastUpdated: raw.LastUpdated,
		ChainID:     raw.ChainID,
	}

	if raw.ServiceURLs != nil {
		network.ServiceURLs = make([]entity.ServiceURL, 0, raw.ServiceURLs.Len())
		for pair := raw.ServiceURLs.Oldest(); pair != nil; pair = pair.Next() {
			svc := entity.ServiceURL{Key: pair.Key}
			if pair.Value != nil {
				svc.URL = *pair.Value
			}
			network.ServiceURLs = append(network.ServiceURLs, svc)
		}
	}

	if raw.GenesisConfig != nil {
		network.GenesisConfig = &entity.GenesisConfig{GenesisTime: raw.GenesisConfig.GenesisTime}
	}

	return network
}

func toDomainMetadata(raw dto.NetworkMetadataRaw) entity.NetworkMetadata {
	meta := entity.NetworkMetadata{
		DisplayName: raw.DisplayName,
		Description: raw.Description,
		Image:       raw.Image,
	}

	if raw.Links != nil {
		meta.Links = make([]entity.MetadataLink, len(raw.Links))
		for i, l := range raw.Links {
			meta.Links[i] = entity.MetadataLink{Title: l.Title, URL: l.URL}
		}
	}

	if raw.Stats != nil {
		meta.Stats = &entity.CategoryStats{
			TotalNetworks:    raw.Stats.TotalNetworks,
			ActiveNetworks:   raw.Stats.ActiveNetworks,
			InactiveNetworks: raw.Stats.InactiveNetworks,
			NetworkNames:     raw.Stats.NetworkNames,
		}
	}

	return meta
}
