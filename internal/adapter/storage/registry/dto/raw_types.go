package registry_dto

import orderedmap "github.com/wk8/go-ordered-map/v2"

// RegistryRaw is the registry document as published. Ordered maps keep document key order.
type RegistryRaw struct {
	NetworkMetadata map[string]NetworkMetadataRaw              `json:"networkMetadata"`
	Networks        *orderedmap.OrderedMap[string, NetworkRaw] `json:"networks"`
	LastUpdate      string                                     `json:"lastUpdate"`
}

// NetworkRaw represents one network entry from the registry.
type NetworkRaw struct {
	Name          string                                  `json:"name"`
	Repository    string                                  `json:"repository,omitempty"`
	Path          string                                  `json:"path,omitempty"`
	URL           string                                  `json:"url,omitempty"`
	Status        string                                  `json:"status"`
	LastUpdated   string                                  `json:"lastUpdated,omitempty"`
	ChainID       *int64                                  `json:"chainId,omitempty"`
	ServiceURLs   *orderedmap.OrderedMap[string, *string] `json:"serviceUrls,omitempty"`
	GenesisConfig *GenesisConfigRaw                       `json:"genesisConfig,omitempty"`
}

// GenesisConfigRaw holds genesis details from raw data.
type GenesisConfigRaw struct {
	GenesisTime *int64 `json:"genesisTime,omitempty"`
}

// NetworkMetadataRaw describes a network category from raw data.
type NetworkMetadataRaw struct {
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	Image       string            `json:"image,omitempty"`
	Links       []MetadataLinkRaw `json:"links,omitempty"`
	Stats       *CategoryStatsRaw `json:"stats,omitempty"`
}

// MetadataLinkRaw is a titled link from raw data.
type MetadataLinkRaw struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CategoryStatsRaw holds aggregate counters from raw data.
type CategoryStatsRaw struct {
	TotalNetworks    int      `json:"totalNetworks"`
	ActiveNetworks   int      `json:"activeNetworks"`
	InactiveNetworks int      `json:"inactiveNetworks"`
	NetworkNames     []string `json:"networkNames"`
}
