package entity

// NetworkStatus defines the lifecycle state of a network as published in the registry.
type NetworkStatus string

// Constants for known network statuses.
const (
	NetworkActive    NetworkStatus = "active"
	NetworkInactive  NetworkStatus = "inactive"
	NetworkScheduled NetworkStatus = "scheduled"
)

// IsKnown reports whether the status is one of the published values.
func (s NetworkStatus) IsKnown() bool {
	switch s {
	case NetworkActive, NetworkInactive, NetworkScheduled:
		return true
	default:
		return false
	}
}

// Registry is the network registry document.
type Registry struct {
	Metadata   map[string]NetworkMetadata
	Networks   []NetworkEntry
	LastUpdate string
}

// NetworkEntry pairs a registry key with its network. Slices of entries keep registry order.
type NetworkEntry struct {
	Key     string
	Network Network
}

// Network represents one deployed test network or environment.
type Network struct {
	Name          string
	Repository    string
	Path          string
	URL           string
	Status        NetworkStatus
	LastUpdated   string
	ChainID       *int64
	ServiceURLs   []ServiceURL
	GenesisConfig *GenesisConfig
}

// IsActive reports whether the network should be displayed.
func (n Network) IsActive() bool {
	return n.Status == NetworkActive
}

// ServiceURL is one named service endpoint of a network. URL may be empty.
type ServiceURL struct {
	Key string
	URL string
}

// GenesisConfig holds genesis details of a network.
type GenesisConfig struct {
	GenesisTime *int64
}

// NetworkMetadata describes a category of networks.
type NetworkMetadata struct {
	DisplayName string
	Description string
	Image       string
	Links       []MetadataLink
	Stats       *CategoryStats
}

// MetadataLink is an external link attached to category metadata.
type MetadataLink struct {
	Title string
	URL   string
}

// CategoryStats holds aggregate counters published for a category.
type CategoryStats struct {
	TotalNetworks    int
	ActiveNetworks   int
	InactiveNetworks int
	NetworkNames     []string
}
