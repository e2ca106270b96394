package entity

// ServiceInfo is the display information of a service key.
type ServiceInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategorySummary is one display category with its networks and active count.
type CategorySummary struct {
	CategoryKey  string
	CategoryName string
	Description  string
	Networks     []NetworkEntry
	ActiveCount  int
}
