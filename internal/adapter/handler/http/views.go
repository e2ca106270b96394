package http

import (
	"panda-menu/internal/config"
	"panda-menu/internal/domain/entity"
	"panda-menu/internal/domain/hoststyle"
	"panda-menu/internal/domain/resolver"
	"panda-menu/internal/domain/theme"
)

type menuResponse struct {
	Loading         bool                   `json:"loading"`
	Error           *string                `json:"error"`
	State           string                 `json:"state"`
	CurrentLocation entity.CurrentLocation `json:"currentLocation"`
	Categories      []categoryView         `json:"sortedCategories"`
	LastUpdate      string                 `json:"lastUpdate,omitempty"`
	Links           []linkView             `json:"links"`
}

type categoryView struct {
	CategoryKey  string        `json:"categoryKey"`
	CategoryName string        `json:"categoryName"`
	Description  string        `json:"description"`
	ActiveCount  int           `json:"activeCount"`
	Networks     []networkView `json:"networks"`
}

type networkView struct {
	Key          string        `json:"key"`
	DisplayName  string        `json:"displayName"`
	Status       string        `json:"status"`
	ChainID      *int64        `json:"chainId,omitempty"`
	GenesisTime  *int64        `json:"genesisTime,omitempty"`
	IsCurrent    bool          `json:"isCurrent"`
	ServiceCount int           `json:"serviceCount"`
	Services     []serviceView `json:"services"`
}

type serviceView struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	URL        string `json:"url"`
	IsExternal bool   `json:"isExternal"`
	IsCurrent  bool   `json:"isCurrent"`
}

type linkView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

type hostResponse struct {
	Hostname string               `json:"hostname"`
	Variant  hoststyle.Variant    `json:"variant"`
	Theme    theme.Theme          `json:"theme"`
	Host     hoststyle.HostConfig `json:"host"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toCategoryViews keeps only active networks; categories are already filtered and ordered.
func toCategoryViews(
	categories []entity.CategorySummary,
	current entity.CurrentLocation,
	page entity.PageLocation,
) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		view := categoryView{
			CategoryKey:  c.CategoryKey,
			CategoryName: c.CategoryName,
			Description:  c.Description,
			ActiveCount:  c.ActiveCount,
			Networks:     make([]networkView, 0, c.ActiveCount),
		}
		for _, e := range c.Networks {
			if !e.Network.IsActive() {
				continue
			}
			view.Networks = append(view.Networks, toNetworkView(e.Key, e.Network, current, page))
		}
		views = append(views, view)
	}
	return views
}

func toNetworkView(
	key string,
	network entity.Network,
	current entity.CurrentLocation,
	page entity.PageLocation,
) networkView {
	isCurrent := current.NetworkKey == key
	available := resolver.AvailableServices(network)

	view := networkView{
		Key:          key,
		DisplayName:  resolver.NetworkDisplayName(key, network),
		Status:       string(network.Status),
		ChainID:      network.ChainID,
		IsCurrent:    isCurrent,
		ServiceCount: len(available),
		Services:     make([]serviceView, 0, len(available)),
	}
	if network.GenesisConfig != nil {
		view.GenesisTime = network.GenesisConfig.GenesisTime
	}

	for _, svc := range available {
		view.Services = append(view.Services, serviceView{
			Key:        svc.Key,
			Name:       svc.Name,
			Icon:       svc.Icon,
			URL:        svc.URL,
			IsExternal: page.Hostname != "" && resolver.IsExternalURL(svc.URL, page),
			IsCurrent:  isCurrent && current.ServiceKey == svc.Key,
		})
	}
	return view
}

func toLinkViews(links []config.LinkItem) []linkView {
	views := make([]linkView, 0, len(links))
	for _, l := range links {
		views = append(views, linkView{Name: l.Name, URL: l.URL, Icon: l.Icon})
	}
	return views
}
