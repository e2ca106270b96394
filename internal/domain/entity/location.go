package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PageLocation is the browsing context the menu is resolved against.
type PageLocation struct {
	Origin   string
	Hostname string
}

// NewPageLocation derives a PageLocation from the page URL reported by the widget.
func NewPageLocation(rawURL string) (PageLocation, error) {
	u, err := ParseAbsoluteURL(rawURL)
	if err != nil {
		return PageLocation{}, err
	}
	origin := Origin(u)
	if origin == "" {
		return PageLocation{}, fmt.Errorf("page url '%s' has no origin", rawURL)
	}
	return PageLocation{
		Origin:   origin,
		Hostname: strings.ToLower(u.Hostname()),
	}, nil
}

// CurrentLocation identifies the network, service and category the page belongs to.
// Empty fields mean "unknown".
type CurrentLocation struct {
	NetworkKey  string
	ServiceKey  string
	CategoryKey string
}

// IsZero reports whether no network was matched.
func (l CurrentLocation) IsZero() bool {
	return l.NetworkKey == "" && l.ServiceKey == "" && l.CategoryKey == ""
}

type currentLocationJSON struct {
	NetworkKey  *string `json:"networkKey"`
	ServiceKey  *string `json:"serviceKey"`
	CategoryKey *string `json:"categoryKey"`
}

// MarshalJSON encodes unknown fields as null.
func (l CurrentLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(currentLocationJSON{
		NetworkKey:  nullable(l.NetworkKey),
		ServiceKey:  nullable(l.ServiceKey),
		CategoryKey: nullable(l.CategoryKey),
	})
}

// UnmarshalJSON accepts null or string fields.
func (l *CurrentLocation) UnmarshalJSON(data []byte) error {
	var raw currentLocationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = CurrentLocation{
		NetworkKey:  deref(raw.NetworkKey),
		ServiceKey:  deref(raw.ServiceKey),
		CategoryKey: deref(raw.CategoryKey),
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
