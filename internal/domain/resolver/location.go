package resolver

import (
	"strings"

	"panda-menu/internal/domain/entity"
)

// DetectCurrentLocation finds the network (and service) the page belongs to.
//
// Networks are scanned in registry order. For each network the service URLs are compared
// by origin first, then the homepage URL, then the "<networkKey>." hostname prefix. The
// first hit wins, so overlapping registrations resolve to the earliest network.
func DetectCurrentLocation(networks []entity.NetworkEntry, page entity.PageLocation) entity.CurrentLocation {
	for _, entry := range networks {
		for _, svc := range entry.Network.ServiceURLs {
			if svc.URL == "" {
				continue
			}
			if originMatches(svc.URL, page.Origin) {
				return entity.CurrentLocation{
					NetworkKey:  entry.Key,
					ServiceKey:  svc.Key,
					CategoryKey: ExtractCategory(entry.Key),
				}
			}
		}

		if entry.Network.URL != "" && originMatches(entry.Network.URL, page.Origin) {
			return entity.CurrentLocation{
				NetworkKey:  entry.Key,
				CategoryKey: ExtractCategory(entry.Key),
			}
		}

		if page.Hostname != "" && strings.HasPrefix(page.Hostname, entry.Key+".") {
			return entity.CurrentLocation{
				NetworkKey:  entry.Key,
				CategoryKey: ExtractCategory(entry.Key),
			}
		}
	}

	return entity.CurrentLocation{}
}

// originMatches reports whether rawURL parses and shares origin. Unparseable URLs never match.
func originMatches(rawURL, origin string) bool {
	if origin == "" {
		return false
	}
	u, err := entity.ParseAbsoluteURL(rawURL)
	if err != nil {
		return false
	}
	return entity.Origin(u) == origin
}
