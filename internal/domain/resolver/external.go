package resolver

import "panda-menu/internal/domain/entity"

// IsExternalURL reports whether serviceURL leaves the page's registrable domain.
// Malformed URLs are treated as internal.
func IsExternalURL(serviceURL string, page entity.PageLocation) bool {
	u, err := entity.ParseAbsoluteURL(serviceURL)
	if err != nil {
		return false
	}
	return entity.RegistrableDomain(page.Hostname) != entity.RegistrableDomain(u.Hostname())
}
