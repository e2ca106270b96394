package hoststyle

import "fmt"

// Variant is how the menu is presented on the page.
type Variant string

const (
	VariantButton   Variant = "button"
	VariantSidebar  Variant = "sidebar"
	VariantAttached Variant = "attached"
)

// ParseVariant accepts the configurable variants. Attached is never configured directly;
// it follows from a host rule with an attach selector.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantButton, VariantSidebar:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown menu variant %q", s)
	}
}

// PresentationFor picks the variant for a host: attached when a rule names an attach
// target, the configured variant otherwise.
func PresentationFor(configured Variant, host HostConfig) Variant {
	if host.AttachTo != "" {
		return VariantAttached
	}
	return configured
}
