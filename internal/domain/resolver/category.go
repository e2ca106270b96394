// Package resolver classifies a page against the network registry and partitions the
// registry into display categories. Everything here is a pure function of its inputs.
package resolver

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"panda-menu/internal/domain/entity"
)

const (
	// TestnetsCategory is the category of every network whose key has no hyphen.
	TestnetsCategory = "testnets"

	// OtherCategory collects keys whose prefix before the first hyphen is empty.
	OtherCategory = "other"
)

// GroupedNetworks maps category keys to their networks, both in registry order.
type GroupedNetworks = orderedmap.OrderedMap[string, []entity.NetworkEntry]

// IsStandaloneNetwork reports whether networkKey names a public testnet (no hyphen).
func IsStandaloneNetwork(networkKey string) bool {
	return !strings.Contains(networkKey, "-")
}

// ExtractCategory derives the category key from a network key.
func ExtractCategory(networkKey string) string {
	if IsStandaloneNetwork(networkKey) {
		return TestnetsCategory
	}
	prefix, _, _ := strings.Cut(networkKey, "-")
	if prefix == "" {
		return OtherCategory
	}
	return prefix
}

// GroupNetworksByCategory partitions networks by ExtractCategory in a single pass.
// No status filtering happens here.
func GroupNetworksByCategory(networks []entity.NetworkEntry) *GroupedNetworks {
	grouped := orderedmap.New[string, []entity.NetworkEntry]()
	for _, entry := range networks {
		category := ExtractCategory(entry.Key)
		existing, _ := grouped.Get(category)
		grouped.Set(category, append(existing, entry))
	}
	return grouped
}
