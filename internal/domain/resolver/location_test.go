package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"panda-menu/internal/domain/entity"
)

func TestDetectCurrentLocation(t *testing.T) {
	networks := []entity.NetworkEntry{
		entry("holesky", network(entity.NetworkActive, "https://holesky.ethpandaops.io",
			"dora", "https://dora.holesky.ethpandaops.io",
		)),
		entry("bal-devnet-1", network(entity.NetworkActive, "",
			"beaconRpc", "not a url",
			"explorer", "https://explorer.bal-devnet-1.example.io",
			"dora", "https://dora.bal-devnet-1.ethpandaops.io:8443/slots",
		)),
		entry("foo", network(entity.NetworkActive, "")),
	}

	tests := []struct {
		name string
		page entity.PageLocation
		want entity.CurrentLocation
	}{
		{
			name: "service url origin",
			page: page("https://explorer.bal-devnet-1.example.io", "explorer.bal-devnet-1.example.io"),
			want: entity.CurrentLocation{NetworkKey: "bal-devnet-1", ServiceKey: "explorer", CategoryKey: "bal"},
		},
		{
			name: "service url with explicit port",
			page: page("https://dora.bal-devnet-1.ethpandaops.io:8443", "dora.bal-devnet-1.ethpandaops.io"),
			want: entity.CurrentLocation{NetworkKey: "bal-devnet-1", ServiceKey: "dora", CategoryKey: "bal"},
		},
		{
			name: "homepage origin",
			page: page("https://holesky.ethpandaops.io", "holesky.ethpandaops.io"),
			want: entity.CurrentLocation{NetworkKey: "holesky", CategoryKey: TestnetsCategory},
		},
		{
			name: "subdomain prefix",
			page: page("https://foo.ethpandaops.io", "foo.ethpandaops.io"),
			want: entity.CurrentLocation{NetworkKey: "foo", CategoryKey: TestnetsCategory},
		},
		{
			name: "no match",
			page: page("https://unrelated.example.com", "unrelated.example.com"),
			want: entity.CurrentLocation{},
		},
		{
			name: "scheme mismatch is a different origin",
			page: page("http://explorer.bal-devnet-1.example.io", "explorer.bal-devnet-1.example.io"),
			want: entity.CurrentLocation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCurrentLocation(networks, tt.page))
		})
	}
}

func TestDetectCurrentLocation_FirstMatchWins(t *testing.T) {
	shared := "https://shared.example.io"
	first := entry("alpha-devnet-1", network(entity.NetworkActive, "", "explorer", shared))
	second := entry("beta-devnet-1", network(entity.NetworkActive, "", "dora", shared))
	p := page(shared, "shared.example.io")

	got := DetectCurrentLocation([]entity.NetworkEntry{first, second}, p)
	assert.Equal(t, "alpha-devnet-1", got.NetworkKey)
	assert.Equal(t, "explorer", got.ServiceKey)

	got = DetectCurrentLocation([]entity.NetworkEntry{second, first}, p)
	assert.Equal(t, "beta-devnet-1", got.NetworkKey, "precedence follows registry order")
	assert.Equal(t, "dora", got.ServiceKey)
}

func TestDetectCurrentLocation_EarlierNetworkRulesBeatLaterServiceMatch(t *testing.T) {
	networks := []entity.NetworkEntry{
		entry("foo", network(entity.NetworkActive, "")),
		entry("foo-devnet-1", network(entity.NetworkActive, "", "dora", "https://foo.example.io")),
	}

	got := DetectCurrentLocation(networks, page("https://foo.example.io", "foo.example.io"))
	assert.Equal(t, entity.CurrentLocation{NetworkKey: "foo", CategoryKey: TestnetsCategory}, got)
}

func TestDetectCurrentLocation_SkipsInvalidURLs(t *testing.T) {
	networks := []entity.NetworkEntry{
		entry("broken", network(entity.NetworkActive, "::::", "explorer", "%zz", "dora", "")),
		entry("ok-devnet-1", network(entity.NetworkActive, "https://ok.example.io")),
	}

	got := DetectCurrentLocation(networks, page("https://ok.example.io", "ok.example.io"))
	assert.Equal(t, "ok-devnet-1", got.NetworkKey)
}

func TestDetectCurrentLocation_Idempotent(t *testing.T) {
	networks := []entity.NetworkEntry{
		entry("bal-devnet-1", network(entity.NetworkActive, "", "explorer", "https://explorer.bal-devnet-1.example.io")),
		entry("holesky", network(entity.NetworkActive, "")),
	}
	p := page("https://explorer.bal-devnet-1.example.io", "explorer.bal-devnet-1.example.io")

	first := DetectCurrentLocation(networks, p)
	second := DetectCurrentLocation(networks, p)
	assert.Equal(t, first, second)

	grouped := GroupNetworksByCategory(networks)
	assert.Equal(t, SortCategories(grouped, nil, first), SortCategories(GroupNetworksByCategory(networks), nil, second))
}
