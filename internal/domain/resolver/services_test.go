package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"panda-menu/internal/domain/entity"
)

func TestServiceInfoFor(t *testing.T) {
	assert.Equal(t, entity.ServiceInfo{Key: "beaconRpc", Name: "Beacon RPC", Icon: "📡"}, ServiceInfoFor("beaconRpc"))
	assert.Equal(t, entity.ServiceInfo{Key: "devnetSpec", Name: "Specs", Icon: "📋"}, ServiceInfoFor("devnetSpec"))

	unknown := ServiceInfoFor("blockExplorerV2")
	assert.Equal(t, "Block Explorer V2", unknown.Name)
	assert.Equal(t, GenericServiceIcon, unknown.Icon)
}

func TestFormatServiceKey(t *testing.T) {
	tests := map[string]string{
		"mevRelay":       "Mev Relay",
		"light-client":   "Light Client",
		"faucet":         "Faucet",
		"rpcWs-endpoint": "Rpc Ws Endpoint",
		"ABC":            "ABC",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatServiceKey(in), "input %q", in)
	}
}

func TestAvailableServices(t *testing.T) {
	n := network(entity.NetworkActive, "",
		"explorer", "https://explorer.example.io",
		"beaconRpc", "",
		"zeta-service", "https://zeta.example.io",
		"dora", "https://dora.example.io",
		"assertoor", "https://assertoor.example.io",
	)

	services := AvailableServices(n)

	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Assertoor", "Dora", "Explorer", "Zeta Service"}, names)
	assert.Equal(t, "https://dora.example.io", services[1].URL)
}

func TestNetworkDisplayName(t *testing.T) {
	assert.Equal(t, "Holesky", NetworkDisplayName("holesky", entity.Network{Name: "ignored"}))
	assert.Equal(t, "BAL Devnet 1", NetworkDisplayName("bal-devnet-1", entity.Network{Name: "BAL Devnet 1"}))
	assert.Equal(t, "bal-devnet-2", NetworkDisplayName("bal-devnet-2", entity.Network{}))
	assert.Equal(t, "", NetworkDisplayName("", entity.Network{}))
}
